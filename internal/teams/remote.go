package teams

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/Petouha/who-won/internal/constants"

	"github.com/valyala/fasthttp"
)

// RemoteSource fetches a teams.txt style list over HTTP.
type RemoteSource struct {
	url    string
	client *fasthttp.Client
}

func NewRemoteSource(url string) *RemoteSource {
	return &RemoteSource{
		url: url,
		client: &fasthttp.Client{
			ReadTimeout:  constants.ExternalAPITimeout,
			WriteTimeout: constants.ExternalAPITimeout,
		},
	}
}

func (s *RemoteSource) FetchNames(ctx context.Context) ([]string, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(s.url)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "text/plain")

	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(constants.ExternalAPITimeout)
	}
	if err := s.client.DoDeadline(req, resp, deadline); err != nil {
		return nil, err
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		return nil, fmt.Errorf("teams source error: %d", resp.StatusCode())
	}

	return ParseNames(bytes.NewReader(resp.Body()))
}
