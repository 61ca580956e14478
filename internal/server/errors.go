package server

import (
	"errors"
	"net/http"

	"github.com/Petouha/who-won/internal/domain"
	"github.com/Petouha/who-won/internal/repository"
	"github.com/Petouha/who-won/internal/service"
	"github.com/Petouha/who-won/internal/teams"

	"github.com/rs/zerolog"
)

const (
	codeInvalidRequest = "INVALID_REQUEST"
	codeInvalidRange   = "INVALID_RATING_RANGE"
	codeNotEnoughTeams = "NOT_ENOUGH_TEAMS"
	codeNotFound       = "NOT_FOUND"
	codeInternal       = "INTERNAL_ERROR"
)

// requestError is a malformed request, rejected before it reaches a service.
type requestError struct {
	field   string
	message string
}

func (e *requestError) Error() string {
	return e.message
}

func badRequest(field, message string) error {
	return &requestError{field: field, message: message}
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
	Field string `json:"field,omitempty"`
}

var kindStatus = map[string]int{
	service.KindUnknownPlayer:     http.StatusNotFound,
	service.KindDuplicatePlayer:   http.StatusConflict,
	service.KindSamePlayer:        http.StatusBadRequest,
	service.KindInvalidTeamName:   http.StatusBadRequest,
	service.KindInvalidScore:      http.StatusBadRequest,
	service.KindInvalidPlayerName: http.StatusBadRequest,
}

// writeError maps err to a status and JSON body. Anything that is not a
// rejected input is logged and hidden behind a generic 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var reqErr *requestError
	if errors.As(err, &reqErr) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: reqErr.message, Code: codeInvalidRequest, Field: reqErr.field})
		return
	}

	if kind := service.ErrorKind(err); kind != "" {
		resp := errorResponse{Error: err.Error(), Code: kind}
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			resp.Error = verr.Message
			resp.Field = verr.Field
		}
		writeJSON(w, kindStatus[kind], resp)
		return
	}

	switch {
	case errors.Is(err, repository.ErrGameNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error(), Code: codeNotFound, Field: "id"})
		return
	case errors.Is(err, teams.ErrInvalidRatingRange):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error(), Code: codeInvalidRange, Field: "min_rating"})
		return
	case errors.Is(err, teams.ErrNotEnoughTeams):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error(), Code: codeNotEnoughTeams})
		return
	}

	zerolog.Ctx(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error", Code: codeInternal})
}
