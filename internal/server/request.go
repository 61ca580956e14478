package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/Petouha/who-won/internal/domain"
	"github.com/Petouha/who-won/internal/teams"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

type createPlayerRequest struct {
	Name *string `json:"name" validate:"required"`
}

type createGameRequest struct {
	PlayerOneID           *int64  `json:"player_one_id" validate:"required"`
	PlayerTwoID           *int64  `json:"player_two_id" validate:"required"`
	TeamOne               *string `json:"team_one" validate:"required"`
	TeamTwo               *string `json:"team_two" validate:"required"`
	ScorePlayerOne        *int    `json:"score_player_one" validate:"required"`
	ScorePlayerTwo        *int    `json:"score_player_two" validate:"required"`
	Penalty               bool    `json:"penalty"`
	PenaltyScorePlayerOne *int    `json:"penalty_score_player_one"`
	PenaltyScorePlayerTwo *int    `json:"penalty_score_player_two"`
}

func (r createGameRequest) toInput() domain.MatchInput {
	return domain.MatchInput{
		PlayerOneID:           *r.PlayerOneID,
		PlayerTwoID:           *r.PlayerTwoID,
		TeamOne:               *r.TeamOne,
		TeamTwo:               *r.TeamTwo,
		ScorePlayerOne:        *r.ScorePlayerOne,
		ScorePlayerTwo:        *r.ScorePlayerTwo,
		Penalty:               r.Penalty,
		PenaltyScorePlayerOne: r.PenaltyScorePlayerOne,
		PenaltyScorePlayerTwo: r.PenaltyScorePlayerTwo,
	}
}

type randomizeRequest struct {
	MinRating     *int     `json:"min_rating" validate:"omitempty,gte=0,lte=100"`
	MaxRating     *int     `json:"max_rating" validate:"omitempty,gte=0,lte=100"`
	ExcludedTeams []string `json:"excluded_teams" validate:"dive,required"`
}

func (r randomizeRequest) toRequest() teams.RandomizeRequest {
	req := teams.RandomizeRequest{MinRating: 0, MaxRating: 100, ExcludedTeams: r.ExcludedTeams}
	if r.MinRating != nil {
		req.MinRating = *r.MinRating
	}
	if r.MaxRating != nil {
		req.MaxRating = *r.MaxRating
	}
	return req
}

// decodeJSON reads the body into dst and checks required fields. Type
// mismatches on score fields are reported as invalid scores.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		switch {
		case errors.As(err, &typeErr) && strings.Contains(typeErr.Field, "score"):
			return &domain.ValidationError{
				Kind:    domain.ErrInvalidScore,
				Field:   typeErr.Field,
				Message: fmt.Sprintf("%s must be a non-negative integer", typeErr.Field),
			}
		case errors.As(err, &typeErr):
			return badRequest(typeErr.Field, fmt.Sprintf("field '%s' has the wrong type", typeErr.Field))
		case errors.Is(err, io.EOF):
			return badRequest("", "request body is required")
		default:
			return badRequest("", "invalid request body")
		}
	}

	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			field := verrs[0].Field()
			if verrs[0].Tag() == "required" {
				return badRequest(field, fmt.Sprintf("field '%s' is required", field))
			}
			return badRequest(field, fmt.Sprintf("field '%s' is invalid", field))
		}
		return badRequest("", "invalid request body")
	}
	return nil
}
