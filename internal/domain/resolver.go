package domain

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Petouha/who-won/internal/constants"
)

// TeamChecker answers whether a team name exists in the reference data.
type TeamChecker interface {
	IsValidTeamName(name string) bool
}

// Rules tunes match validation and winner resolution.
type Rules struct {
	// StrictTeams rejects team names missing from Teams.
	StrictTeams bool
	Teams       TeamChecker
	// PenaltyZeroAsAbsent treats a shootout score of 0 as missing, which
	// leaves the game without a winner. Legacy behavior.
	PenaltyZeroAsAbsent bool
}

// NewGame validates a submission and returns the game with its winner set.
// Player existence is checked by the caller against the store.
func NewGame(in MatchInput, rules Rules, now time.Time) (*Game, error) {
	if in.PlayerOneID == in.PlayerTwoID {
		return nil, newValidationError(ErrSamePlayer, "player_two_id", "both players must be different")
	}

	teamOne, err := normalizeTeamName("team_one", in.TeamOne, rules)
	if err != nil {
		return nil, err
	}
	teamTwo, err := normalizeTeamName("team_two", in.TeamTwo, rules)
	if err != nil {
		return nil, err
	}

	if err := checkScore("score_player_one", in.ScorePlayerOne); err != nil {
		return nil, err
	}
	if err := checkScore("score_player_two", in.ScorePlayerTwo); err != nil {
		return nil, err
	}

	game := &Game{
		PlayerOneID:    in.PlayerOneID,
		PlayerTwoID:    in.PlayerTwoID,
		TeamOne:        teamOne,
		TeamTwo:        teamTwo,
		ScorePlayerOne: in.ScorePlayerOne,
		ScorePlayerTwo: in.ScorePlayerTwo,
		Penalty:        in.Penalty,
		CreatedAt:      now.UTC(),
	}

	if in.PenaltyScorePlayerOne != nil {
		if err := checkScore("penalty_score_player_one", *in.PenaltyScorePlayerOne); err != nil {
			return nil, err
		}
	}
	if in.PenaltyScorePlayerTwo != nil {
		if err := checkScore("penalty_score_player_two", *in.PenaltyScorePlayerTwo); err != nil {
			return nil, err
		}
	}

	// Shootout scores are only kept for penalty games.
	if in.Penalty {
		game.PenaltyScorePlayerOne = copyScore(in.PenaltyScorePlayerOne)
		game.PenaltyScorePlayerTwo = copyScore(in.PenaltyScorePlayerTwo)
	}

	game.WinnerID = DetermineWinner(game, rules)
	return game, nil
}

// DetermineWinner returns the winning player id, or nil for a draw or an
// undecided shootout. It does not modify the game.
func DetermineWinner(g *Game, rules Rules) *int64 {
	switch {
	case g.ScorePlayerOne > g.ScorePlayerTwo:
		return idPtr(g.PlayerOneID)
	case g.ScorePlayerTwo > g.ScorePlayerOne:
		return idPtr(g.PlayerTwoID)
	case !g.Penalty:
		return nil
	}

	one, okOne := penaltyScore(g.PenaltyScorePlayerOne, rules)
	two, okTwo := penaltyScore(g.PenaltyScorePlayerTwo, rules)
	if !okOne || !okTwo {
		return nil
	}
	switch {
	case one > two:
		return idPtr(g.PlayerOneID)
	case two > one:
		return idPtr(g.PlayerTwoID)
	default:
		return nil
	}
}

func penaltyScore(v *int, rules Rules) (int, bool) {
	if v == nil {
		return 0, false
	}
	if *v == 0 && rules.PenaltyZeroAsAbsent {
		return 0, false
	}
	return *v, true
}

func normalizeTeamName(field, name string, rules Rules) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", newValidationError(ErrInvalidTeamName, field, "%s cannot be empty", field)
	}
	if utf8.RuneCountInString(trimmed) > constants.MaxTeamNameLength {
		return "", newValidationError(ErrInvalidTeamName, field, "%s is too long (max %d characters)", field, constants.MaxTeamNameLength)
	}
	if rules.StrictTeams && rules.Teams != nil && !rules.Teams.IsValidTeamName(trimmed) {
		return "", newValidationError(ErrInvalidTeamName, field, "unknown team '%s'", trimmed)
	}
	return trimmed, nil
}

func checkScore(field string, score int) error {
	if score < 0 {
		return newValidationError(ErrInvalidScore, field, "%s cannot be negative", field)
	}
	if score > constants.MaxScore {
		return newValidationError(ErrInvalidScore, field, "%s cannot exceed %d", field, constants.MaxScore)
	}
	return nil
}

func copyScore(v *int) *int {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func idPtr(id int64) *int64 {
	return &id
}
