package service

import (
	"errors"

	"github.com/Petouha/who-won/internal/domain"
)

const (
	KindUnknownPlayer     = "UNKNOWN_PLAYER"
	KindSamePlayer        = "SAME_PLAYER"
	KindInvalidTeamName   = "INVALID_TEAM_NAME"
	KindInvalidScore      = "INVALID_SCORE"
	KindDuplicatePlayer   = "DUPLICATE_PLAYER"
	KindInvalidPlayerName = "INVALID_PLAYER_NAME"
)

var kinds = []struct {
	err  error
	kind string
}{
	{domain.ErrUnknownPlayer, KindUnknownPlayer},
	{domain.ErrSamePlayer, KindSamePlayer},
	{domain.ErrInvalidTeamName, KindInvalidTeamName},
	{domain.ErrInvalidScore, KindInvalidScore},
	{domain.ErrDuplicatePlayer, KindDuplicatePlayer},
	{domain.ErrInvalidPlayerName, KindInvalidPlayerName},
}

// ErrorKind names the rejected-input kind of err, or "" for store faults.
func ErrorKind(err error) string {
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return ""
}
