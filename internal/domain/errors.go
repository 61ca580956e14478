package domain

import (
	"errors"
	"fmt"
)

// Error kinds for rejected input. None of them is retryable.
var (
	ErrUnknownPlayer     = errors.New("unknown player")
	ErrSamePlayer        = errors.New("both players must be different")
	ErrInvalidTeamName   = errors.New("invalid team name")
	ErrInvalidScore      = errors.New("invalid score")
	ErrDuplicatePlayer   = errors.New("player already exists")
	ErrInvalidPlayerName = errors.New("invalid player name")
)

// ValidationError carries the offending field alongside its kind.
type ValidationError struct {
	Kind    error
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Kind)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Kind
}

func newValidationError(kind error, field, format string, args ...any) *ValidationError {
	return &ValidationError{
		Kind:    kind,
		Field:   field,
		Message: fmt.Sprintf(format, args...),
	}
}

// UnknownPlayerError reports a player id that the store does not know.
func UnknownPlayerError(field string, id int64) error {
	return newValidationError(ErrUnknownPlayer, field, "player %d does not exist", id)
}

// DuplicatePlayerError reports a name already taken, ignoring case.
func DuplicatePlayerError(name string) error {
	return newValidationError(ErrDuplicatePlayer, "name", "a player named '%s' already exists", name)
}
