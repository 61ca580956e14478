// Package teams holds the team reference data: the list of valid team names
// and the ratings table used by the randomizer. A Table is built once at
// startup and never modified afterwards.
package teams

import (
	"strings"

	"github.com/Petouha/who-won/internal/domain"
)

type Table struct {
	names   []string
	index   map[string]struct{}
	ratings []domain.TeamRating
}

// NewTable copies its inputs. Team names missing from names but present in
// ratings are appended so that every rated team is also a valid name.
func NewTable(names []string, ratings []domain.TeamRating) *Table {
	t := &Table{
		index:   make(map[string]struct{}, len(names)+len(ratings)),
		ratings: make([]domain.TeamRating, 0, len(ratings)),
	}
	for _, n := range names {
		t.addName(n)
	}
	for _, r := range ratings {
		r.Name = strings.TrimSpace(r.Name)
		if r.Name == "" {
			continue
		}
		t.ratings = append(t.ratings, r)
		t.addName(r.Name)
	}
	return t
}

func (t *Table) addName(name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}
	key := strings.ToLower(name)
	if _, ok := t.index[key]; ok {
		return
	}
	t.index[key] = struct{}{}
	t.names = append(t.names, name)
}

// IsValidTeamName matches names case-insensitively, ignoring surrounding spaces.
func (t *Table) IsValidTeamName(name string) bool {
	_, ok := t.index[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

func (t *Table) ListTeamNames() []string {
	out := make([]string, len(t.names))
	copy(out, t.names)
	return out
}

func (t *Table) Ratings() []domain.TeamRating {
	out := make([]domain.TeamRating, len(t.ratings))
	copy(out, t.ratings)
	return out
}

func (t *Table) Len() int {
	return len(t.names)
}
