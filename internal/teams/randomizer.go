package teams

import (
	"errors"
	"math/rand/v2"
	"strings"

	"github.com/Petouha/who-won/internal/domain"
)

var (
	ErrInvalidRatingRange = errors.New("minimum rating cannot be greater than maximum rating")
	ErrNotEnoughTeams     = errors.New("not enough teams match the criteria")
)

// Picker returns a value in [0, n). *rand.Rand from math/rand/v2 satisfies it.
type Picker interface {
	IntN(n int) int
}

// DefaultPicker draws from the process-wide source and is safe for
// concurrent use.
var DefaultPicker Picker = globalPicker{}

type globalPicker struct{}

func (globalPicker) IntN(n int) int { return rand.IntN(n) }

type RandomizeRequest struct {
	MinRating     int
	MaxRating     int
	ExcludedTeams []string
}

type Matchup struct {
	TeamOne          domain.TeamRating
	TeamTwo          domain.TeamRating
	RatingDifference int
}

// Randomize picks a random team within the rating range, then the closest
// rated opponent. Ties between equally close opponents are broken randomly.
func (t *Table) Randomize(req RandomizeRequest, pick Picker) (*Matchup, error) {
	if req.MinRating > req.MaxRating {
		return nil, ErrInvalidRatingRange
	}

	excluded := make(map[string]struct{}, len(req.ExcludedTeams))
	for _, name := range req.ExcludedTeams {
		excluded[strings.ToLower(strings.TrimSpace(name))] = struct{}{}
	}

	var candidates []domain.TeamRating
	for _, r := range t.ratings {
		if r.Overall < req.MinRating || r.Overall > req.MaxRating {
			continue
		}
		if _, skip := excluded[strings.ToLower(r.Name)]; skip {
			continue
		}
		candidates = append(candidates, r)
	}
	if len(candidates) < 2 {
		return nil, ErrNotEnoughTeams
	}

	first := pick.IntN(len(candidates))
	one := candidates[first]

	best := -1
	var closest []int
	for i, r := range candidates {
		if i == first {
			continue
		}
		diff := abs(r.Overall - one.Overall)
		switch {
		case best == -1 || diff < best:
			best = diff
			closest = []int{i}
		case diff == best:
			closest = append(closest, i)
		}
	}

	two := candidates[closest[pick.IntN(len(closest))]]
	return &Matchup{
		TeamOne:          one,
		TeamTwo:          two,
		RatingDifference: best,
	}, nil
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
