package domain

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/Petouha/who-won/internal/constants"

	"golang.org/x/text/cases"
)

// NormalizePlayerName trims the name and rejects blank or oversized values.
func NormalizePlayerName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", newValidationError(ErrInvalidPlayerName, "name", "player name is required")
	}
	if utf8.RuneCountInString(trimmed) > constants.MaxPlayerNameLength {
		return "", newValidationError(ErrInvalidPlayerName, "name", "player name is too long (max %d characters)", constants.MaxPlayerNameLength)
	}
	return trimmed, nil
}

// NameKey is the case-folded form of a player name. Two names are the same
// player name when their keys are equal; the store keeps it under a unique
// index. Full Unicode folding applies, so "Élodie" and "élodie" collide.
func NameKey(name string) string {
	return cases.Fold().String(strings.TrimSpace(name))
}

// FavoriteTeams returns up to limit teams the player used most, ties broken
// by first use.
func FavoriteTeams(playerID int64, games []Game, limit int) []string {
	counts := make(map[string]int)
	var order []string
	for _, g := range games {
		if !g.Involves(playerID) {
			continue
		}
		team := g.TeamFor(playerID)
		if _, seen := counts[team]; !seen {
			order = append(order, team)
		}
		counts[team]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > limit {
		order = order[:limit]
	}
	if order == nil {
		return []string{}
	}
	return order
}
