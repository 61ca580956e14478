package domain

import (
	"math"
	"sort"
)

// BuildLeaderboard ranks players by wins, descending. Players with equal wins
// keep their input order.
func BuildLeaderboard(players []Player) []LeaderboardEntry {
	entries := make([]LeaderboardEntry, len(players))
	for i, p := range players {
		total := p.TotalGames()
		entries[i] = LeaderboardEntry{
			PlayerID:       p.ID,
			Name:           p.Name,
			Wins:           p.Wins,
			Losses:         p.Losses,
			Draws:          p.Draws,
			TotalGames:     total,
			WinRate:        winRate(p.Wins, total),
			GoalsFor:       p.GoalsFor,
			GoalsAgainst:   p.GoalsAgainst,
			GoalDifference: p.GoalsFor - p.GoalsAgainst,
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Wins > entries[j].Wins
	})
	return entries
}

func winRate(wins, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(wins)/float64(total)*100*100) / 100
}
