package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildLeaderboard(t *testing.T) {
	players := []Player{
		{ID: 1, Name: "Alice", Wins: 1, Losses: 2, Draws: 0, GoalsFor: 5, GoalsAgainst: 7},
		{ID: 2, Name: "Bob", Wins: 3, Losses: 0, Draws: 1, GoalsFor: 9, GoalsAgainst: 2},
		{ID: 3, Name: "Carol"},
		{ID: 4, Name: "Dave", Wins: 1, Losses: 0, Draws: 2, GoalsFor: 3, GoalsAgainst: 3},
	}

	board := BuildLeaderboard(players)
	require.Len(t, board, 4)

	names := make([]string, len(board))
	for i, e := range board {
		names[i] = e.Name
	}
	// Alice and Dave tie on wins and keep their input order.
	assert.Equal(t, []string{"Bob", "Alice", "Dave", "Carol"}, names)

	bob := board[0]
	assert.Equal(t, 4, bob.TotalGames)
	assert.Equal(t, 75.0, bob.WinRate)
	assert.Equal(t, 7, bob.GoalDifference)

	alice := board[1]
	assert.Equal(t, 33.33, alice.WinRate)
	assert.Equal(t, -2, alice.GoalDifference)

	dave := board[2]
	assert.Equal(t, 33.33, dave.WinRate)
	assert.Equal(t, 0, dave.GoalDifference)
}

func TestBuildLeaderboardZeroGames(t *testing.T) {
	board := BuildLeaderboard([]Player{{ID: 1, Name: "Newcomer"}})
	require.Len(t, board, 1)
	assert.Equal(t, 0, board[0].TotalGames)
	assert.Equal(t, 0.0, board[0].WinRate)
}

func TestBuildLeaderboardEmpty(t *testing.T) {
	assert.Empty(t, BuildLeaderboard(nil))
}

func TestWinRateRounding(t *testing.T) {
	assert.Equal(t, 66.67, winRate(2, 3))
	assert.Equal(t, 14.29, winRate(1, 7))
	assert.Equal(t, 100.0, winRate(5, 5))
}
