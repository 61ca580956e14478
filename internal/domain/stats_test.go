package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// apply mirrors the relative increments the store runs for a delta.
func apply(d StatsDelta, p *Player) {
	p.Wins += d.Wins
	p.Losses += d.Losses
	p.Draws += d.Draws
	p.GoalsFor += d.GoalsFor
	p.GoalsAgainst += d.GoalsAgainst
}

func TestOutcomeWin(t *testing.T) {
	game, err := NewGame(MatchInput{
		PlayerOneID: 1, PlayerTwoID: 2,
		TeamOne: "X", TeamTwo: "Y",
		ScorePlayerOne: 3, ScorePlayerTwo: 1,
	}, Rules{}, time.Now())
	require.NoError(t, err)

	a := Player{ID: 1, Name: "A"}
	b := Player{ID: 2, Name: "B"}
	one, two := Outcome(game)
	apply(one, &a)
	apply(two, &b)

	assert.Equal(t, 1, a.Wins)
	assert.Equal(t, 3, a.GoalsFor)
	assert.Equal(t, 1, a.GoalsAgainst)
	assert.Equal(t, 1, b.Losses)
	assert.Equal(t, 1, b.GoalsFor)
	assert.Equal(t, 3, b.GoalsAgainst)
	assert.Equal(t, "player_one", OutcomeLabel(game))
}

func TestOutcomePenaltyWinCountsAsWin(t *testing.T) {
	game, err := NewGame(MatchInput{
		PlayerOneID: 1, PlayerTwoID: 2,
		TeamOne: "X", TeamTwo: "Y",
		ScorePlayerOne: 2, ScorePlayerTwo: 2,
		Penalty:               true,
		PenaltyScorePlayerOne: intPtr(5),
		PenaltyScorePlayerTwo: intPtr(4),
	}, Rules{}, time.Now())
	require.NoError(t, err)

	one, two := Outcome(game)
	assert.Equal(t, StatsDelta{PlayerID: 1, Wins: 1, GoalsFor: 2, GoalsAgainst: 2}, one)
	assert.Equal(t, StatsDelta{PlayerID: 2, Losses: 1, GoalsFor: 2, GoalsAgainst: 2}, two)
}

func TestOutcomeDraw(t *testing.T) {
	game, err := NewGame(MatchInput{
		PlayerOneID: 7, PlayerTwoID: 9,
		TeamOne: "X", TeamTwo: "Y",
		ScorePlayerOne: 1, ScorePlayerTwo: 1,
	}, Rules{}, time.Now())
	require.NoError(t, err)

	one, two := Outcome(game)
	assert.Equal(t, 1, one.Draws)
	assert.Equal(t, 1, two.Draws)
	assert.Zero(t, one.Wins+one.Losses+two.Wins+two.Losses)
	assert.Equal(t, "draw", OutcomeLabel(game))
}

func TestOutcomeCountsMatchGamesPlayed(t *testing.T) {
	a := Player{ID: 1}
	b := Player{ID: 2}
	scores := [][2]int{{1, 0}, {0, 2}, {3, 3}, {4, 1}, {0, 0}, {2, 5}}
	for _, sc := range scores {
		game, err := NewGame(MatchInput{
			PlayerOneID: 1, PlayerTwoID: 2,
			TeamOne: "X", TeamTwo: "Y",
			ScorePlayerOne: sc[0], ScorePlayerTwo: sc[1],
		}, Rules{}, time.Now())
		require.NoError(t, err)
		one, two := Outcome(game)
		apply(one, &a)
		apply(two, &b)
	}

	assert.Equal(t, len(scores), a.TotalGames())
	assert.Equal(t, len(scores), b.TotalGames())
	assert.Equal(t, a.Wins, b.Losses)
	assert.Equal(t, a.GoalsFor, b.GoalsAgainst)
}
