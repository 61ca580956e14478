package domain

// StatsDelta is the change one game applies to a single player's counters.
type StatsDelta struct {
	PlayerID     int64
	Wins         int
	Losses       int
	Draws        int
	GoalsFor     int
	GoalsAgainst int
}

// Outcome splits a resolved game into the deltas for player one and player two.
func Outcome(g *Game) (StatsDelta, StatsDelta) {
	one := StatsDelta{
		PlayerID:     g.PlayerOneID,
		GoalsFor:     g.ScorePlayerOne,
		GoalsAgainst: g.ScorePlayerTwo,
	}
	two := StatsDelta{
		PlayerID:     g.PlayerTwoID,
		GoalsFor:     g.ScorePlayerTwo,
		GoalsAgainst: g.ScorePlayerOne,
	}

	switch {
	case g.WinnerID != nil && *g.WinnerID == g.PlayerOneID:
		one.Wins, two.Losses = 1, 1
	case g.WinnerID != nil && *g.WinnerID == g.PlayerTwoID:
		two.Wins, one.Losses = 1, 1
	default:
		one.Draws, two.Draws = 1, 1
	}
	return one, two
}

// OutcomeLabel names the result from player one's side, for logs and metrics.
func OutcomeLabel(g *Game) string {
	switch {
	case g.WinnerID == nil:
		return "draw"
	case *g.WinnerID == g.PlayerOneID:
		return "player_one"
	default:
		return "player_two"
	}
}
