package domain

import (
	"time"
)

type Player struct {
	ID           int64
	Name         string
	Wins         int
	Losses       int
	Draws        int
	GoalsFor     int
	GoalsAgainst int
	CreatedAt    time.Time
}

func (p Player) TotalGames() int {
	return p.Wins + p.Losses + p.Draws
}

type Game struct {
	ID                    int64
	PlayerOneID           int64
	PlayerTwoID           int64
	TeamOne               string
	TeamTwo               string
	ScorePlayerOne        int
	ScorePlayerTwo        int
	Penalty               bool
	PenaltyScorePlayerOne *int
	PenaltyScorePlayerTwo *int
	WinnerID              *int64 // nil on a draw or an unresolved shootout
	CreatedAt             time.Time
}

// Involves reports whether the player took part in the game.
func (g Game) Involves(playerID int64) bool {
	return g.PlayerOneID == playerID || g.PlayerTwoID == playerID
}

// TeamFor returns the team the player used in the game.
func (g Game) TeamFor(playerID int64) string {
	if g.PlayerOneID == playerID {
		return g.TeamOne
	}
	return g.TeamTwo
}

// MatchInput is a raw match submission before validation.
type MatchInput struct {
	PlayerOneID           int64
	PlayerTwoID           int64
	TeamOne               string
	TeamTwo               string
	ScorePlayerOne        int
	ScorePlayerTwo        int
	Penalty               bool
	PenaltyScorePlayerOne *int
	PenaltyScorePlayerTwo *int
}

type LeaderboardEntry struct {
	PlayerID       int64
	Name           string
	Wins           int
	Losses         int
	Draws          int
	TotalGames     int
	WinRate        float64 // percentage, 2 decimals
	GoalsFor       int
	GoalsAgainst   int
	GoalDifference int
}

type TeamRating struct {
	Name     string `yaml:"name" json:"name"`
	League   string `yaml:"league" json:"league"`
	Overall  int    `yaml:"overall" json:"overall"`
	Attack   int    `yaml:"attack" json:"attack"`
	Midfield int    `yaml:"midfield" json:"midfield"`
	Defence  int    `yaml:"defence" json:"defence"`
}
