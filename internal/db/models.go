package db

import (
	"database/sql"
	"time"
)

type Player struct {
	ID           int64
	Name         string
	Wins         int64
	Losses       int64
	Draws        int64
	GoalsFor     int64
	GoalsAgainst int64
	CreatedAt    time.Time
}

type Game struct {
	ID                    int64
	PlayerOneID           int64
	PlayerTwoID           int64
	TeamOne               string
	TeamTwo               string
	ScorePlayerOne        int64
	ScorePlayerTwo        int64
	Penalty               bool
	PenaltyScorePlayerOne sql.NullInt64
	PenaltyScorePlayerTwo sql.NullInt64
	WinnerID              sql.NullInt64
	CreatedAt             time.Time
}
