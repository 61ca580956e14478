package db

import (
	"context"
	"database/sql"
	"time"
)

const gameColumns = `id, player_one_id, player_two_id, team_one, team_two,
    score_player_one, score_player_two, penalty,
    penalty_score_player_one, penalty_score_player_two, winner_id, created_at`

func scanGame(row rowScanner) (Game, error) {
	var g Game
	err := row.Scan(
		&g.ID,
		&g.PlayerOneID,
		&g.PlayerTwoID,
		&g.TeamOne,
		&g.TeamTwo,
		&g.ScorePlayerOne,
		&g.ScorePlayerTwo,
		&g.Penalty,
		&g.PenaltyScorePlayerOne,
		&g.PenaltyScorePlayerTwo,
		&g.WinnerID,
		&g.CreatedAt,
	)
	return g, err
}

func scanGames(rows *sql.Rows) ([]Game, error) {
	defer rows.Close()

	var items []Game
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, g)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const createGame = `-- name: CreateGame :execlastid
INSERT INTO games (
    player_one_id, player_two_id, team_one, team_two,
    score_player_one, score_player_two, penalty,
    penalty_score_player_one, penalty_score_player_two, winner_id, created_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

type CreateGameParams struct {
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

func (q *Queries) CreateGame(ctx context.Context, arg CreateGameParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, createGame,
		arg.PlayerOneID,
		arg.PlayerTwoID,
		arg.TeamOne,
		arg.TeamTwo,
		arg.ScorePlayerOne,
		arg.ScorePlayerTwo,
		arg.Penalty,
		arg.PenaltyScorePlayerOne,
		arg.PenaltyScorePlayerTwo,
		arg.WinnerID,
		arg.CreatedAt,
	)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

const getGame = `-- name: GetGame :one
SELECT ` + gameColumns + `
FROM games
WHERE id = ?`

func (q *Queries) GetGame(ctx context.Context, id int64) (Game, error) {
	row := q.db.QueryRowContext(ctx, getGame, id)
	return scanGame(row)
}

const listGames = `-- name: ListGames :many
SELECT ` + gameColumns + `
FROM games
ORDER BY id`

func (q *Queries) ListGames(ctx context.Context) ([]Game, error) {
	rows, err := q.db.QueryContext(ctx, listGames)
	if err != nil {
		return nil, err
	}
	return scanGames(rows)
}

const listGamesForPlayer = `-- name: ListGamesForPlayer :many
SELECT ` + gameColumns + `
FROM games
WHERE player_one_id = ? OR player_two_id = ?
ORDER BY id`

func (q *Queries) ListGamesForPlayer(ctx context.Context, playerID int64) ([]Game, error) {
	rows, err := q.db.QueryContext(ctx, listGamesForPlayer, playerID, playerID)
	if err != nil {
		return nil, err
	}
	return scanGames(rows)
}
