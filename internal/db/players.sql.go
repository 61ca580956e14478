package db

import (
	"context"
	"time"
)

const playerColumns = `id, name, wins, losses, draws, goals_for, goals_against, created_at`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPlayer(row rowScanner) (Player, error) {
	var p Player
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Wins,
		&p.Losses,
		&p.Draws,
		&p.GoalsFor,
		&p.GoalsAgainst,
		&p.CreatedAt,
	)
	return p, err
}

const createPlayer = `-- name: CreatePlayer :execlastid
INSERT INTO players (name, name_key, created_at)
VALUES (?, ?, ?)`

type CreatePlayerParams struct {
	Name      string
	NameKey   string
	CreatedAt time.Time
}

func (q *Queries) CreatePlayer(ctx context.Context, arg CreatePlayerParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, createPlayer, arg.Name, arg.NameKey, arg.CreatedAt)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

const getPlayer = `-- name: GetPlayer :one
SELECT ` + playerColumns + `
FROM players
WHERE id = ?`

func (q *Queries) GetPlayer(ctx context.Context, id int64) (Player, error) {
	row := q.db.QueryRowContext(ctx, getPlayer, id)
	return scanPlayer(row)
}

const getPlayerByNameKey = `-- name: GetPlayerByNameKey :one
SELECT ` + playerColumns + `
FROM players
WHERE name_key = ?`

func (q *Queries) GetPlayerByNameKey(ctx context.Context, nameKey string) (Player, error) {
	row := q.db.QueryRowContext(ctx, getPlayerByNameKey, nameKey)
	return scanPlayer(row)
}

const listPlayers = `-- name: ListPlayers :many
SELECT ` + playerColumns + `
FROM players
ORDER BY id`

func (q *Queries) ListPlayers(ctx context.Context) ([]Player, error) {
	rows, err := q.db.QueryContext(ctx, listPlayers)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Player
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const addPlayerStats = `-- name: AddPlayerStats :execrows
UPDATE players
SET wins          = wins + ?,
    losses        = losses + ?,
    draws         = draws + ?,
    goals_for     = goals_for + ?,
    goals_against = goals_against + ?
WHERE id = ?`

type AddPlayerStatsParams struct {
	Wins         int64
	Losses       int64
	Draws        int64
	GoalsFor     int64
	GoalsAgainst int64
	ID           int64
}

// AddPlayerStats increments counters in place so concurrent writers never
// overwrite each other.
func (q *Queries) AddPlayerStats(ctx context.Context, arg AddPlayerStatsParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, addPlayerStats,
		arg.Wins,
		arg.Losses,
		arg.Draws,
		arg.GoalsFor,
		arg.GoalsAgainst,
		arg.ID,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
