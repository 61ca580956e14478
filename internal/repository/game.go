package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Petouha/who-won/internal/db"
	"github.com/Petouha/who-won/internal/domain"

	"github.com/rs/zerolog"
)

var ErrGameNotFound = errors.New("game not found")

type GameRepository struct {
	queries *db.Queries
	db      *sql.DB
	logger  zerolog.Logger
}

func NewGameRepository(sqlDB *sql.DB, queries *db.Queries, logger zerolog.Logger) *GameRepository {
	return &GameRepository{
		queries: queries,
		db:      sqlDB,
		logger:  logger,
	}
}

// CreateWithStats stores a resolved game and applies its outcome to both
// players in one transaction. Nothing is kept if either player is missing.
func (r *GameRepository) CreateWithStats(ctx context.Context, game *domain.Game) (*domain.Game, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	qtx := r.queries.WithTx(tx)

	one, two := domain.Outcome(game)
	for _, d := range []struct {
		field string
		delta domain.StatsDelta
	}{
		{"player_one_id", one},
		{"player_two_id", two},
	} {
		affected, err := qtx.AddPlayerStats(ctx, db.AddPlayerStatsParams{
			Wins:         int64(d.delta.Wins),
			Losses:       int64(d.delta.Losses),
			Draws:        int64(d.delta.Draws),
			GoalsFor:     int64(d.delta.GoalsFor),
			GoalsAgainst: int64(d.delta.GoalsAgainst),
			ID:           d.delta.PlayerID,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to update stats for player %d: %w", d.delta.PlayerID, err)
		}
		if affected == 0 {
			return nil, domain.UnknownPlayerError(d.field, d.delta.PlayerID)
		}
	}

	id, err := qtx.CreateGame(ctx, db.CreateGameParams{
		PlayerOneID:           game.PlayerOneID,
		PlayerTwoID:           game.PlayerTwoID,
		TeamOne:               game.TeamOne,
		TeamTwo:               game.TeamTwo,
		ScorePlayerOne:        int64(game.ScorePlayerOne),
		ScorePlayerTwo:        int64(game.ScorePlayerTwo),
		Penalty:               game.Penalty,
		PenaltyScorePlayerOne: nullInt(game.PenaltyScorePlayerOne),
		PenaltyScorePlayerTwo: nullInt(game.PenaltyScorePlayerTwo),
		WinnerID:              nullID(game.WinnerID),
		CreatedAt:             game.CreatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to insert game: %w", err)
	}

	stored, err := qtx.GetGame(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload game %d: %w", id, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit game: %w", err)
	}

	r.logger.Debug().
		Int64("game_id", id).
		Int64("player_one_id", game.PlayerOneID).
		Int64("player_two_id", game.PlayerTwoID).
		Msg("game stored with stats")

	return toDomainGame(stored), nil
}

func (r *GameRepository) Get(ctx context.Context, id int64) (*domain.Game, error) {
	game, err := r.queries.GetGame(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrGameNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get game %d: %w", id, err)
	}
	return toDomainGame(game), nil
}

func (r *GameRepository) List(ctx context.Context) ([]domain.Game, error) {
	games, err := r.queries.ListGames(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}
	return toDomainGames(games), nil
}

func (r *GameRepository) ListForPlayer(ctx context.Context, playerID int64) ([]domain.Game, error) {
	games, err := r.queries.ListGamesForPlayer(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list games for player %d: %w", playerID, err)
	}
	return toDomainGames(games), nil
}

func toDomainGames(games []db.Game) []domain.Game {
	result := make([]domain.Game, len(games))
	for i, g := range games {
		result[i] = *toDomainGame(g)
	}
	return result
}

func toDomainGame(g db.Game) *domain.Game {
	game := &domain.Game{
		ID:             g.ID,
		PlayerOneID:    g.PlayerOneID,
		PlayerTwoID:    g.PlayerTwoID,
		TeamOne:        g.TeamOne,
		TeamTwo:        g.TeamTwo,
		ScorePlayerOne: int(g.ScorePlayerOne),
		ScorePlayerTwo: int(g.ScorePlayerTwo),
		Penalty:        g.Penalty,
		CreatedAt:      g.CreatedAt,
	}
	if g.PenaltyScorePlayerOne.Valid {
		v := int(g.PenaltyScorePlayerOne.Int64)
		game.PenaltyScorePlayerOne = &v
	}
	if g.PenaltyScorePlayerTwo.Valid {
		v := int(g.PenaltyScorePlayerTwo.Int64)
		game.PenaltyScorePlayerTwo = &v
	}
	if g.WinnerID.Valid {
		v := g.WinnerID.Int64
		game.WinnerID = &v
	}
	return game
}

func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func nullID(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}
