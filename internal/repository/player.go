package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Petouha/who-won/internal/db"
	"github.com/Petouha/who-won/internal/domain"

	"github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
)

type PlayerRepository struct {
	queries *db.Queries
	db      *sql.DB
	logger  zerolog.Logger
}

func NewPlayerRepository(sqlDB *sql.DB, queries *db.Queries, logger zerolog.Logger) *PlayerRepository {
	return &PlayerRepository{
		queries: queries,
		db:      sqlDB,
		logger:  logger,
	}
}

// Create inserts a player with zeroed statistics. The unique index on the
// folded name catches duplicates that race past the service check.
func (r *PlayerRepository) Create(ctx context.Context, name string) (*domain.Player, error) {
	id, err := r.queries.CreatePlayer(ctx, db.CreatePlayerParams{
		Name:      name,
		NameKey:   domain.NameKey(name),
		CreatedAt: time.Now().UTC(),
	})
	if isUniqueViolation(err) {
		return nil, domain.DuplicatePlayerError(name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to insert player: %w", err)
	}

	r.logger.Debug().Int64("player_id", id).Str("name", name).Msg("player inserted")
	return r.Get(ctx, id)
}

func (r *PlayerRepository) Get(ctx context.Context, id int64) (*domain.Player, error) {
	player, err := r.queries.GetPlayer(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.UnknownPlayerError("player_id", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get player %d: %w", id, err)
	}
	return toDomainPlayer(player), nil
}

// GetByName matches on the folded name. It returns nil, nil when no player
// has the name.
func (r *PlayerRepository) GetByName(ctx context.Context, name string) (*domain.Player, error) {
	player, err := r.queries.GetPlayerByNameKey(ctx, domain.NameKey(name))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get player by name: %w", err)
	}
	return toDomainPlayer(player), nil
}

func (r *PlayerRepository) List(ctx context.Context) ([]domain.Player, error) {
	players, err := r.queries.ListPlayers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}

	result := make([]domain.Player, len(players))
	for i, p := range players {
		result[i] = *toDomainPlayer(p)
	}
	return result, nil
}

func toDomainPlayer(p db.Player) *domain.Player {
	return &domain.Player{
		ID:           p.ID,
		Name:         p.Name,
		Wins:         int(p.Wins),
		Losses:       int(p.Losses),
		Draws:        int(p.Draws),
		GoalsFor:     int(p.GoalsFor),
		GoalsAgainst: int(p.GoalsAgainst),
		CreatedAt:    p.CreatedAt,
	}
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	return false
}
