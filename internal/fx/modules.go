package fx

import (
	"context"
	"database/sql"

	"github.com/Petouha/who-won/internal/cache"
	"github.com/Petouha/who-won/internal/config"
	"github.com/Petouha/who-won/internal/constants"
	"github.com/Petouha/who-won/internal/database"
	"github.com/Petouha/who-won/internal/db"
	"github.com/Petouha/who-won/internal/domain"
	"github.com/Petouha/who-won/internal/logger"
	"github.com/Petouha/who-won/internal/metrics"
	"github.com/Petouha/who-won/internal/repository"
	"github.com/Petouha/who-won/internal/server"
	"github.com/Petouha/who-won/internal/service"
	"github.com/Petouha/who-won/internal/teams"

	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

func ProvideQueries(sqlDB *sql.DB) *db.Queries {
	return db.New(sqlDB)
}

func ProvideTeams(cfg *config.Config, logger zerolog.Logger) (*teams.Table, error) {
	return teams.Load(context.Background(), cfg, logger)
}

func ProvideRules(cfg *config.Config, table *teams.Table) domain.Rules {
	return domain.Rules{
		StrictTeams:         cfg.StrictTeams,
		Teams:               table,
		PenaltyZeroAsAbsent: cfg.PenaltyZeroAsAbsent,
	}
}

// ProvideLeaderboardCache connects to redis when REDIS_URL is set and
// otherwise falls back to a cache that never hits.
func ProvideLeaderboardCache(lc fx.Lifecycle, cfg *config.Config, logger zerolog.Logger) (service.LeaderboardCache, error) {
	if cfg.RedisURL == "" {
		logger.Info().Msg("REDIS_URL not set, leaderboard cache disabled")
		return service.NoopCache{}, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), constants.ExternalAPITimeout)
	defer cancel()

	client, err := cache.Connect(ctx, cfg.RedisURL)
	if err != nil {
		return nil, err
	}

	c := cache.NewLeaderboardCache(client, cfg.LeaderboardCacheTTL)
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return c.Close()
		},
	})
	logger.Info().Dur("ttl", cfg.LeaderboardCacheTTL).Msg("leaderboard cache enabled")
	return c, nil
}

func ProvidePicker() teams.Picker {
	return teams.DefaultPicker
}

// DatabaseModule opens the database and applies migrations.
var DatabaseModule = fx.Options(
	logger.Module,
	config.Module,
	fx.Provide(database.New),
)

var Module = fx.Options(
	DatabaseModule,
	fx.Provide(ProvideQueries),
	fx.Provide(metrics.New),
	// repos
	fx.Provide(repository.NewPlayerRepository),
	fx.Provide(repository.NewGameRepository),
	// reference data
	fx.Provide(ProvideTeams),
	fx.Provide(ProvideRules),
	fx.Provide(ProvidePicker),
	fx.Provide(ProvideLeaderboardCache),
	// svc
	fx.Provide(service.NewPlayerService),
	fx.Provide(service.NewGameService),
	fx.Provide(service.NewLeaderboardService),
	// server
	fx.Provide(server.NewServer),
)
