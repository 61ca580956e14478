package service

import (
	"context"

	"github.com/Petouha/who-won/internal/constants"
	"github.com/Petouha/who-won/internal/domain"
	"github.com/Petouha/who-won/internal/metrics"
	"github.com/Petouha/who-won/internal/repository"

	"github.com/rs/zerolog"
)

// LeaderboardCache stores the computed leaderboard between writes. Every
// write moves the cache to a new generation; Get reports the generation it
// saw and Set files entries under the generation they were built from.
type LeaderboardCache interface {
	Get(ctx context.Context) (entries []domain.LeaderboardEntry, gen int64, ok bool, err error)
	Set(ctx context.Context, gen int64, entries []domain.LeaderboardEntry) error
	Invalidate(ctx context.Context) error
}

// NoopCache never holds anything.
type NoopCache struct{}

func (NoopCache) Get(context.Context) ([]domain.LeaderboardEntry, int64, bool, error) {
	return nil, 0, false, nil
}

func (NoopCache) Set(context.Context, int64, []domain.LeaderboardEntry) error {
	return nil
}

func (NoopCache) Invalidate(context.Context) error {
	return nil
}

type LeaderboardService struct {
	players *repository.PlayerRepository
	cache   LeaderboardCache
	metrics *metrics.Metrics
	logger  zerolog.Logger
}

func NewLeaderboardService(players *repository.PlayerRepository, cache LeaderboardCache, m *metrics.Metrics, logger zerolog.Logger) *LeaderboardService {
	return &LeaderboardService{players: players, cache: cache, metrics: m, logger: logger}
}

// Build returns the ranked leaderboard. Cache failures fall back to the store.
func (s *LeaderboardService) Build(ctx context.Context) ([]domain.LeaderboardEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	entries, gen, ok, err := s.cache.Get(ctx)
	cacheable := err == nil
	switch {
	case err != nil:
		s.metrics.LeaderboardCache.WithLabelValues("error").Inc()
		s.logger.Warn().Err(err).Msg("leaderboard cache read failed")
	case ok:
		s.metrics.LeaderboardCache.WithLabelValues("hit").Inc()
		return entries, nil
	default:
		s.metrics.LeaderboardCache.WithLabelValues("miss").Inc()
	}

	players, err := s.players.List(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list players for leaderboard")
		return nil, err
	}

	entries = domain.BuildLeaderboard(players)
	if cacheable {
		if err := s.cache.Set(ctx, gen, entries); err != nil {
			s.logger.Warn().Err(err).Msg("failed to cache leaderboard")
		}
	}

	s.logger.Debug().Int("players", len(entries)).Msg("leaderboard built")
	return entries, nil
}

func invalidate(ctx context.Context, cache LeaderboardCache, logger zerolog.Logger) {
	if err := cache.Invalidate(ctx); err != nil {
		logger.Warn().Err(err).Msg("failed to invalidate leaderboard cache")
	}
}
