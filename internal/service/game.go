package service

import (
	"context"
	"time"

	"github.com/Petouha/who-won/internal/constants"
	"github.com/Petouha/who-won/internal/domain"
	"github.com/Petouha/who-won/internal/metrics"
	"github.com/Petouha/who-won/internal/repository"

	"github.com/rs/zerolog"
)

type GameService struct {
	games   *repository.GameRepository
	players *repository.PlayerRepository
	rules   domain.Rules
	cache   LeaderboardCache
	metrics *metrics.Metrics
	logger  zerolog.Logger
	now     func() time.Time
}

func NewGameService(games *repository.GameRepository, players *repository.PlayerRepository, rules domain.Rules, cache LeaderboardCache, m *metrics.Metrics, logger zerolog.Logger) *GameService {
	return &GameService{
		games:   games,
		players: players,
		rules:   rules,
		cache:   cache,
		metrics: m,
		logger:  logger,
		now:     time.Now,
	}
}

// Record validates a submission, resolves the winner and stores the game
// together with both players' updated statistics.
func (s *GameService) Record(ctx context.Context, in domain.MatchInput) (*domain.Game, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	if err := s.requirePlayers(ctx, in); err != nil {
		s.reject(err)
		return nil, err
	}

	game, err := domain.NewGame(in, s.rules, s.now())
	if err != nil {
		s.reject(err)
		s.logger.Info().Err(err).Msg("match submission rejected")
		return nil, err
	}

	stored, err := s.games.CreateWithStats(ctx, game)
	if err != nil {
		s.reject(err)
		s.logger.Error().Err(err).Msg("failed to store game")
		return nil, err
	}

	outcome := domain.OutcomeLabel(stored)
	s.metrics.GamesRecorded.WithLabelValues(outcome).Inc()
	invalidate(ctx, s.cache, s.logger)

	s.logger.Info().
		Int64("game_id", stored.ID).
		Int64("player_one_id", stored.PlayerOneID).
		Int64("player_two_id", stored.PlayerTwoID).
		Int("score_player_one", stored.ScorePlayerOne).
		Int("score_player_two", stored.ScorePlayerTwo).
		Bool("penalty", stored.Penalty).
		Str("outcome", outcome).
		Msg("game recorded")

	return stored, nil
}

func (s *GameService) requirePlayers(ctx context.Context, in domain.MatchInput) error {
	for _, ref := range []struct {
		field string
		id    int64
	}{
		{"player_one_id", in.PlayerOneID},
		{"player_two_id", in.PlayerTwoID},
	} {
		if _, err := s.players.Get(ctx, ref.id); err != nil {
			if ErrorKind(err) == KindUnknownPlayer {
				return domain.UnknownPlayerError(ref.field, ref.id)
			}
			return err
		}
	}
	return nil
}

func (s *GameService) Get(ctx context.Context, id int64) (*domain.Game, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	return s.games.Get(ctx, id)
}

func (s *GameService) List(ctx context.Context) ([]domain.Game, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	games, err := s.games.List(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list games")
		return nil, err
	}
	return games, nil
}

func (s *GameService) ListForPlayer(ctx context.Context, playerID int64) ([]domain.Game, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	games, err := s.games.ListForPlayer(ctx, playerID)
	if err != nil {
		s.logger.Error().Err(err).Int64("player_id", playerID).Msg("failed to list games for player")
		return nil, err
	}
	return games, nil
}

func (s *GameService) reject(err error) {
	if kind := ErrorKind(err); kind != "" {
		s.metrics.RejectedInputs.WithLabelValues(kind).Inc()
	}
}
