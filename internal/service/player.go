package service

import (
	"context"
	"fmt"

	"github.com/Petouha/who-won/internal/constants"
	"github.com/Petouha/who-won/internal/domain"
	"github.com/Petouha/who-won/internal/metrics"
	"github.com/Petouha/who-won/internal/repository"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

type PlayerService struct {
	repo    *repository.PlayerRepository
	games   *repository.GameRepository
	cache   LeaderboardCache
	metrics *metrics.Metrics
	logger  zerolog.Logger
}

func NewPlayerService(repo *repository.PlayerRepository, games *repository.GameRepository, cache LeaderboardCache, m *metrics.Metrics, logger zerolog.Logger) *PlayerService {
	return &PlayerService{repo: repo, games: games, cache: cache, metrics: m, logger: logger}
}

// PlayerDetail is a player with every game they took part in.
type PlayerDetail struct {
	Player *domain.Player
	Games  []domain.Game
}

func (s *PlayerService) Create(ctx context.Context, name string) (*domain.Player, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	name, err := domain.NormalizePlayerName(name)
	if err != nil {
		s.reject(err)
		return nil, err
	}

	existing, err := s.repo.GetByName(ctx, name)
	if err != nil {
		s.logger.Error().Err(err).Str("name", name).Msg("failed to look up player name")
		return nil, err
	}
	if existing != nil {
		s.logger.Info().Str("name", name).Int64("existing_id", existing.ID).Msg("duplicate player name")
		err := domain.DuplicatePlayerError(name)
		s.reject(err)
		return nil, err
	}

	player, err := s.repo.Create(ctx, name)
	if err != nil {
		s.reject(err)
		s.logger.Error().Err(err).Str("name", name).Msg("failed to create player")
		return nil, err
	}

	s.metrics.PlayersRegistered.Inc()
	invalidate(ctx, s.cache, s.logger)

	s.logger.Info().Int64("player_id", player.ID).Str("name", player.Name).Msg("player created")
	return player, nil
}

func (s *PlayerService) List(ctx context.Context) ([]domain.Player, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	players, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list players")
		return nil, err
	}
	return players, nil
}

func (s *PlayerService) Get(ctx context.Context, id int64) (*domain.Player, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	return s.repo.Get(ctx, id)
}

// Detail loads the player and their games concurrently.
func (s *PlayerService) Detail(ctx context.Context, id int64) (*PlayerDetail, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	g, gCtx := errgroup.WithContext(ctx)
	var player *domain.Player
	var games []domain.Game

	g.Go(func() error {
		var err error
		player, err = s.repo.Get(gCtx, id)
		return err
	})

	g.Go(func() error {
		var err error
		games, err = s.games.ListForPlayer(gCtx, id)
		return err
	})

	if err := g.Wait(); err != nil {
		s.logger.Debug().Err(err).Int64("player_id", id).Msg("failed to load player detail")
		return nil, err
	}

	return &PlayerDetail{Player: player, Games: games}, nil
}

// FavoriteTeams returns the teams the player picked most often.
func (s *PlayerService) FavoriteTeams(ctx context.Context, id int64) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	games, err := s.games.ListForPlayer(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("player_id", id).Msg("failed to list games for favorite teams")
		return nil, fmt.Errorf("failed to load favorite teams: %w", err)
	}
	return domain.FavoriteTeams(id, games, constants.FavoriteTeamsLimit), nil
}

func (s *PlayerService) reject(err error) {
	if kind := ErrorKind(err); kind != "" {
		s.metrics.RejectedInputs.WithLabelValues(kind).Inc()
	}
}
