package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Petouha/who-won/internal/cache"
	"github.com/Petouha/who-won/internal/db"
	"github.com/Petouha/who-won/internal/domain"
	"github.com/Petouha/who-won/internal/metrics"
	"github.com/Petouha/who-won/internal/repository"
	"github.com/Petouha/who-won/internal/testutil"

	"github.com/alicebob/miniredis/v2"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
)

type ServiceSuite struct {
	suite.Suite
	ctx         context.Context
	metrics     *metrics.Metrics
	playerRepo  *repository.PlayerRepository
	gameRepo    *repository.GameRepository
	players     *PlayerService
	games       *GameService
	leaderboard *LeaderboardService
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.build(NoopCache{}, domain.Rules{})
}

func (s *ServiceSuite) build(c LeaderboardCache, rules domain.Rules) {
	sqlDB := testutil.NewDB(s.T())
	queries := db.New(sqlDB)
	logger := testutil.NopLogger()

	s.ctx = context.Background()
	s.metrics = metrics.New()
	s.playerRepo = repository.NewPlayerRepository(sqlDB, queries, logger)
	s.gameRepo = repository.NewGameRepository(sqlDB, queries, logger)
	s.players = NewPlayerService(s.playerRepo, s.gameRepo, c, s.metrics, logger)
	s.games = NewGameService(s.gameRepo, s.playerRepo, rules, c, s.metrics, logger)
	s.leaderboard = NewLeaderboardService(s.playerRepo, c, s.metrics, logger)
}

func (s *ServiceSuite) player(name string) *domain.Player {
	p, err := s.players.Create(s.ctx, name)
	s.Require().NoError(err)
	return p
}

func (s *ServiceSuite) match(one, two *domain.Player, scoreOne, scoreTwo int) domain.MatchInput {
	return domain.MatchInput{
		PlayerOneID:    one.ID,
		PlayerTwoID:    two.ID,
		TeamOne:        "X",
		TeamTwo:        "Y",
		ScorePlayerOne: scoreOne,
		ScorePlayerTwo: scoreTwo,
	}
}

func (s *ServiceSuite) reload(p *domain.Player) *domain.Player {
	got, err := s.players.Get(s.ctx, p.ID)
	s.Require().NoError(err)
	return got
}

func (s *ServiceSuite) fieldOf(err error) string {
	var verr *domain.ValidationError
	s.Require().True(errors.As(err, &verr), "expected a validation error, got %v", err)
	return verr.Field
}

// Player registry

func (s *ServiceSuite) TestCreatePlayerTrimsName() {
	p := s.player("  Alice  ")
	s.Equal("Alice", p.Name)
	s.Equal(1.0, promtest.ToFloat64(s.metrics.PlayersRegistered))
}

func (s *ServiceSuite) TestCreatePlayerDuplicateIgnoresCase() {
	s.player("Alice")

	_, err := s.players.Create(s.ctx, "alice")
	s.ErrorIs(err, domain.ErrDuplicatePlayer)
	s.Equal(KindDuplicatePlayer, ErrorKind(err))
	s.Equal(1.0, promtest.ToFloat64(s.metrics.RejectedInputs.WithLabelValues(KindDuplicatePlayer)))
}

func (s *ServiceSuite) TestCreatePlayerDuplicateNonASCIIName() {
	s.player("Élodie")

	_, err := s.players.Create(s.ctx, "élodie")
	s.ErrorIs(err, domain.ErrDuplicatePlayer)

	players, err := s.players.List(s.ctx)
	s.Require().NoError(err)
	s.Len(players, 1)
}

func (s *ServiceSuite) TestCreatePlayerBlankName() {
	_, err := s.players.Create(s.ctx, "   ")
	s.ErrorIs(err, domain.ErrInvalidPlayerName)
}

func (s *ServiceSuite) TestListPlayersInCreationOrder() {
	s.player("Zoe")
	s.player("Adam")

	players, err := s.players.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(players, 2)
	s.Equal("Zoe", players[0].Name)
	s.Equal("Adam", players[1].Name)
}

// Match recording

func (s *ServiceSuite) TestRecordWinScenario() {
	a := s.player("A")
	b := s.player("B")

	game, err := s.games.Record(s.ctx, s.match(a, b, 3, 1))
	s.Require().NoError(err)
	s.Require().NotNil(game.WinnerID)
	s.Equal(a.ID, *game.WinnerID)

	a, b = s.reload(a), s.reload(b)
	s.Equal(1, a.Wins)
	s.Equal(1, b.Losses)
	s.Equal(3, a.GoalsFor)
	s.Equal(1, a.GoalsAgainst)
	s.Equal(1.0, promtest.ToFloat64(s.metrics.GamesRecorded.WithLabelValues("player_one")))
}

func (s *ServiceSuite) TestRecordPenaltyScenario() {
	a := s.player("A")
	b := s.player("B")
	five, four := 5, 4

	in := s.match(a, b, 2, 2)
	in.Penalty = true
	in.PenaltyScorePlayerOne = &five
	in.PenaltyScorePlayerTwo = &four

	game, err := s.games.Record(s.ctx, in)
	s.Require().NoError(err)
	s.Require().NotNil(game.WinnerID)
	s.Equal(a.ID, *game.WinnerID)

	a, b = s.reload(a), s.reload(b)
	s.Equal(1, a.Wins)
	s.Equal(0, a.Draws)
	s.Equal(1, b.Losses)
	s.Equal(0, b.Draws)
}

func (s *ServiceSuite) TestRecordUnknownPlayer() {
	a := s.player("A")

	_, err := s.games.Record(s.ctx, domain.MatchInput{
		PlayerOneID: 999, PlayerTwoID: a.ID,
		TeamOne: "X", TeamTwo: "Y",
	})
	s.ErrorIs(err, domain.ErrUnknownPlayer)
	s.Equal("player_one_id", s.fieldOf(err))

	// Unknown ids win over every other check.
	_, err = s.games.Record(s.ctx, domain.MatchInput{
		PlayerOneID: 998, PlayerTwoID: 998,
		ScorePlayerOne: -1,
	})
	s.ErrorIs(err, domain.ErrUnknownPlayer)

	a = s.reload(a)
	s.Zero(a.TotalGames())
}

func (s *ServiceSuite) TestRecordSamePlayer() {
	a := s.player("A")
	for _, sc := range [][2]int{{0, 0}, {5, 1}} {
		_, err := s.games.Record(s.ctx, s.match(a, a, sc[0], sc[1]))
		s.ErrorIs(err, domain.ErrSamePlayer)
	}
	s.Equal(2.0, promtest.ToFloat64(s.metrics.RejectedInputs.WithLabelValues(KindSamePlayer)))
}

func (s *ServiceSuite) TestRecordInvalidInputLeavesStatsUntouched() {
	a := s.player("A")
	b := s.player("B")

	in := s.match(a, b, -1, 0)
	_, err := s.games.Record(s.ctx, in)
	s.ErrorIs(err, domain.ErrInvalidScore)
	s.Equal("score_player_one", s.fieldOf(err))

	in = s.match(a, b, 1, 0)
	in.TeamTwo = "  "
	_, err = s.games.Record(s.ctx, in)
	s.ErrorIs(err, domain.ErrInvalidTeamName)
	s.Equal("team_two", s.fieldOf(err))

	games, err := s.games.List(s.ctx)
	s.Require().NoError(err)
	s.Empty(games)
	s.Zero(s.reload(a).TotalGames())
}

func (s *ServiceSuite) TestStrictTeams() {
	s.build(NoopCache{}, domain.Rules{StrictTeams: true, Teams: teamSet{"Arsenal": true, "Lyon": true}})
	a := s.player("A")
	b := s.player("B")

	in := s.match(a, b, 1, 0)
	_, err := s.games.Record(s.ctx, in)
	s.ErrorIs(err, domain.ErrInvalidTeamName)

	in.TeamOne, in.TeamTwo = "Arsenal", "Lyon"
	_, err = s.games.Record(s.ctx, in)
	s.NoError(err)
}

func (s *ServiceSuite) TestCountersMatchGameHistory() {
	a := s.player("A")
	b := s.player("B")
	c := s.player("C")

	matches := []domain.MatchInput{
		s.match(a, b, 1, 0),
		s.match(b, c, 2, 2),
		s.match(c, a, 3, 1),
		s.match(a, c, 0, 0),
		s.match(b, a, 4, 2),
	}
	for _, m := range matches {
		_, err := s.games.Record(s.ctx, m)
		s.Require().NoError(err)
	}

	for _, p := range []*domain.Player{a, b, c} {
		games, err := s.games.ListForPlayer(s.ctx, p.ID)
		s.Require().NoError(err)
		s.Equal(len(games), s.reload(p).TotalGames(), p.Name)
	}
}

func (s *ServiceSuite) TestConcurrentRecordsDoNotLoseUpdates() {
	a := s.player("A")
	b := s.player("B")

	const n = 20
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.games.Record(s.ctx, s.match(a, b, 1, 0))
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		s.Require().NoError(err)
	}

	a, b = s.reload(a), s.reload(b)
	s.Equal(n, a.Wins)
	s.Equal(n, b.Losses)
	s.Equal(n, a.GoalsFor)
}

// Favorites and detail

func (s *ServiceSuite) TestFavoriteTeamsAndDetail() {
	a := s.player("A")
	b := s.player("B")

	for _, teams := range [][2]string{{"Arsenal", "Lyon"}, {"PSG", "Lyon"}, {"Arsenal", "Milan"}} {
		in := s.match(a, b, 1, 1)
		in.TeamOne, in.TeamTwo = teams[0], teams[1]
		_, err := s.games.Record(s.ctx, in)
		s.Require().NoError(err)
	}

	favorites, err := s.players.FavoriteTeams(s.ctx, a.ID)
	s.Require().NoError(err)
	s.Equal([]string{"Arsenal", "PSG"}, favorites)

	favorites, err = s.players.FavoriteTeams(s.ctx, b.ID)
	s.Require().NoError(err)
	s.Equal([]string{"Lyon", "Milan"}, favorites)

	detail, err := s.players.Detail(s.ctx, a.ID)
	s.Require().NoError(err)
	s.Equal("A", detail.Player.Name)
	s.Len(detail.Games, 3)

	_, err = s.players.Detail(s.ctx, 12345)
	s.ErrorIs(err, domain.ErrUnknownPlayer)
}

// Leaderboard

func (s *ServiceSuite) TestLeaderboard() {
	a := s.player("A")
	b := s.player("B")
	s.player("C")

	_, err := s.games.Record(s.ctx, s.match(b, a, 2, 0))
	s.Require().NoError(err)

	board, err := s.leaderboard.Build(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(board, 3)
	s.Equal("B", board[0].Name)
	s.Equal(100.0, board[0].WinRate)
	s.Equal("A", board[1].Name)
	s.Equal(-2, board[1].GoalDifference)
	s.Equal("C", board[2].Name)
	s.Equal(0.0, board[2].WinRate)
}

func (s *ServiceSuite) TestLeaderboardCacheIsInvalidatedOnWrites() {
	mini := miniredis.RunT(s.T())
	client := redis.NewClient(&redis.Options{Addr: mini.Addr()})
	s.T().Cleanup(func() { _ = client.Close() })
	s.build(cache.NewLeaderboardCache(client, time.Minute), domain.Rules{})

	a := s.player("A")
	b := s.player("B")

	board, err := s.leaderboard.Build(s.ctx)
	s.Require().NoError(err)
	s.Len(board, 2)
	s.Equal(1.0, promtest.ToFloat64(s.metrics.LeaderboardCache.WithLabelValues("miss")))

	_, err = s.leaderboard.Build(s.ctx)
	s.Require().NoError(err)
	s.Equal(1.0, promtest.ToFloat64(s.metrics.LeaderboardCache.WithLabelValues("hit")))

	_, err = s.games.Record(s.ctx, s.match(b, a, 1, 0))
	s.Require().NoError(err)

	board, err = s.leaderboard.Build(s.ctx)
	s.Require().NoError(err)
	s.Equal("B", board[0].Name)
	s.Equal(1, board[0].Wins)
	s.Equal(2.0, promtest.ToFloat64(s.metrics.LeaderboardCache.WithLabelValues("miss")))
}

// racingCache runs beforeSet once, between the store read and the cache
// write of a leaderboard rebuild.
type racingCache struct {
	LeaderboardCache
	beforeSet func()
}

func (c *racingCache) Set(ctx context.Context, gen int64, entries []domain.LeaderboardEntry) error {
	if c.beforeSet != nil {
		run := c.beforeSet
		c.beforeSet = nil
		run()
	}
	return c.LeaderboardCache.Set(ctx, gen, entries)
}

func (s *ServiceSuite) TestLeaderboardRebuildRacingWriteIsNotCached() {
	mini := miniredis.RunT(s.T())
	client := redis.NewClient(&redis.Options{Addr: mini.Addr()})
	s.T().Cleanup(func() { _ = client.Close() })
	racing := &racingCache{LeaderboardCache: cache.NewLeaderboardCache(client, time.Minute)}
	s.build(racing, domain.Rules{})

	a := s.player("A")
	b := s.player("B")

	racing.beforeSet = func() {
		_, err := s.games.Record(s.ctx, s.match(a, b, 1, 0))
		s.Require().NoError(err)
	}

	board, err := s.leaderboard.Build(s.ctx)
	s.Require().NoError(err)
	s.Zero(board[0].Wins, "built before the write committed")

	board, err = s.leaderboard.Build(s.ctx)
	s.Require().NoError(err)
	s.Equal("A", board[0].Name)
	s.Equal(1, board[0].Wins)
	s.Equal(s.reload(a).Wins, board[0].Wins)
}

func (s *ServiceSuite) TestLeaderboardFallsBackWhenCacheFails() {
	mini := miniredis.RunT(s.T())
	client := redis.NewClient(&redis.Options{Addr: mini.Addr()})
	s.T().Cleanup(func() { _ = client.Close() })
	s.build(cache.NewLeaderboardCache(client, time.Minute), domain.Rules{})
	s.player("A")

	mini.Close()

	board, err := s.leaderboard.Build(s.ctx)
	s.Require().NoError(err)
	s.Len(board, 1)
	s.Equal(1.0, promtest.ToFloat64(s.metrics.LeaderboardCache.WithLabelValues("error")))
}

type teamSet map[string]bool

func (t teamSet) IsValidTeamName(name string) bool { return t[name] }
