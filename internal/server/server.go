package server

import (
	"net/http"

	"github.com/Petouha/who-won/internal/metrics"
	"github.com/Petouha/who-won/internal/middleware"
	"github.com/Petouha/who-won/internal/service"
	"github.com/Petouha/who-won/internal/teams"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

type Server struct {
	players     *service.PlayerService
	games       *service.GameService
	leaderboard *service.LeaderboardService
	teams       *teams.Table
	picker      teams.Picker
	metrics     *metrics.Metrics
	logger      zerolog.Logger
}

func NewServer(
	players *service.PlayerService,
	games *service.GameService,
	leaderboard *service.LeaderboardService,
	table *teams.Table,
	picker teams.Picker,
	m *metrics.Metrics,
	logger zerolog.Logger,
) *Server {
	return &Server{
		players:     players,
		games:       games,
		leaderboard: leaderboard,
		teams:       table,
		picker:      picker,
		metrics:     m,
		logger:      logger,
	}
}

// Handler builds the routed HTTP handler with its middleware chain.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.Use(middleware.Metrics(s.metrics))

	r.HandleFunc("/players", s.listPlayers).Methods(http.MethodGet)
	r.HandleFunc("/players", s.createPlayer).Methods(http.MethodPost)
	r.HandleFunc("/players/{id:[0-9]+}", s.getPlayer).Methods(http.MethodGet)
	r.HandleFunc("/games", s.listGames).Methods(http.MethodGet)
	r.HandleFunc("/games", s.createGame).Methods(http.MethodPost)
	r.HandleFunc("/games/{id:[0-9]+}", s.getGame).Methods(http.MethodGet)
	r.HandleFunc("/leaderboard", s.getLeaderboard).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("", s.index).Methods(http.MethodGet)
	api.HandleFunc("/teams", s.listTeams).Methods(http.MethodGet)
	api.HandleFunc("/team-ratings", s.listTeamRatings).Methods(http.MethodGet)
	api.HandleFunc("/favorite-teams/{player_id:[0-9]+}", s.favoriteTeams).Methods(http.MethodGet)
	api.HandleFunc("/randomize-teams", s.randomizeTeams).Methods(http.MethodPost)

	r.HandleFunc("/health", s.health).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.HandlerFor(s.metrics.Registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found", Code: codeNotFound})
	})

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	})

	return middleware.Recovery(s.logger)(middleware.RequestID(s.logger)(c.Handler(r)))
}
