package server

import (
	"net/http"
	"strconv"

	"github.com/Petouha/who-won/internal/domain"

	"github.com/gorilla/mux"
)

const gameRecordedMessage = "Match recorded"

var endpoints = []string{
	"GET /players",
	"POST /players",
	"GET /players/{id}",
	"GET /games",
	"POST /games",
	"GET /games/{id}",
	"GET /leaderboard",
	"GET /api/teams",
	"GET /api/team-ratings",
	"GET /api/favorite-teams/{player_id}",
	"POST /api/randomize-teams",
}

func (s *Server) index(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"message":   "who-won FIFA match tracker",
		"endpoints": endpoints,
	})
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) listPlayers(w http.ResponseWriter, r *http.Request) {
	players, err := s.players.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toPlayerResponses(players))
}

func (s *Server) createPlayer(w http.ResponseWriter, r *http.Request) {
	var req createPlayerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	player, err := s.players.Create(r.Context(), *req.Name)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, createdPlayerResponse{ID: player.ID, Name: player.Name})
}

func (s *Server) getPlayer(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	detail, err := s.players.Detail(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, playerDetailResponse{
		playerResponse: toPlayerResponse(*detail.Player),
		TotalGames:     detail.Player.TotalGames(),
		CreatedAt:      detail.Player.CreatedAt.UTC().Format(timeLayout),
		Games:          toGameResponses(detail.Games),
	})
}

func (s *Server) listGames(w http.ResponseWriter, r *http.Request) {
	var (
		games []domain.Game
		err   error
	)
	if raw := r.URL.Query().Get("player_id"); raw != "" {
		id, perr := strconv.ParseInt(raw, 10, 64)
		if perr != nil || id <= 0 {
			writeError(w, r, badRequest("player_id", "player_id must be a positive integer"))
			return
		}
		games, err = s.games.ListForPlayer(r.Context(), id)
	} else {
		games, err = s.games.List(r.Context())
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toGameResponses(games))
}

func (s *Server) createGame(w http.ResponseWriter, r *http.Request) {
	var req createGameRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	game, err := s.games.Record(r.Context(), req.toInput())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, createdGameResponse{ID: game.ID, WinnerID: game.WinnerID, Message: gameRecordedMessage})
}

func (s *Server) getGame(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	game, err := s.games.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toGameResponse(*game))
}

func (s *Server) getLeaderboard(w http.ResponseWriter, r *http.Request) {
	entries, err := s.leaderboard.Build(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toLeaderboardResponse(entries))
}

func (s *Server) listTeams(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.teams.ListTeamNames())
}

func (s *Server) listTeamRatings(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.teams.Ratings())
}

func (s *Server) favoriteTeams(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "player_id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	favorites, err := s.players.FavoriteTeams(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, favorites)
}

func (s *Server) randomizeTeams(w http.ResponseWriter, r *http.Request) {
	var req randomizeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	matchup, err := s.teams.Randomize(req.toRequest(), s.picker)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toMatchupResponse(matchup))
}

func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil || id <= 0 {
		return 0, badRequest(name, name+" must be a positive integer")
	}
	return id, nil
}
