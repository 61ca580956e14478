package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/Petouha/who-won/internal/domain"
	"github.com/Petouha/who-won/internal/teams"
)

const timeLayout = time.RFC3339

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type playerResponse struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Wins         int    `json:"wins"`
	Losses       int    `json:"losses"`
	Draws        int    `json:"draws"`
	GoalsFor     int    `json:"goals_for"`
	GoalsAgainst int    `json:"goals_against"`
}

type createdPlayerResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type playerDetailResponse struct {
	playerResponse
	TotalGames int            `json:"total_games"`
	CreatedAt  string         `json:"created_at"`
	Games      []gameResponse `json:"games"`
}

type gameResponse struct {
	ID             int64   `json:"id"`
	PlayerOneID    int64   `json:"player_one_id"`
	PlayerTwoID    int64   `json:"player_two_id"`
	TeamOne        string  `json:"team_one"`
	TeamTwo        string  `json:"team_two"`
	Score          string  `json:"score"`
	ScorePlayerOne int     `json:"score_player_one"`
	ScorePlayerTwo int     `json:"score_player_two"`
	Penalty        bool    `json:"penalty"`
	PenaltyScore   *string `json:"penalty_score"`
	WinnerID       *int64  `json:"winner_id"`
	CreatedAt      string  `json:"created_at"`
}

type createdGameResponse struct {
	ID       int64  `json:"id"`
	WinnerID *int64 `json:"winner_id"`
	Message  string `json:"message"`
}

type leaderboardEntryResponse struct {
	PlayerID       int64   `json:"player_id"`
	Name           string  `json:"name"`
	Wins           int     `json:"wins"`
	Losses         int     `json:"losses"`
	Draws          int     `json:"draws"`
	TotalGames     int     `json:"total_games"`
	WinRate        float64 `json:"win_rate"`
	GoalsFor       int     `json:"goals_for"`
	GoalsAgainst   int     `json:"goals_against"`
	GoalDifference int     `json:"goal_difference"`
}

type matchupResponse struct {
	TeamOne          domain.TeamRating `json:"team1"`
	TeamTwo          domain.TeamRating `json:"team2"`
	RatingDifference int               `json:"rating_difference"`
}

func toPlayerResponse(p domain.Player) playerResponse {
	return playerResponse{
		ID:           p.ID,
		Name:         p.Name,
		Wins:         p.Wins,
		Losses:       p.Losses,
		Draws:        p.Draws,
		GoalsFor:     p.GoalsFor,
		GoalsAgainst: p.GoalsAgainst,
	}
}

func toPlayerResponses(players []domain.Player) []playerResponse {
	out := make([]playerResponse, 0, len(players))
	for _, p := range players {
		out = append(out, toPlayerResponse(p))
	}
	return out
}

func toGameResponse(g domain.Game) gameResponse {
	resp := gameResponse{
		ID:             g.ID,
		PlayerOneID:    g.PlayerOneID,
		PlayerTwoID:    g.PlayerTwoID,
		TeamOne:        g.TeamOne,
		TeamTwo:        g.TeamTwo,
		Score:          fmt.Sprintf("%d-%d", g.ScorePlayerOne, g.ScorePlayerTwo),
		ScorePlayerOne: g.ScorePlayerOne,
		ScorePlayerTwo: g.ScorePlayerTwo,
		Penalty:        g.Penalty,
		WinnerID:       g.WinnerID,
		CreatedAt:      g.CreatedAt.UTC().Format(timeLayout),
	}
	if g.Penalty && g.PenaltyScorePlayerOne != nil && g.PenaltyScorePlayerTwo != nil {
		score := fmt.Sprintf("%d-%d", *g.PenaltyScorePlayerOne, *g.PenaltyScorePlayerTwo)
		resp.PenaltyScore = &score
	}
	return resp
}

func toGameResponses(games []domain.Game) []gameResponse {
	out := make([]gameResponse, 0, len(games))
	for _, g := range games {
		out = append(out, toGameResponse(g))
	}
	return out
}

func toLeaderboardResponse(entries []domain.LeaderboardEntry) []leaderboardEntryResponse {
	out := make([]leaderboardEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, leaderboardEntryResponse{
			PlayerID:       e.PlayerID,
			Name:           e.Name,
			Wins:           e.Wins,
			Losses:         e.Losses,
			Draws:          e.Draws,
			TotalGames:     e.TotalGames,
			WinRate:        e.WinRate,
			GoalsFor:       e.GoalsFor,
			GoalsAgainst:   e.GoalsAgainst,
			GoalDifference: e.GoalDifference,
		})
	}
	return out
}

func toMatchupResponse(m *teams.Matchup) matchupResponse {
	return matchupResponse{TeamOne: m.TeamOne, TeamTwo: m.TeamTwo, RatingDifference: m.RatingDifference}
}
