package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/Petouha/who-won/internal/constants"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

type Config struct {
	DBPath          string
	ServerPort      string
	LogLevel        string
	TeamsPath       string
	TeamRatingsPath string
	// TeamsURL, when set, replaces TeamsPath as the source of team names.
	TeamsURL            string
	StrictTeams         bool
	PenaltyZeroAsAbsent bool
	RedisURL            string
	LeaderboardCacheTTL time.Duration
}

func Load(logger zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	cfg := &Config{
		DBPath:          getEnv("DB_PATH", "who-won.db"),
		ServerPort:      getEnv("SERVER_PORT", "5000"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		TeamsPath:       getEnv("TEAMS_PATH", "teams.txt"),
		TeamRatingsPath: getEnv("TEAM_RATINGS_PATH", "team_ratings.yaml"),
		TeamsURL:        getEnv("TEAMS_URL", ""),
		RedisURL:        getEnv("REDIS_URL", ""),
	}

	var err error
	if cfg.StrictTeams, err = getBool("STRICT_TEAMS", false); err != nil {
		return nil, err
	}
	if cfg.PenaltyZeroAsAbsent, err = getBool("PENALTY_ZERO_AS_ABSENT", false); err != nil {
		return nil, err
	}
	if cfg.LeaderboardCacheTTL, err = getDuration("LEADERBOARD_CACHE_TTL", constants.LeaderboardCacheTTL); err != nil {
		return nil, err
	}

	if _, err := zerolog.ParseLevel(cfg.LogLevel); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", cfg.LogLevel, err)
	}

	logger.Info().
		Str("db_path", cfg.DBPath).
		Str("server_port", cfg.ServerPort).
		Str("log_level", cfg.LogLevel).
		Str("teams_path", cfg.TeamsPath).
		Str("team_ratings_path", cfg.TeamRatingsPath).
		Bool("teams_remote", cfg.TeamsURL != "").
		Bool("strict_teams", cfg.StrictTeams).
		Bool("penalty_zero_as_absent", cfg.PenaltyZeroAsAbsent).
		Bool("redis_enabled", cfg.RedisURL != "").
		Dur("leaderboard_cache_ttl", cfg.LeaderboardCacheTTL).
		Msg("configuration loaded")

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return b, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return d, nil
}

var Module = fx.Provide(Load)
