package constants

import "time"

const (
	DatabaseTimeout     = 5 * time.Second
	ExternalAPITimeout  = 10 * time.Second
	LeaderboardCacheTTL = 1 * time.Minute
)

// SQLite allows a single writer. Connection settings come from the DSN, so
// recycling a pooled connection does not lose them.
const (
	DBMaxOpenConns    = 1
	DBMaxIdleConns    = 1
	DBConnMaxLifetime = 1 * time.Hour
	DBMaxIdleTime     = 10 * time.Minute
)

const (
	ShutdownTimeout = 5 * time.Second
)

const (
	MaxTeamNameLength   = 100
	MaxPlayerNameLength = 50
	MaxScore            = 999
	FavoriteTeamsLimit  = 5
)
