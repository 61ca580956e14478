package testutil

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/Petouha/who-won/internal/config"
	"github.com/Petouha/who-won/internal/database"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// NopLogger returns a logger that discards all output.
func NopLogger() zerolog.Logger {
	return zerolog.Nop()
}

// NewDB opens a migrated SQLite database in a temp dir, closed on cleanup.
func NewDB(t testing.TB) *sql.DB {
	t.Helper()

	cfg := &config.Config{DBPath: filepath.Join(t.TempDir(), "test.db")}
	sqlDB, err := database.New(cfg, NopLogger())
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	return sqlDB
}
