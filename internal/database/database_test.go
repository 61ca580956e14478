package database

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/Petouha/who-won/internal/config"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRunsMigrations(t *testing.T) {
	cfg := &config.Config{DBPath: filepath.Join(t.TempDir(), "who-won.db")}

	db, err := New(cfg, zerolog.Nop())
	require.NoError(t, err)
	defer db.Close()

	for _, table := range []string{"players", "games"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		require.NoError(t, err, table)
		assert.Equal(t, table, name)
	}

	var fk int
	require.NoError(t, db.QueryRow(`PRAGMA foreign_keys`).Scan(&fk))
	assert.Equal(t, 1, fk)
}

func TestNewIsIdempotent(t *testing.T) {
	cfg := &config.Config{DBPath: filepath.Join(t.TempDir(), "who-won.db")}

	first, err := New(cfg, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := New(cfg, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, second.Close())
}

func TestSchemaRejectsSelfMatch(t *testing.T) {
	cfg := &config.Config{DBPath: filepath.Join(t.TempDir(), "who-won.db")}
	db, err := New(cfg, zerolog.Nop())
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`INSERT INTO players (name, name_key, created_at) VALUES ('Alice', 'alice', CURRENT_TIMESTAMP)`)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO games (player_one_id, player_two_id, team_one, team_two, score_player_one, score_player_two, created_at)
		VALUES (1, 1, 'X', 'Y', 1, 0, CURRENT_TIMESTAMP)`)
	assert.Error(t, err)
}

func TestSettingsSurviveConnectionRecycling(t *testing.T) {
	cfg := &config.Config{DBPath: filepath.Join(t.TempDir(), "who-won.db")}
	db, err := New(cfg, zerolog.Nop())
	require.NoError(t, err)
	defer db.Close()

	// No idle connections: every query below runs on a freshly opened one.
	db.SetMaxIdleConns(0)

	for i := 0; i < 3; i++ {
		var fk, busy int
		require.NoError(t, db.QueryRow(`PRAGMA foreign_keys`).Scan(&fk))
		require.NoError(t, db.QueryRow(`PRAGMA busy_timeout`).Scan(&busy))
		assert.Equal(t, 1, fk)
		assert.Equal(t, 5000, busy)
	}

	_, err = db.Exec(`INSERT INTO games (player_one_id, player_two_id, team_one, team_two, score_player_one, score_player_two, created_at)
		VALUES (41, 42, 'X', 'Y', 1, 0, CURRENT_TIMESTAMP)`)
	assert.Error(t, err, "foreign keys must hold on a new connection")
}

func TestDSN(t *testing.T) {
	dsn := DSN("/tmp/who-won.db")
	assert.True(t, strings.HasPrefix(dsn, "file:/tmp/who-won.db?"))
	assert.Contains(t, dsn, "_foreign_keys=on")
	assert.Contains(t, dsn, "_journal_mode=WAL")
}
