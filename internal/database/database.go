package database

import (
	"database/sql"
	"embed"
	"fmt"
	"net/url"

	"github.com/Petouha/who-won/internal/config"
	"github.com/Petouha/who-won/internal/constants"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// connParams are applied by the driver to every connection it opens, so a
// recycled pool connection keeps foreign keys and the busy timeout.
var connParams = url.Values{
	"_foreign_keys": {"on"},
	"_busy_timeout": {"5000"},
	"_journal_mode": {"WAL"},
	"_synchronous":  {"NORMAL"},
	"_txlock":       {"immediate"},
}

// DSN builds the go-sqlite3 connection string for path.
func DSN(path string) string {
	return "file:" + path + "?" + connParams.Encode()
}

func New(cfg *config.Config, logger zerolog.Logger) (*sql.DB, error) {
	log := logger.With().Str("path", cfg.DBPath).Logger()
	log.Info().Msg("opening database")

	db, err := sql.Open("sqlite3", DSN(cfg.DBPath))
	if err != nil {
		log.Error().Err(err).Msg("failed to open database")
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(constants.DBMaxOpenConns)
	db.SetMaxIdleConns(constants.DBMaxIdleConns)
	db.SetConnMaxLifetime(constants.DBConnMaxLifetime)
	db.SetConnMaxIdleTime(constants.DBMaxIdleTime)

	var fk int
	if err := db.QueryRow(`PRAGMA foreign_keys`).Scan(&fk); err != nil || fk != 1 {
		db.Close()
		if err == nil {
			err = fmt.Errorf("foreign_keys = %d", fk)
		}
		log.Error().Err(err).Msg("database did not enable foreign keys")
		return nil, fmt.Errorf("failed to verify database settings: %w", err)
	}

	version, err := migrate(db)
	if err != nil {
		log.Error().Err(err).Msg("failed to run migrations")
		db.Close()
		return nil, err
	}

	log.Info().Int64("schema_version", version).Msg("database ready")
	return db, nil
}

func migrate(db *sql.DB) (int64, error) {
	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("sqlite3"); err != nil {
		return 0, fmt.Errorf("failed to set goose dialect: %w", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		return 0, fmt.Errorf("failed to run goose migrations: %w", err)
	}

	version, err := goose.GetDBVersion(db)
	if err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return version, nil
}
