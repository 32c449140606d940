// Package db opens and migrates the SQLite file backing the settings store.
// The whole persistence surface is one key-value table, so migrations are a
// short list of idempotent statements re-run on every open.
package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS settings (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_settings_updated ON settings(updated_at)`,
}

// OpenDB opens the database at path, creating parent directories as needed,
// and brings the schema up to date. ":memory:" opens an in-memory database.
func OpenDB(path string) (*sql.DB, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
	}

	database, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}

	// WAL keeps reads cheap while the learning loop writes in the background.
	if _, err := database.Exec("PRAGMA journal_mode = WAL"); err != nil {
		database.Close()
		return nil, fmt.Errorf("enabling WAL: %w", err)
	}

	if err := Migrate(database); err != nil {
		database.Close()
		return nil, err
	}
	return database, nil
}

// Migrate applies the schema statements in order.
func Migrate(database *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := database.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
