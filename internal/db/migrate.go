package db

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// All contains the ordered list of migrations to apply.
var All = []string{
	`CREATE TABLE features (
		id          INTEGER PRIMARY KEY,
		file_path   TEXT UNIQUE NOT NULL,
		description TEXT NOT NULL,
		annotations TEXT NOT NULL DEFAULT '',
		run_id      TEXT NOT NULL,
		created_at  DATETIME NOT NULL DEFAULT (datetime('now')),
		updated_at  DATETIME NOT NULL DEFAULT (datetime('now'))
	)`,
	`CREATE TABLE scenarios (
		id            INTEGER PRIMARY KEY,
		feature_id    INTEGER NOT NULL REFERENCES features(id),
		idx           INTEGER NOT NULL,
		description   TEXT NOT NULL,
		annotations   TEXT NOT NULL DEFAULT '',
		is_background INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE steps (
		id          INTEGER PRIMARY KEY,
		scenario_id INTEGER NOT NULL REFERENCES scenarios(id),
		position    INTEGER NOT NULL,
		keyword     TEXT NOT NULL,
		text        TEXT NOT NULL
	)`,
	`CREATE TABLE sync_runs (
		id          TEXT PRIMARY KEY,
		started_at  DATETIME NOT NULL DEFAULT (datetime('now')),
		finished_at DATETIME,
		file_count  INTEGER NOT NULL DEFAULT 0
	)`,
}

// Open opens the sqlite database at path and applies pending migrations.
func Open(path string) (*sql.DB, error) {
	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := sqlDB.Exec(`PRAGMA foreign_keys = ON`); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}
	if err := Migrate(sqlDB); err != nil {
		sqlDB.Close()
		return nil, err
	}
	return sqlDB, nil
}

func Migrate(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS schema_version (version INTEGER NOT NULL)`)
	if err != nil {
		return fmt.Errorf("creating schema_version table: %w", err)
	}

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM schema_version`).Scan(&count); err != nil {
		return fmt.Errorf("checking schema_version: %w", err)
	}
	if count == 0 {
		if _, err := db.Exec(`INSERT INTO schema_version (version) VALUES (0)`); err != nil {
			return fmt.Errorf("initializing schema version: %w", err)
		}
	}

	var current int
	if err := db.QueryRow(`SELECT version FROM schema_version`).Scan(&current); err != nil {
		return fmt.Errorf("reading schema version: %w", err)
	}

	for i := current; i < len(All); i++ {
		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("beginning migration %d: %w", i+1, err)
		}

		if _, err := tx.Exec(All[i]); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}

		if _, err := tx.Exec(`UPDATE schema_version SET version = ?`, i+1); err != nil {
			tx.Rollback()
			return fmt.Errorf("updating schema version to %d: %w", i+1, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("committing migration %d: %w", i+1, err)
		}
	}

	return nil
}
