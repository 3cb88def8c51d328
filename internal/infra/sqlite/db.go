// Package sqlite provides SQLite-based persistent storage for Inkwell.
// Uses WAL mode for concurrent reads and crash-safe writes.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver (no CGO required)
)

// DB wraps a SQLite connection with WAL mode and migrations.
type DB struct {
	db *sql.DB
}

// Open creates or opens the SQLite database at dir/journal.db.
// Enables WAL mode, foreign keys, and 5-second busy timeout.
func Open(dir string) (*DB, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	dbPath := filepath.Join(dir, "journal.db")
	dsn := dbPath + "?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	// Connection pool settings for SQLite
	db.SetMaxOpenConns(1) // SQLite is single-writer
	db.SetMaxIdleConns(1)

	d := &DB{db: db}
	if err := d.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return d, nil
}

// Close cleanly shuts down the database.
func (d *DB) Close() error {
	return d.db.Close()
}

// Ping checks database connectivity.
func (d *DB) Ping() error {
	return d.db.Ping()
}

// migrate runs idempotent schema migrations.
func (d *DB) migrate() error {
	migrations := []string{
		// Users carry both streak lineages: the prompt-completion record
		// (last_prompt_date, prompt_streak, total_prompts_completed) and
		// the cached entry-writing streak (writing_streak, longest_writing_streak,
		// last_writing_date). The cache is reconciled against recomputation.
		`CREATE TABLE IF NOT EXISTS users (
			id                      TEXT PRIMARY KEY,
			created_at              INTEGER NOT NULL,
			timezone                TEXT NOT NULL DEFAULT '',
			last_prompt_date        TEXT,
			prompt_streak           INTEGER NOT NULL DEFAULT 0,
			total_prompts_completed INTEGER NOT NULL DEFAULT 0,
			writing_streak          INTEGER NOT NULL DEFAULT 0,
			longest_writing_streak  INTEGER NOT NULL DEFAULT 0,
			last_writing_date       TEXT
		)`,

		`CREATE TABLE IF NOT EXISTS entries (
			id         TEXT PRIMARY KEY,
			user_id    TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			created_at INTEGER NOT NULL,
			content    TEXT NOT NULL,
			prompt_id  TEXT NOT NULL DEFAULT '',
			word_count INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_entries_user ON entries(user_id, created_at)`,
	}

	for _, m := range migrations {
		if _, err := d.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
		}
	}
	return nil
}
