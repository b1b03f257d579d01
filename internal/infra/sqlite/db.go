// Package sqlite provides SQLite-based persistent storage for Ka Pai Putea.
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

// Open creates or opens the SQLite database at dir/state.db.
// Enables WAL mode, foreign keys, and 5-second busy timeout.
func Open(dir string) (*DB, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	dbPath := filepath.Join(dir, "state.db")
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
		// Key-value store for profile state (xp, streak, stream, tag, balance)
		`CREATE TABLE IF NOT EXISTS state (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,

		// Lesson and module progress
		`CREATE TABLE IF NOT EXISTS lesson_completions (
			lesson_id    TEXT PRIMARY KEY,
			module_slug  TEXT NOT NULL,
			completed_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_lessons_module ON lesson_completions(module_slug)`,
		`CREATE INDEX IF NOT EXISTS idx_lessons_completed ON lesson_completions(completed_at)`,
		`CREATE TABLE IF NOT EXISTS module_completions (
			module_slug  TEXT PRIMARY KEY,
			completed_at INTEGER NOT NULL
		)`,

		// Earned badges
		`CREATE TABLE IF NOT EXISTS earned_badges (
			badge_id  TEXT PRIMARY KEY,
			earned_at INTEGER NOT NULL
		)`,

		// XP ledger (append-only)
		`CREATE TABLE IF NOT EXISTS xp_transactions (
			id           TEXT PRIMARY KEY,
			amount       INTEGER NOT NULL,
			source       TEXT NOT NULL,
			reference_id TEXT NOT NULL DEFAULT '',
			description  TEXT NOT NULL DEFAULT '',
			created_at   INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_xp_created ON xp_transactions(created_at)`,

		// Onboarding quiz answers
		`CREATE TABLE IF NOT EXISTS quiz_answers (
			question_id TEXT PRIMARY KEY,
			answer      TEXT NOT NULL,
			answered_at INTEGER NOT NULL
		)`,

		// Virtual portfolio
		`CREATE TABLE IF NOT EXISTS holdings (
			symbol        TEXT PRIMARY KEY,
			shares        INTEGER NOT NULL,
			avg_buy_price REAL NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS trades (
			id              TEXT PRIMARY KEY,
			symbol          TEXT NOT NULL,
			type            TEXT NOT NULL,
			shares          INTEGER NOT NULL,
			price_per_share REAL NOT NULL,
			total_amount    REAL NOT NULL,
			created_at      INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_trades_created ON trades(created_at)`,

		// Side-hustle business (single row)
		`CREATE TABLE IF NOT EXISTS business (
			id                INTEGER PRIMARY KEY CHECK (id = 1),
			business_type     TEXT NOT NULL,
			revenue_per_hour  REAL NOT NULL,
			cost_per_hour     REAL NOT NULL,
			last_collected_at INTEGER NOT NULL,
			total_earned      REAL NOT NULL DEFAULT 0,
			business_level    INTEGER NOT NULL DEFAULT 1,
			upgrades          TEXT NOT NULL DEFAULT '[]'
		)`,
	}

	for _, m := range migrations {
		if _, err := d.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
		}
	}
	return nil
}

// ─── State KV ───────────────────────────────────────────────────────────────

// SetState stores a key-value pair in the state table.
func (d *DB) SetState(key, value string) error {
	_, err := d.db.Exec(
		`INSERT INTO state (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value=excluded.value`,
		key, value,
	)
	return err
}

// GetState retrieves a value from the state table. Missing keys read as "".
func (d *DB) GetState(key string) (string, error) {
	var value string
	err := d.db.QueryRow(`SELECT value FROM state WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return value, err
}

// ─── Helpers ────────────────────────────────────────────────────────────────

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}
