// Package sqlite implements the repository interfaces using SQLite as the
// storage backend.
//
// WHY SQLITE?
// SQLite is an embedded database — it lives inside the Go binary as a single
// file. No separate database server to install, configure, or manage. The
// whole deployment is one binary plus one file, which is exactly right for a
// kiosk-style installation with a handful of visitors a day.
//
// WHY modernc.org/sqlite INSTEAD OF github.com/mattn/go-sqlite3?
// mattn/go-sqlite3 uses CGo, which means a C compiler at build time and
// painful cross-compilation. modernc.org/sqlite is a pure Go translation of
// the SQLite sources — works everywhere Go works.
package sqlite

import (
	"database/sql"
	"fmt"

	// Side-effect import: the driver registers itself with database/sql
	// under the name "sqlite" at init time.
	_ "modernc.org/sqlite"
)

// DB wraps a sql.DB connection pool and provides the repository methods.
// It implements every repository interface in internal/repository — one
// store object wired into all five services.
type DB struct {
	conn *sql.DB
}

// New opens (or creates) the database at dbPath and runs migrations.
// Use ":memory:" for an in-memory database in tests.
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	// One connection, shared. SQLite allows a single writer at a time, and
	// ":memory:" databases are per-connection — a pool of two would see two
	// different databases.
	conn.SetMaxOpenConns(1)

	// Force an immediate connection so a bad path fails here, not on the
	// first query.
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// WAL mode allows concurrent reads while a write is in flight —
	// important for a web server where check-ins and profile reads overlap.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}

	// Foreign keys are OFF by default in SQLite; we want the goober →
	// fingerprint and history → event references enforced.
	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: enabling foreign keys: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// Close closes the connection pool. Callers should defer this right after New.
func (db *DB) Close() error {
	return db.conn.Close()
}

// migrate creates the schema. CREATE TABLE IF NOT EXISTS keeps this
// idempotent — safe to run on every start against an existing database.
//
// The UNIQUE constraint on fingerprints.fingerprint is load-bearing: it is
// what makes concurrent Ensure calls for the same unseen token safe (see
// fingerprint.go). The UNIQUE on goobers.fingerprint_id enforces the
// one-goober-per-fingerprint bind at the storage layer.
func (db *DB) migrate() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS fingerprints (
			id          TEXT PRIMARY KEY,
			fingerprint TEXT NOT NULL UNIQUE
		);
		CREATE INDEX IF NOT EXISTS idx_fingerprints_fingerprint ON fingerprints(fingerprint);

		CREATE TABLE IF NOT EXISTS goobers (
			id             TEXT PRIMARY KEY,
			name           TEXT NOT NULL,
			fingerprint_id TEXT NOT NULL UNIQUE REFERENCES fingerprints(id),
			image          TEXT NOT NULL DEFAULT '',
			created_at     DATETIME NOT NULL
		);

		CREATE TABLE IF NOT EXISTS checkins (
			id             TEXT PRIMARY KEY,
			fingerprint_id TEXT NOT NULL REFERENCES fingerprints(id),
			timestamp      DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_checkins_timestamp ON checkins(timestamp);

		CREATE TABLE IF NOT EXISTS events (
			id           TEXT PRIMARY KEY,
			name         TEXT NOT NULL,
			description  TEXT NOT NULL,
			stat_name    TEXT NOT NULL DEFAULT '',
			type         TEXT NOT NULL,
			value_float  REAL,
			value_string TEXT
		);

		CREATE TABLE IF NOT EXISTS goober_history (
			id        TEXT PRIMARY KEY,
			goober_id TEXT NOT NULL REFERENCES goobers(id),
			event_id  TEXT NOT NULL REFERENCES events(id),
			timestamp DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_goober_history_goober ON goober_history(goober_id, timestamp);
	`)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}
