// Package sqlite implements the repository interfaces using SQLite as the
// storage backend.
//
// The driver is modernc.org/sqlite, a pure Go translation of SQLite, so the
// binary builds without CGo and runs anywhere Go runs. Its init() registers
// the driver name "sqlite" with database/sql; sqlx layers struct scanning on
// top of that, which keeps the many list-returning queries here down to a
// SelectContext call and a slice of tagged structs.
//
// The schema reproduces the legacy column names (usr, tid, flwer, ...) so
// database files created by earlier versions of Quacker keep working.
package sqlite

import (
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"

	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

// DB wraps an sqlx connection pool and provides all repository methods.
// It exclusively owns the storage handle: opened once at startup, closed
// once at shutdown. One instance serves the whole process.
type DB struct {
	conn   *sqlx.DB
	logger *slog.Logger
}

// Open connects to the SQLite database at path and runs migrations.
// Use ":memory:" for a throwaway database in tests.
func Open(path string, logger *slog.Logger) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	// One connection is enough for a single interactive client, and it keeps
	// ":memory:" databases coherent: every pooled connection to ":memory:"
	// would otherwise get its own empty database.
	conn.SetMaxOpenConns(1)

	// sqlx.Open only sets up the pool; Ping forces a real connection so a
	// bad path or unreadable file surfaces here, not on the first query.
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: enabling foreign keys: %w", err)
	}

	// A single interactive session never contends with itself, but if two
	// processes share the file the write transactions in user.go and
	// quack.go can hit SQLITE_BUSY. Waiting briefly beats failing.
	if _, err := conn.Exec("PRAGMA busy_timeout=5000"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting busy timeout: %w", err)
	}

	db := &DB{conn: conn, logger: logger}

	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// Close closes the database connection pool.
func (db *DB) Close() error {
	return db.conn.Close()
}

// migrate creates the tables when they don't exist yet. CREATE TABLE IF NOT
// EXISTS makes this safe to run against an already-populated database.
func (db *DB) migrate() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			usr   INTEGER PRIMARY KEY,
			name  TEXT NOT NULL,
			email TEXT NOT NULL,
			phone INTEGER NOT NULL,
			pwd   TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS tweets (
			tid         INTEGER PRIMARY KEY,
			writer_id   INTEGER NOT NULL REFERENCES users(usr),
			text        TEXT NOT NULL,
			tdate       TEXT NOT NULL,
			ttime       TEXT NOT NULL,
			replyto_tid INTEGER NOT NULL DEFAULT 0
		);

		CREATE TABLE IF NOT EXISTS retweets (
			tid          INTEGER NOT NULL REFERENCES tweets(tid),
			retweeter_id INTEGER NOT NULL REFERENCES users(usr),
			writer_id    INTEGER NOT NULL,
			rdate        TEXT NOT NULL,
			spam         INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (tid, retweeter_id)
		);

		CREATE TABLE IF NOT EXISTS follows (
			flwer      INTEGER NOT NULL REFERENCES users(usr),
			flwee      INTEGER NOT NULL REFERENCES users(usr),
			start_date TEXT NOT NULL,
			PRIMARY KEY (flwer, flwee)
		);

		CREATE TABLE IF NOT EXISTS hashtag_mentions (
			tid  INTEGER NOT NULL REFERENCES tweets(tid),
			term TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS lists (
			owner_id INTEGER NOT NULL REFERENCES users(usr),
			lname    TEXT NOT NULL,
			PRIMARY KEY (owner_id, lname)
		);

		CREATE TABLE IF NOT EXISTS include (
			owner_id INTEGER NOT NULL,
			lname    TEXT NOT NULL,
			tid      INTEGER NOT NULL REFERENCES tweets(tid)
		);
	`)
	if err != nil {
		return fmt.Errorf("creating tables: %w", err)
	}
	return nil
}

// logQueryError records a storage-statement failure on the diagnostic
// stream. Read-path callers then degrade to their empty result rather than
// propagate the error, so a failed projection reads as "nothing found".
func (db *DB) logQueryError(op string, err error) {
	db.logger.Error("storage statement failed",
		slog.String("op", op),
		slog.String("error", err.Error()),
	)
}
