package sqlite

import (
	"context"
	"io"
	"log/slog"
	"testing"
)

// newTestDB opens a fresh in-memory database per test: fast, isolated, and
// gone when the connection closes. Diagnostics are discarded so expected-
// failure tests don't spam the output.
func newTestDB(t *testing.T) *DB {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	db, err := Open(":memory:", logger)
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// createTestUser registers a user and fails the test on error.
func createTestUser(t *testing.T, db *DB, name string) int32 {
	t.Helper()
	id, err := db.CreateUser(context.Background(), name, name+"@pond.ca", 5108277791, "quack")
	if err != nil {
		t.Fatalf("failed to create test user %s: %v", name, err)
	}
	return id
}

// createTestQuack posts a quack and fails the test on error.
func createTestQuack(t *testing.T, db *DB, authorID int32, text string) int32 {
	t.Helper()
	id, err := db.CreateQuack(context.Background(), authorID, text)
	if err != nil {
		t.Fatalf("failed to create test quack: %v", err)
	}
	return id
}

// insertQuackAt inserts a quack row directly with a fixed date and time,
// for tests that need deterministic ordering.
func insertQuackAt(t *testing.T, db *DB, id, authorID int32, text, date, clock string) {
	t.Helper()
	_, err := db.conn.Exec(
		`INSERT INTO tweets (tid, writer_id, text, tdate, ttime, replyto_tid)
		 VALUES (?, ?, ?, ?, ?, 0)`,
		id, authorID, text, date, clock,
	)
	if err != nil {
		t.Fatalf("failed to insert quack fixture: %v", err)
	}
}

// insertRequackAt inserts a requack row directly with a fixed date.
func insertRequackAt(t *testing.T, db *DB, quackID, userID, writerID int32, date string, spam bool) {
	t.Helper()
	_, err := db.conn.Exec(
		`INSERT INTO retweets (tid, retweeter_id, writer_id, rdate, spam)
		 VALUES (?, ?, ?, ?, ?)`,
		quackID, userID, writerID, date, spam,
	)
	if err != nil {
		t.Fatalf("failed to insert requack fixture: %v", err)
	}
}
