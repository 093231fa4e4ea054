package sqlite

import (
	"time"

	"github.com/jmoiron/sqlx"
)

// ID allocation is max+1: a single aggregate over the relevant table, 1 when
// the table is empty. IDs are strictly increasing and never reused; gaps
// left by the allocator's history stay gaps.
//
// Both helpers must run inside the same transaction as the insert that
// consumes the ID. SQLite transactions are serializable, so two writers
// sharing the file cannot both read the same MAX and race to one ID; the
// busy_timeout pragma set in Open covers the resulting lock waits.

func nextUserID(tx *sqlx.Tx) (int32, error) {
	var next int32
	err := tx.Get(&next, `SELECT COALESCE(MAX(usr), 0) + 1 FROM users`)
	return next, err
}

func nextQuackID(tx *sqlx.Tx) (int32, error) {
	var next int32
	err := tx.Get(&next, `SELECT COALESCE(MAX(tid), 0) + 1 FROM tweets`)
	return next, err
}

// Timestamps are stored as two text columns, both UTC, so that the feed's
// (tdate DESC, ttime DESC) ordering works as a plain text sort.

func utcDate() string {
	return time.Now().UTC().Format("2006-01-02")
}

func utcTime() string {
	return time.Now().UTC().Format("15:04:05")
}
