package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/duckpond/quacker/internal/apperror"
	"github.com/duckpond/quacker/internal/repository"
)

// compile-time check that *DB implements repository.ListRepository
var _ repository.ListRepository = (*DB)(nil)

// CreateList creates a named list for the owner. List names are unique per
// owner, enforced by the primary key.
func (db *DB) CreateList(ctx context.Context, ownerID int32, name string) error {
	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO lists (owner_id, lname) VALUES (?, ?)`,
		ownerID, name,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE") {
			return apperror.Conflict(fmt.Sprintf("list %q already exists", name))
		}
		return fmt.Errorf("sqlite: creating list: %w", err)
	}
	return nil
}

// AddToList files a quack under one of the owner's lists. The list and the
// quack must both exist already.
func (db *DB) AddToList(ctx context.Context, ownerID int32, name string, quackID int32) error {
	var one int
	err := db.conn.GetContext(ctx, &one,
		`SELECT 1 FROM lists WHERE owner_id = ? AND lname = ?`,
		ownerID, name,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return &apperror.AppError{
			Err:     apperror.ErrNotFound,
			Message: fmt.Sprintf("list %q not found for user %d", name, ownerID),
		}
	}
	if err != nil {
		return fmt.Errorf("sqlite: checking list: %w", err)
	}

	err = db.conn.GetContext(ctx, &one, `SELECT 1 FROM tweets WHERE tid = ?`, quackID)
	if errors.Is(err, sql.ErrNoRows) {
		return apperror.NotFound("quack", quackID)
	}
	if err != nil {
		return fmt.Errorf("sqlite: checking quack %d: %w", quackID, err)
	}

	_, err = db.conn.ExecContext(ctx,
		`INSERT INTO include (owner_id, lname, tid) VALUES (?, ?, ?)`,
		ownerID, name, quackID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: adding quack to list: %w", err)
	}
	return nil
}

// ListsOf returns the names of the owner's lists.
func (db *DB) ListsOf(ctx context.Context, ownerID int32) ([]string, error) {
	names := []string{}
	err := db.conn.SelectContext(ctx, &names,
		`SELECT lname FROM lists WHERE owner_id = ?`, ownerID,
	)
	if err != nil {
		db.logQueryError("ListsOf", err)
		return []string{}, nil
	}
	return names, nil
}
