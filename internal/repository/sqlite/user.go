package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/duckpond/quacker/internal/apperror"
	"github.com/duckpond/quacker/internal/model"
	"github.com/duckpond/quacker/internal/repository"
)

// compile-time check that *DB implements repository.UserRepository
var _ repository.UserRepository = (*DB)(nil)

// CreateUser allocates the next user ID and inserts the account, both inside
// one transaction so the allocator's read and the insert cannot interleave
// with another writer.
func (db *DB) CreateUser(ctx context.Context, name, email string, phone int64, password string) (int32, error) {
	tx, err := db.conn.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("sqlite: starting user insert: %w", err)
	}
	defer tx.Rollback()

	id, err := nextUserID(tx)
	if err != nil {
		return 0, fmt.Errorf("sqlite: allocating user id: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO users (usr, name, email, phone, pwd)
		 VALUES (?, ?, ?, ?, ?)`,
		id, name, email, phone, password,
	)
	if err != nil {
		return 0, fmt.Errorf("sqlite: inserting user: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("sqlite: committing user insert: %w", err)
	}
	return id, nil
}

// CheckLogin matches id and password against the users table. Passwords are
// stored as plain text, so this is pure equality. A wrong id or password
// reads the same as a missing user.
func (db *DB) CheckLogin(ctx context.Context, id int32, password string) (int32, error) {
	var matched int32
	err := db.conn.GetContext(ctx, &matched,
		`SELECT usr FROM users WHERE usr = ? AND pwd = ?`,
		id, password,
	)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			db.logQueryError("CheckLogin", err)
		}
		return 0, apperror.NotFound("user", id)
	}
	return matched, nil
}

// GetUsername returns the display name for a user ID.
func (db *DB) GetUsername(ctx context.Context, id int32) (string, error) {
	var name string
	err := db.conn.GetContext(ctx, &name,
		`SELECT name FROM users WHERE usr = ?`, id,
	)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			db.logQueryError("GetUsername", err)
		}
		return "", apperror.NotFound("user", id)
	}
	return name, nil
}

// SearchUsers finds users whose name contains the term, case-insensitively.
// Shorter names sort first so closer matches lead the list.
func (db *DB) SearchUsers(ctx context.Context, term string) ([]model.Follower, error) {
	users := []model.Follower{}
	err := db.conn.SelectContext(ctx, &users,
		`SELECT usr, name FROM users
		 WHERE LOWER(name) LIKE '%' || LOWER(?) || '%'
		 ORDER BY LENGTH(name)`,
		term,
	)
	if err != nil {
		db.logQueryError("SearchUsers", err)
		return []model.Follower{}, nil
	}
	return users, nil
}
