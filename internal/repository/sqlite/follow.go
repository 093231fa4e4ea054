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

// compile-time check that *DB implements repository.FollowRepository
var _ repository.FollowRepository = (*DB)(nil)

// Follow adds a directed follow edge. Self-follows and duplicate edges are
// rejected here at the data layer, not just in the menus; the repository
// is the one layer every caller shares.
func (db *DB) Follow(ctx context.Context, followerID, followeeID int32) error {
	if followerID == followeeID {
		return apperror.ValidationFailed("followee", "you cannot follow yourself")
	}

	var one int
	err := db.conn.GetContext(ctx, &one,
		`SELECT 1 FROM follows WHERE flwer = ? AND flwee = ?`,
		followerID, followeeID,
	)
	if err == nil {
		return apperror.Conflict(fmt.Sprintf("user %d already follows user %d", followerID, followeeID))
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("sqlite: checking follow edge: %w", err)
	}

	_, err = db.conn.ExecContext(ctx,
		`INSERT INTO follows (flwer, flwee, start_date) VALUES (?, ?, ?)`,
		followerID, followeeID, utcDate(),
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting follow edge: %w", err)
	}
	return nil
}

// Unfollow removes the follow edge. Unfollowing someone never followed is a
// not-found error.
func (db *DB) Unfollow(ctx context.Context, followerID, followeeID int32) error {
	res, err := db.conn.ExecContext(ctx,
		`DELETE FROM follows WHERE flwer = ? AND flwee = ?`,
		followerID, followeeID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: deleting follow edge: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking deleted follow edge: %w", err)
	}
	if affected == 0 {
		return apperror.NotFound("follow", followeeID)
	}
	return nil
}

// Followers lists the users following the given user.
func (db *DB) Followers(ctx context.Context, userID int32) ([]model.Follower, error) {
	followers := []model.Follower{}
	err := db.conn.SelectContext(ctx, &followers,
		`SELECT u.usr, u.name
		 FROM follows f
		 JOIN users u ON f.flwer = u.usr
		 WHERE f.flwee = ?`,
		userID,
	)
	if err != nil {
		db.logQueryError("Followers", err)
		return []model.Follower{}, nil
	}
	return followers, nil
}

// Follows lists the IDs of users the given user follows.
func (db *DB) Follows(ctx context.Context, userID int32) ([]int32, error) {
	ids := []int32{}
	err := db.conn.SelectContext(ctx, &ids,
		`SELECT flwee FROM follows WHERE flwer = ?`, userID,
	)
	if err != nil {
		db.logQueryError("Follows", err)
		return []int32{}, nil
	}
	return ids, nil
}
