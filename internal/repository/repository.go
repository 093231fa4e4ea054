// Package repository declares the storage interfaces the rest of the
// application programs against. The sqlite subpackage is the only concrete
// implementation; services and the session loop depend on these interfaces
// so tests can substitute in-memory mocks.
package repository

import (
	"context"

	"github.com/duckpond/quacker/internal/model"
)

// RequackStatus reports what a Requack call actually did.
type RequackStatus int

const (
	// RequackCreated means a new repost row was inserted.
	RequackCreated RequackStatus = iota
	// RequackMarkedSpam means the user had already reposted this quack and
	// the existing row was flagged as spam instead. Repeating the call is a
	// no-op observably: the flag stays set.
	RequackMarkedSpam
)

type UserRepository interface {
	// CreateUser allocates the next user ID and inserts the account.
	CreateUser(ctx context.Context, name, email string, phone int64, password string) (int32, error)
	// CheckLogin returns the user's ID when id+password match a row, or an
	// apperror.ErrNotFound failure. Plain equality, no hashing.
	CheckLogin(ctx context.Context, id int32, password string) (int32, error)
	GetUsername(ctx context.Context, id int32) (string, error)
	// SearchUsers matches the term case-insensitively as a substring of the
	// name, shortest names first.
	SearchUsers(ctx context.Context, term string) ([]model.Follower, error)
}

type QuackRepository interface {
	CreateQuack(ctx context.Context, authorID int32, text string) (int32, error)
	// CreateReply is CreateQuack plus the reply link; the parent must exist.
	CreateReply(ctx context.Context, authorID, parentID int32, text string) (int32, error)
	// Requack inserts a repost, or marks the existing one as spam when the
	// user has reposted this quack before.
	Requack(ctx context.Context, userID, quackID int32) (RequackStatus, error)
	GetQuack(ctx context.Context, id int32) (*model.Quack, error)
	QuacksByUser(ctx context.Context, userID int32) ([]model.Quack, error)
	RepliesTo(ctx context.Context, quackID int32) ([]int32, error)
	RequackCount(ctx context.Context, quackID int32) (int, error)
	// SearchQuacks takes comma-delimited terms. A leading '#' matches
	// hashtag mentions exactly (case-insensitive); a bare term matches as a
	// standalone word or as that word's hashtag form. Results are grouped
	// by term, each group newest-first, deduplicated across groups.
	SearchQuacks(ctx context.Context, terms string) ([]model.Quack, error)
}

type FollowRepository interface {
	Follow(ctx context.Context, followerID, followeeID int32) error
	Unfollow(ctx context.Context, followerID, followeeID int32) error
	Followers(ctx context.Context, userID int32) ([]model.Follower, error)
	Follows(ctx context.Context, userID int32) ([]int32, error)
}

type ListRepository interface {
	CreateList(ctx context.Context, ownerID int32, name string) error
	// AddToList files a quack under a list the owner must already have.
	AddToList(ctx context.Context, ownerID int32, name string, quackID int32) error
	ListsOf(ctx context.Context, ownerID int32) ([]string, error)
}

type FeedRepository interface {
	// Feed returns the reverse-chronological union of quacks written by the
	// user's followees and non-spam requacks made by them.
	Feed(ctx context.Context, userID int32) ([]model.FeedEntry, error)
}
