package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/duckpond/quacker/internal/apperror"
)

func TestFollow_AndListings(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	if err := db.Follow(ctx, alice, bob); err != nil {
		t.Fatalf("Follow() error = %v", err)
	}

	follows, err := db.Follows(ctx, alice)
	if err != nil {
		t.Fatalf("Follows() error = %v", err)
	}
	if len(follows) != 1 || follows[0] != bob {
		t.Errorf("Follows(alice) = %v, want [%d]", follows, bob)
	}

	followers, err := db.Followers(ctx, bob)
	if err != nil {
		t.Fatalf("Followers() error = %v", err)
	}
	if len(followers) != 1 || followers[0].ID != alice {
		t.Errorf("Followers(bob) = %v, want alice", followers)
	}
}

func TestFollow_SelfRejected(t *testing.T) {
	db := newTestDB(t)
	alice := createTestUser(t, db, "alice")

	err := db.Follow(context.Background(), alice, alice)
	if !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("Follow(self) error = %v, want ErrValidation", err)
	}
}

func TestFollow_DuplicateRejected(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	if err := db.Follow(ctx, alice, bob); err != nil {
		t.Fatalf("Follow() error = %v", err)
	}
	err := db.Follow(ctx, alice, bob)
	if !errors.Is(err, apperror.ErrConflict) {
		t.Errorf("Follow(duplicate) error = %v, want ErrConflict", err)
	}
}

func TestUnfollow(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	if err := db.Follow(ctx, alice, bob); err != nil {
		t.Fatalf("Follow() error = %v", err)
	}
	if err := db.Unfollow(ctx, alice, bob); err != nil {
		t.Fatalf("Unfollow() error = %v", err)
	}

	follows, err := db.Follows(ctx, alice)
	if err != nil {
		t.Fatalf("Follows() error = %v", err)
	}
	if len(follows) != 0 {
		t.Errorf("Follows(alice) after unfollow = %v, want empty", follows)
	}
}

func TestUnfollow_NotFollowing(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	err := db.Unfollow(ctx, alice, bob)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("Unfollow(never followed) error = %v, want ErrNotFound", err)
	}
}
