package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/duckpond/quacker/internal/apperror"
)

func TestCreateList_AndAdd(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	owner := createTestUser(t, db, "curator")
	quack := createTestQuack(t, db, owner, "collectible quack")

	if err := db.CreateList(ctx, owner, "favourites"); err != nil {
		t.Fatalf("CreateList() error = %v", err)
	}
	if err := db.AddToList(ctx, owner, "favourites", quack); err != nil {
		t.Fatalf("AddToList() error = %v", err)
	}

	names, err := db.ListsOf(ctx, owner)
	if err != nil {
		t.Fatalf("ListsOf() error = %v", err)
	}
	if len(names) != 1 || names[0] != "favourites" {
		t.Errorf("ListsOf() = %v, want [favourites]", names)
	}
}

func TestCreateList_DuplicateRejected(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	owner := createTestUser(t, db, "curator")
	if err := db.CreateList(ctx, owner, "favourites"); err != nil {
		t.Fatalf("CreateList() error = %v", err)
	}

	err := db.CreateList(ctx, owner, "favourites")
	if !errors.Is(err, apperror.ErrConflict) {
		t.Errorf("CreateList(duplicate) error = %v, want ErrConflict", err)
	}
}

func TestAddToList_MissingList(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	owner := createTestUser(t, db, "curator")
	quack := createTestQuack(t, db, owner, "lost quack")

	err := db.AddToList(ctx, owner, "no-such-list", quack)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("AddToList(missing list) error = %v, want ErrNotFound", err)
	}
}

func TestAddToList_MissingQuack(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	owner := createTestUser(t, db, "curator")
	if err := db.CreateList(ctx, owner, "favourites"); err != nil {
		t.Fatalf("CreateList() error = %v", err)
	}

	err := db.AddToList(ctx, owner, "favourites", 42)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("AddToList(missing quack) error = %v, want ErrNotFound", err)
	}
}
