package sqlite

import (
	"context"
	"testing"
)

func TestFeed_OrderedNewestFirst(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	viewer := createTestUser(t, db, "viewer")
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	if err := db.Follow(ctx, viewer, alice); err != nil {
		t.Fatalf("Follow() error = %v", err)
	}
	if err := db.Follow(ctx, viewer, bob); err != nil {
		t.Fatalf("Follow() error = %v", err)
	}

	insertQuackAt(t, db, 1, alice, "older quack", "2024-01-01", "10:00:00")
	insertQuackAt(t, db, 2, bob, "newer quack", "2024-01-02", "09:00:00")

	feed, err := db.Feed(ctx, viewer)
	if err != nil {
		t.Fatalf("Feed() error = %v", err)
	}
	if len(feed) != 2 {
		t.Fatalf("Feed() returned %d entries, want 2", len(feed))
	}
	if feed[0].Text != "newer quack" || feed[1].Text != "older quack" {
		t.Errorf("feed order = [%q, %q], want newest first", feed[0].Text, feed[1].Text)
	}
}

func TestFeed_OnlyFollowees(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	viewer := createTestUser(t, db, "viewer")
	followed := createTestUser(t, db, "followed")
	stranger := createTestUser(t, db, "stranger")
	if err := db.Follow(ctx, viewer, followed); err != nil {
		t.Fatalf("Follow() error = %v", err)
	}

	insertQuackAt(t, db, 1, followed, "from a followee", "2024-01-01", "10:00:00")
	insertQuackAt(t, db, 2, stranger, "from a stranger", "2024-01-01", "11:00:00")

	feed, err := db.Feed(ctx, viewer)
	if err != nil {
		t.Fatalf("Feed() error = %v", err)
	}
	if len(feed) != 1 {
		t.Fatalf("Feed() returned %d entries, want 1", len(feed))
	}
	if feed[0].Text != "from a followee" {
		t.Errorf("feed entry = %q, want the followee's quack", feed[0].Text)
	}
}

// A requack surfaces under the reposting user's name with the requack's
// date, but keeps the original quack's text and clock time; requacks have
// no stored time of day.
func TestFeed_RequackDisplayConvention(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	viewer := createTestUser(t, db, "viewer")
	booster := createTestUser(t, db, "booster")
	writer := createTestUser(t, db, "writer")
	// The viewer follows only the booster, not the original writer.
	if err := db.Follow(ctx, viewer, booster); err != nil {
		t.Fatalf("Follow() error = %v", err)
	}

	insertQuackAt(t, db, 1, writer, "the original text", "2024-01-01", "08:30:00")
	insertRequackAt(t, db, 1, booster, writer, "2024-02-15", false)

	feed, err := db.Feed(ctx, viewer)
	if err != nil {
		t.Fatalf("Feed() error = %v", err)
	}
	if len(feed) != 1 {
		t.Fatalf("Feed() returned %d entries, want 1", len(feed))
	}

	entry := feed[0]
	if entry.Author != "booster" {
		t.Errorf("Author = %q, want the reposting user %q", entry.Author, "booster")
	}
	if entry.Date != "2024-02-15" {
		t.Errorf("Date = %q, want the requack date", entry.Date)
	}
	if entry.Time != "08:30:00" {
		t.Errorf("Time = %q, want the original quack's time", entry.Time)
	}
	if entry.Text != "the original text" {
		t.Errorf("Text = %q, want the original text", entry.Text)
	}
}

func TestFeed_SpamRequacksExcluded(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	viewer := createTestUser(t, db, "viewer")
	booster := createTestUser(t, db, "booster")
	writer := createTestUser(t, db, "writer")
	if err := db.Follow(ctx, viewer, booster); err != nil {
		t.Fatalf("Follow() error = %v", err)
	}

	insertQuackAt(t, db, 1, writer, "boosted then spammed", "2024-01-01", "08:30:00")
	insertRequackAt(t, db, 1, booster, writer, "2024-02-15", true)

	feed, err := db.Feed(ctx, viewer)
	if err != nil {
		t.Fatalf("Feed() error = %v", err)
	}
	if len(feed) != 0 {
		t.Errorf("Feed() returned %d entries, want 0 (spam excluded)", len(feed))
	}
}

func TestFeed_EmptyWithoutFollows(t *testing.T) {
	db := newTestDB(t)

	viewer := createTestUser(t, db, "loner")

	feed, err := db.Feed(context.Background(), viewer)
	if err != nil {
		t.Fatalf("Feed() error = %v", err)
	}
	if len(feed) != 0 {
		t.Errorf("Feed() returned %d entries, want 0", len(feed))
	}
}
