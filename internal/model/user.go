// Package model defines the data structures used throughout the application:
// plain value types with `db:"..."` struct tags so sqlx can scan database
// rows straight into them.
package model

// User represents a registered account.
//
// The column names (usr, pwd, ...) come from the legacy schema and are kept
// so existing database files stay readable. ID is a small positive integer
// assigned at creation by the repository's allocator; it is never reused and
// never mutated.
//
// Password is stored and compared as plain text; CheckLogin is an equality
// match against the pwd column.
type User struct {
	ID       int32  `db:"usr"`
	Name     string `db:"name"`
	Email    string `db:"email"`
	Phone    int64  `db:"phone"`
	Password string `db:"pwd"`
}

// Follower is the projection used when listing follow relationships:
// just enough to render "User ID: ..., Name: ..." rows.
type Follower struct {
	ID   int32  `db:"usr"`
	Name string `db:"name"`
}
