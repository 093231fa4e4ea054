package model

// Quack is a post. Immutable once created.
//
// Date ("YYYY-MM-DD") and Time ("HH:MM:SS") are stored as separate text
// columns, both UTC. Keeping them split matches the legacy schema and makes
// the feed's (tdate DESC, ttime DESC) ordering a plain text sort.
//
// ReplyToID is 0 when the quack is not a reply.
type Quack struct {
	ID        int32  `db:"tid"`
	AuthorID  int32  `db:"writer_id"`
	Text      string `db:"text"`
	Date      string `db:"tdate"`
	Time      string `db:"ttime"`
	ReplyToID int32  `db:"replyto_tid"`
}

// Requack is a repost. At most one row exists per (QuackID, UserID) pair; a
// repeated requack flips Spam on the existing row instead of inserting.
// AuthorID is the original writer, denormalized at insert time.
type Requack struct {
	QuackID  int32  `db:"tid"`
	UserID   int32  `db:"retweeter_id"`
	AuthorID int32  `db:"writer_id"`
	Date     string `db:"rdate"`
	Spam     bool   `db:"spam"`
}

// FeedEntry is one row of a user's assembled feed. For an original quack,
// Author is the writer's name and Date/Time are the quack's own. For a
// requack, Author is the reposting user's name and Date is the requack
// date, but Text and Time still come from the underlying quack. Requacks
// store no time of day, so the original's clock time fills that column.
type FeedEntry struct {
	QuackID int32  `db:"tid"`
	Author  string `db:"author"`
	Date    string `db:"fdate"`
	Time    string `db:"ftime"`
	Text    string `db:"text"`
}
