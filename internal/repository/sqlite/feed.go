package sqlite

import (
	"context"

	"github.com/duckpond/quacker/internal/model"
	"github.com/duckpond/quacker/internal/repository"
)

// compile-time check that *DB implements repository.FeedRepository
var _ repository.FeedRepository = (*DB)(nil)

// Feed assembles the user's feed: quacks written by anyone they follow,
// unioned with non-spam requacks made by anyone they follow, newest first.
//
// The two arms disagree on purpose about what "author" and "date" mean. A
// requack row carries the reposting user's name and the requack's date
// (who boosted it, and when) while text and time still come from the
// underlying quack, because requacks store no time of day.
func (db *DB) Feed(ctx context.Context, userID int32) ([]model.FeedEntry, error) {
	entries := []model.FeedEntry{}
	err := db.conn.SelectContext(ctx, &entries,
		`SELECT t1.tid AS tid, u1.name AS author, t1.tdate AS fdate, t1.ttime AS ftime, t1.text AS text
		 FROM tweets t1
		 JOIN follows f1 ON t1.writer_id = f1.flwee
		 JOIN users u1 ON t1.writer_id = u1.usr
		 WHERE f1.flwer = ?
		 UNION
		 SELECT t2.tid, u2.name, r.rdate, t2.ttime, t2.text
		 FROM retweets r
		 JOIN tweets t2 ON t2.tid = r.tid
		 JOIN follows f2 ON r.retweeter_id = f2.flwee
		 JOIN users u2 ON r.retweeter_id = u2.usr
		 WHERE f2.flwer = ? AND r.spam = 0
		 ORDER BY fdate DESC, ftime DESC`,
		userID, userID,
	)
	if err != nil {
		db.logQueryError("Feed", err)
		return []model.FeedEntry{}, nil
	}
	return entries, nil
}
