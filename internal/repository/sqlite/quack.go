package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/duckpond/quacker/internal/apperror"
	"github.com/duckpond/quacker/internal/model"
	"github.com/duckpond/quacker/internal/repository"
)

// compile-time check that *DB implements repository.QuackRepository
var _ repository.QuackRepository = (*DB)(nil)

// extractHashtags validates quack text and returns its distinct hashtags,
// lower-cased. A token is a hashtag when it starts with '#' and has at
// least one character after it. The same hashtag appearing twice
// (case-insensitively) rejects the whole quack.
func extractHashtags(text string) ([]string, error) {
	if strings.TrimSpace(text) == "" {
		return nil, apperror.ValidationFailed("text", "quack text must not be empty")
	}

	seen := make(map[string]struct{})
	var tags []string
	for _, word := range strings.Fields(text) {
		if !strings.HasPrefix(word, "#") || len(word) < 2 {
			continue
		}
		tag := strings.ToLower(word)
		if _, dup := seen[tag]; dup {
			return nil, apperror.ValidationFailed("text",
				fmt.Sprintf("duplicate hashtag %s in quack text", tag))
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}
	return tags, nil
}

// CreateQuack validates the text, allocates the next quack ID, and inserts
// the quack plus its hashtag mentions in one transaction.
func (db *DB) CreateQuack(ctx context.Context, authorID int32, text string) (int32, error) {
	return db.insertQuack(ctx, authorID, 0, text)
}

// CreateReply is CreateQuack with a reply link. The parent quack must
// exist; replying into the void returns a not-found error instead of
// silently inserting an orphan.
func (db *DB) CreateReply(ctx context.Context, authorID, parentID int32, text string) (int32, error) {
	return db.insertQuack(ctx, authorID, parentID, text)
}

func (db *DB) insertQuack(ctx context.Context, authorID, parentID int32, text string) (int32, error) {
	tags, err := extractHashtags(text)
	if err != nil {
		return 0, err
	}

	tx, err := db.conn.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("sqlite: starting quack insert: %w", err)
	}
	defer tx.Rollback()

	if parentID != 0 {
		if err := quackExists(ctx, tx, parentID); err != nil {
			return 0, err
		}
	}

	id, err := nextQuackID(tx)
	if err != nil {
		return 0, fmt.Errorf("sqlite: allocating quack id: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO tweets (tid, writer_id, text, tdate, ttime, replyto_tid)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		id, authorID, text, utcDate(), utcTime(), parentID,
	)
	if err != nil {
		return 0, fmt.Errorf("sqlite: inserting quack: %w", err)
	}

	// Persist each distinct hashtag as a mention row. The guard subquery
	// keeps mentions unique per quack even across case variants.
	for _, tag := range tags {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO hashtag_mentions (tid, term)
			 SELECT ?, ?
			 WHERE NOT EXISTS (
			   SELECT 1 FROM hashtag_mentions
			   WHERE tid = ? AND term = ? COLLATE NOCASE
			 )`,
			id, tag, id, tag,
		)
		if err != nil {
			return 0, fmt.Errorf("sqlite: inserting hashtag %s: %w", tag, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("sqlite: committing quack insert: %w", err)
	}
	return id, nil
}

func quackExists(ctx context.Context, tx *sqlx.Tx, id int32) error {
	var one int
	err := tx.GetContext(ctx, &one, `SELECT 1 FROM tweets WHERE tid = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return apperror.NotFound("quack", id)
	}
	if err != nil {
		return fmt.Errorf("sqlite: checking quack %d: %w", id, err)
	}
	return nil
}

// Requack reposts a quack, or marks the existing repost as spam when this
// user has reposted it before. The check and the write run in one
// transaction, so concurrent callers cannot both observe "no prior row"
// and insert twice.
func (db *DB) Requack(ctx context.Context, userID, quackID int32) (repository.RequackStatus, error) {
	tx, err := db.conn.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("sqlite: starting requack: %w", err)
	}
	defer tx.Rollback()

	if err := quackExists(ctx, tx, quackID); err != nil {
		return 0, err
	}

	var prior int
	err = tx.GetContext(ctx, &prior,
		`SELECT COUNT(*) FROM retweets WHERE tid = ? AND retweeter_id = ?`,
		quackID, userID,
	)
	if err != nil {
		return 0, fmt.Errorf("sqlite: checking prior requack: %w", err)
	}

	if prior > 0 {
		// Already requacked once: flip the spam flag instead of inserting a
		// duplicate. Updating an already-set flag is a no-op observably.
		_, err = tx.ExecContext(ctx,
			`UPDATE retweets SET spam = 1 WHERE tid = ? AND retweeter_id = ?`,
			quackID, userID,
		)
		if err != nil {
			return 0, fmt.Errorf("sqlite: marking requack as spam: %w", err)
		}
		if err := tx.Commit(); err != nil {
			return 0, fmt.Errorf("sqlite: committing requack: %w", err)
		}
		return repository.RequackMarkedSpam, nil
	}

	var writerID int32
	if err := tx.GetContext(ctx, &writerID,
		`SELECT writer_id FROM tweets WHERE tid = ?`, quackID,
	); err != nil {
		return 0, fmt.Errorf("sqlite: resolving quack author: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO retweets (tid, retweeter_id, writer_id, rdate, spam)
		 VALUES (?, ?, ?, ?, 0)`,
		quackID, userID, writerID, utcDate(),
	)
	if err != nil {
		return 0, fmt.Errorf("sqlite: inserting requack: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("sqlite: committing requack: %w", err)
	}
	return repository.RequackCreated, nil
}

// GetQuack retrieves a single quack by ID.
func (db *DB) GetQuack(ctx context.Context, id int32) (*model.Quack, error) {
	var q model.Quack
	err := db.conn.GetContext(ctx, &q,
		`SELECT tid, writer_id, text, tdate, ttime, replyto_tid
		 FROM tweets WHERE tid = ?`, id,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("quack", id)
		}
		return nil, fmt.Errorf("sqlite: getting quack %d: %w", id, err)
	}
	return &q, nil
}

// QuacksByUser returns everything the user has written, newest first.
func (db *DB) QuacksByUser(ctx context.Context, userID int32) ([]model.Quack, error) {
	quacks := []model.Quack{}
	err := db.conn.SelectContext(ctx, &quacks,
		`SELECT tid, writer_id, text, tdate, ttime, replyto_tid
		 FROM tweets WHERE writer_id = ?
		 ORDER BY tdate DESC, ttime DESC`,
		userID,
	)
	if err != nil {
		db.logQueryError("QuacksByUser", err)
		return []model.Quack{}, nil
	}
	return quacks, nil
}

// RepliesTo returns the IDs of quacks replying to the given quack.
func (db *DB) RepliesTo(ctx context.Context, quackID int32) ([]int32, error) {
	ids := []int32{}
	err := db.conn.SelectContext(ctx, &ids,
		`SELECT tid FROM tweets WHERE replyto_tid = ?`, quackID,
	)
	if err != nil {
		db.logQueryError("RepliesTo", err)
		return []int32{}, nil
	}
	return ids, nil
}

// RequackCount counts reposts of a quack, spam-marked ones included.
func (db *DB) RequackCount(ctx context.Context, quackID int32) (int, error) {
	var count int
	err := db.conn.GetContext(ctx, &count,
		`SELECT COUNT(tid) FROM retweets WHERE tid = ?`, quackID,
	)
	if err != nil {
		db.logQueryError("RequackCount", err)
		return 0, nil
	}
	return count, nil
}

// SearchQuacks runs one sub-search per comma-delimited term and
// concatenates the results. A term starting with '#' matches hashtag
// mentions exactly (case-insensitive). A bare term matches quacks whose
// text contains it as a standalone word, or as that word in hashtag form,
// so searching "db" also finds "#db". Each sub-search is newest-first; the
// overall list keeps term order and drops quacks already seen under an
// earlier term.
func (db *DB) SearchQuacks(ctx context.Context, terms string) ([]model.Quack, error) {
	results := []model.Quack{}
	seen := make(map[int32]struct{})

	for _, term := range strings.Split(terms, ",") {
		term = strings.TrimSpace(term)
		if term == "" {
			continue
		}

		var batch []model.Quack
		var err error
		if strings.HasPrefix(term, "#") {
			err = db.conn.SelectContext(ctx, &batch,
				`SELECT t.tid, t.writer_id, t.text, t.tdate, t.ttime, t.replyto_tid
				 FROM tweets t
				 JOIN hashtag_mentions ht ON t.tid = ht.tid
				 WHERE ht.term = ? COLLATE NOCASE
				 ORDER BY t.tdate DESC, t.ttime DESC`,
				term,
			)
		} else {
			// Word boundaries approximated by space padding: the term may
			// sit mid-text, at either edge, or be the whole text, each time
			// bare or '#'-prefixed.
			batch, err = db.searchWord(ctx, term)
		}
		if err != nil {
			db.logQueryError("SearchQuacks", err)
			continue
		}

		for _, q := range batch {
			if _, dup := seen[q.ID]; dup {
				continue
			}
			seen[q.ID] = struct{}{}
			results = append(results, q)
		}
	}

	return results, nil
}

func (db *DB) searchWord(ctx context.Context, word string) ([]model.Quack, error) {
	var quacks []model.Quack
	tagged := "#" + word
	err := db.conn.SelectContext(ctx, &quacks,
		`SELECT tid, writer_id, text, tdate, ttime, replyto_tid
		 FROM tweets
		 WHERE LOWER(text) LIKE '% ' || LOWER(?) || ' %'
		    OR LOWER(text) LIKE '% ' || LOWER(?) || ' %'
		    OR LOWER(text) LIKE '% ' || LOWER(?)
		    OR LOWER(text) LIKE '% ' || LOWER(?)
		    OR LOWER(text) LIKE LOWER(?) || ' %'
		    OR LOWER(text) LIKE LOWER(?) || ' %'
		    OR LOWER(text) = LOWER(?)
		    OR LOWER(text) = LOWER(?)
		 ORDER BY tdate DESC, ttime DESC`,
		word, tagged, word, tagged, word, tagged, word, tagged,
	)
	return quacks, err
}
