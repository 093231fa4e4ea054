package session

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duckpond/quacker/internal/repository/sqlite"
	"github.com/duckpond/quacker/internal/service"
)

func TestValidEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"duck@pond.ca", true},
		{"a@b.co", true},
		{"no-at-sign", false},
		{"@pond.ca", false},
		{"duck@pond", false},
		{"duck@.ca", false},
		{"duck@pond.", false},
		{"two@at@signs.ca", false},
		{"has space@pond.ca", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, validEmail(tt.email), "validEmail(%q)", tt.email)
	}
}

func TestParsePhone(t *testing.T) {
	tests := []struct {
		input string
		want  int64
	}{
		{"510-827-7791", 5108277791},
		{"(510) 827 7791", 5108277791},
		{"15108277791", 15108277791},
		{"911", -1},
		{"510-827-7791-00", -1},
		{"not a number", -1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parsePhone(tt.input), "parsePhone(%q)", tt.input)
	}
}

// newScriptedSession wires a real in-memory database behind a session whose
// input is a canned script, one line per prompt.
func newScriptedSession(t *testing.T, script ...string) (*Session, *bytes.Buffer) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	db, err := sqlite.Open(":memory:", logger)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	in := strings.NewReader(strings.Join(script, "\n") + "\n")
	out := &bytes.Buffer{}
	feed := service.NewFeedService(db, logger)
	sess := New(Repos{Users: db, Quacks: db, Follows: db, Feed: feed}, in, out, logger)
	return sess, out
}

// Walks the happy path end to end: sign up, post a quack, log out, exit.
func TestRun_SignupPostLogout(t *testing.T) {
	sess, out := newScriptedSession(t,
		"2",                 // start page: sign up
		"Alice Duck",        // name
		"alice@pond.ca",     // email
		"510-827-7791",      // phone
		"hunter2",           // password (plain line in tests)
		"",                  // acknowledge "account created"
		"7",                 // main page: create new quack
		"Hello pond #first", // quack text
		"",                  // acknowledge "posted"
		"8",                 // log out
		"3",                 // start page: exit
	)

	err := sess.Run(context.Background())
	require.NoError(t, err)

	output := out.String()
	assert.Contains(t, output, "Your User ID is 1")
	assert.Contains(t, output, "Welcome back, Alice Duck!")
	assert.Contains(t, output, "Quack posted successfully!")
}

// A rejected quack (duplicate hashtag) keeps the user on the posting page
// with a retryable message instead of crashing out.
func TestRun_DuplicateHashtagIsRetryable(t *testing.T) {
	sess, out := newScriptedSession(t,
		"2", "Bob", "bob@pond.ca", "510-827-7791", "pw", "",
		"7",                    // create new quack
		"great #Day cool #day", // rejected: duplicate hashtag
		"fine #day only once",  // accepted on retry
		"",                     // acknowledge
		"8", "3",
	)

	err := sess.Run(context.Background())
	require.NoError(t, err)

	output := out.String()
	assert.Contains(t, output, "duplicate hashtag")
	assert.Contains(t, output, "Quack posted successfully!")
}

// Exhausting stdin must exit cleanly rather than loop forever on the
// start page menu.
func TestRun_EOFExits(t *testing.T) {
	sess, _ := newScriptedSession(t, "9") // invalid choice, then EOF

	err := sess.Run(context.Background())
	assert.NoError(t, err)
}

// EOF while logged in logs the user out and then exits via the start page.
func TestRun_EOFWhileLoggedInExits(t *testing.T) {
	sess, _ := newScriptedSession(t,
		"2", "Carol", "carol@pond.ca", "510-827-7791", "pw", "",
		"9", // invalid main-page choice, then EOF
	)

	err := sess.Run(context.Background())
	assert.NoError(t, err)
}
