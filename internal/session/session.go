// Package session drives the interactive terminal loop: menu pages, line
// input, and rendering. It is the only caller of the repositories and the
// feed service; data flows one direction per request: a menu selection
// becomes a repository call becomes printed text.
package session

import (
	"bufio"
	"context"
	"io"
	"log/slog"

	"github.com/fatih/color"

	"github.com/duckpond/quacker/internal/repository"
	"github.com/duckpond/quacker/internal/service"
)

const banner = `   ____                  _
  /___ \_   _  __ _  ___| | _____ _ __      __
 //  / / | | |/ _` + "`" + ` |/ __| |/ / _ \ '__|   <(o )___
/ \_/ /| |_| | (_| | (__|   <  __/ |       ( ._> /
\___,_\ \__,_|\__,_|\___|_|\_\___|_|        ` + "`" + `---'
`

// Repos bundles the repository interfaces the session needs. Bundling them
// in a struct keeps New's signature stable as surfaces are added.
type Repos struct {
	Users   repository.UserRepository
	Quacks  repository.QuackRepository
	Follows repository.FollowRepository
	Feed    *service.FeedService
}

// Session is one interactive terminal session. The logged-in user is an
// explicit field here; there is no global "current user" anywhere.
type Session struct {
	repos  Repos
	pager  *service.Pager
	in     *bufio.Scanner
	out    io.Writer
	logger *slog.Logger

	userID   int32
	loggedIn bool
	eof      bool

	// readPassword is swappable so tests (and non-TTY input) can supply
	// passwords as plain lines. New wires the echo-off terminal reader when
	// stdin is a terminal.
	readPassword func() (string, error)
}

// New builds a session reading from in and writing to out.
func New(repos Repos, in io.Reader, out io.Writer, logger *slog.Logger) *Session {
	s := &Session{
		repos:  repos,
		pager:  service.NewPager(),
		in:     bufio.NewScanner(in),
		out:    out,
		logger: logger,
	}
	s.readPassword = s.hiddenPasswordReader(in)
	return s
}

// Run enters the start page and blocks until the user chooses to exit.
func (s *Session) Run(ctx context.Context) error {
	s.logger.Info("session started")
	defer s.logger.Info("session ended")

	for {
		if !s.loggedIn {
			if quit := s.startPage(ctx); quit {
				return nil
			}
			continue
		}
		s.mainPage(ctx)
	}
}

// clear wipes the terminal before each page redraw.
func (s *Session) clear() {
	io.WriteString(s.out, "\033[2J\033[H")
}

func (s *Session) printBanner() {
	color.New(color.FgYellow).Fprint(s.out, banner)
}

func (s *Session) printError(msg string) {
	if msg == "" {
		return
	}
	color.New(color.FgRed).Fprintln(s.out, msg)
}

func (s *Session) printSuccess(msg string) {
	color.New(color.FgGreen).Fprintln(s.out, msg)
}
