// Package main is the entry point for the Quacker terminal client.
//
// Invocation: quacker <database-file>
//
// Exit codes: 1 for a usage error, 2 when the database file does not exist,
// 3 when the database cannot be opened, 0 on a clean exit from the menus.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/rs/xid"

	"github.com/duckpond/quacker/internal/repository/sqlite"
	"github.com/duckpond/quacker/internal/service"
	"github.com/duckpond/quacker/internal/session"
)

func main() {
	// Diagnostics go to stderr so they don't tear up the menu rendering on
	// stdout; redirect stderr to a file to capture them.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))

	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: quacker <database-file>")
		os.Exit(1)
	}

	path := os.Args[1]
	if path != ":memory:" {
		if _, err := os.Stat(path); err != nil {
			fmt.Fprintf(os.Stderr, "quacker: database file %q not found\n", path)
			os.Exit(2)
		}
	}

	db, err := sqlite.Open(path, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "quacker: opening database: %v\n", err)
		os.Exit(3)
	}
	defer db.Close()

	// Each run gets a session id on the logger, so interleaved diagnostics
	// from two processes sharing one database file stay attributable.
	sessionLogger := logger.With(slog.String("session", xid.New().String()))

	feed := service.NewFeedService(db, sessionLogger)
	sess := session.New(session.Repos{
		Users:   db,
		Quacks:  db,
		Follows: db,
		Feed:    feed,
	}, os.Stdin, os.Stdout, sessionLogger)

	if err := sess.Run(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "quacker: %v\n", err)
		os.Exit(3)
	}
}
