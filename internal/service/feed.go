// Package service contains the business logic that sits between the
// terminal session and the repositories: feed assembly, display formatting,
// and the paging arithmetic for "see more / see less".
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/duckpond/quacker/internal/model"
	"github.com/duckpond/quacker/internal/repository"
)

const (
	// headerWidth is the column at which the "Date and Time:" block starts,
	// measured from the beginning of the "Quack Id:" header line.
	headerWidth = 66
	// textWidth is the wrap column for quack bodies.
	textWidth = 94
	// pageStep is how many entries "see more" and "see less" add or remove.
	pageStep = 5
)

// FeedService assembles and formats a user's feed.
type FeedService struct {
	repo   repository.FeedRepository
	logger *slog.Logger
}

func NewFeedService(repo repository.FeedRepository, logger *slog.Logger) *FeedService {
	return &FeedService{
		repo:   repo,
		logger: logger,
	}
}

// Assemble fetches the user's feed entries, newest first. The repository
// already merges followee quacks with their non-spam requacks and sorts the
// union; nothing here re-orders it.
func (s *FeedService) Assemble(ctx context.Context, userID int32) []model.FeedEntry {
	entries, err := s.repo.Feed(ctx, userID)
	if err != nil {
		s.logger.Error("assembling feed", slog.Any("error", err))
		return nil
	}
	s.logger.Debug("assembled feed",
		slog.Int("user", int(userID)),
		slog.Int("entries", len(entries)),
	)
	return entries
}

// FormatEntry renders one feed entry as a fixed-width display block: the
// quack id and author on the left, the date/time column right-aligned at a
// fixed offset, then the word-wrapped text body.
func FormatEntry(e model.FeedEntry) string {
	var b strings.Builder

	header := fmt.Sprintf("Quack Id: %d, Author: %s", e.QuackID, e.Author)
	b.WriteString(header)
	if pad := headerWidth - len(header); pad > 0 {
		b.WriteString(strings.Repeat(" ", pad))
	} else {
		b.WriteString(" ")
	}

	fmt.Fprintf(&b, "Date and Time: %s %s\n\n", e.Date, e.Time)
	b.WriteString("Text: ")
	b.WriteString(WrapText(e.Text, textWidth))
	b.WriteString("\n")
	return b.String()
}

// WrapText word-wraps text at the given column. Words are never split (a
// word that doesn't fit moves whole to the next line) and consecutive
// whitespace collapses to single spaces.
func WrapText(text string, width int) string {
	var b strings.Builder
	lineLen := 0
	for _, word := range strings.Fields(text) {
		if lineLen+len(word)+1 > width {
			b.WriteByte('\n')
			lineLen = 0
		}
		if lineLen > 0 {
			b.WriteByte(' ')
			lineLen++
		}
		b.WriteString(word)
		lineLen += len(word)
	}
	return b.String()
}

// Notice is the out-of-band message pagination can raise alongside a page.
type Notice int

const (
	// NoticeNone: the page rendered without comment.
	NoticeNone Notice = iota
	// NoticeNoMore: the user paged a full step past the end of the feed.
	NoticeNoMore
	// NoticeNoneShown: the user paged below an already-empty display.
	NoticeNoneShown
)

// Pager holds the mutable display count for one feed view. It starts at
// one page and moves in whole pages, clamping at both ends.
type Pager struct {
	count int
}

func NewPager() *Pager {
	return &Pager{count: pageStep}
}

// More grows the display count by one page.
func (p *Pager) More() {
	p.count += pageStep
}

// Less shrinks the display count by one page.
func (p *Pager) Less() {
	p.count -= pageStep
}

// Reset restores the initial page size (used on logout).
func (p *Pager) Reset() {
	p.count = pageStep
}

// Slice resolves the current display count against the feed's total length
// and returns how many leading entries to show plus any notice.
//
// The boundary rules:
//   - count a full page or more past the end: show everything, pull the
//     count back one page, and tell the user there is no more;
//   - count at or past the end but within a page: show everything quietly;
//   - count inside the feed: show that many;
//   - count at or below zero: show nothing, and complain only if the user
//     actually went below zero rather than already sitting at it.
func (p *Pager) Slice(total int) (visible int, notice Notice) {
	switch {
	case p.count >= total+pageStep:
		notice = NoticeNoMore
		p.count = max(0, p.count-pageStep)
		return total, notice
	case p.count >= total:
		return total, NoticeNone
	case p.count > 0:
		return p.count, NoticeNone
	default:
		if p.count != 0 {
			notice = NoticeNoneShown
		}
		p.count = 0
		return 0, notice
	}
}
