package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/duckpond/quacker/internal/apperror"
	"github.com/duckpond/quacker/internal/model"
	"github.com/duckpond/quacker/internal/repository"
	"github.com/duckpond/quacker/internal/service"
)

var divider = strings.Repeat("-", 100)

// startPage is the logged-out menu: log in, sign up, or exit. Returns true
// when the user chooses to exit the program.
func (s *Session) startPage(ctx context.Context) bool {
	errMsg := ""
	for !s.loggedIn {
		s.clear()
		s.printBanner()
		s.printError(errMsg)
		io.WriteString(s.out, "\n1. Log in\n2. Sign up\n3. Exit\n")

		switch s.promptSelection() {
		case '1':
			errMsg = ""
			s.loginPage(ctx)
		case '2':
			errMsg = ""
			s.signupPage(ctx)
		case '3':
			s.clear()
			return true
		default:
			if s.eof {
				return true
			}
			errMsg = "Invalid Input Entered [use: 1, 2, 3]"
		}
	}
	return false
}

func (s *Session) loginPage(ctx context.Context) {
	description := "Enter login credentials or press Enter to return."
	for {
		s.clear()
		s.printBanner()
		fmt.Fprintf(s.out, "\n%s\n\n--- Log In ---\n", description)

		idStr := s.prompt("\nUser ID: ")
		if idStr == "" {
			return
		}
		id, err := strconv.ParseInt(idStr, 10, 32)
		if err != nil {
			description = "User ID must be a number, please try again."
			continue
		}

		io.WriteString(s.out, "Password: ")
		password, err := s.readPassword()
		if err != nil || password == "" {
			return
		}

		userID, err := s.repos.Users.CheckLogin(ctx, int32(id), password)
		if err != nil {
			description = "Invalid User ID or password, please try again."
			continue
		}

		s.userID = userID
		s.loggedIn = true
		s.pager.Reset()
		s.logger.Info("user logged in", "user", userID)
		return
	}
}

func (s *Session) signupPage(ctx context.Context) {
	description := "Enter your details or press Enter to return."
	for {
		s.clear()
		s.printBanner()
		fmt.Fprintf(s.out, "\n%s\n\n--- Sign Up ---\n", description)

		name := s.prompt("\nEnter Name: ")
		if name == "" {
			return
		}

		email := s.prompt("Enter Email: ")
		if email == "" {
			return
		}
		if !validEmail(email) {
			description = "Invalid email format, please try again [eg. duck@pond.ca]"
			continue
		}

		phoneStr := s.prompt("Enter Phone Number: ")
		if phoneStr == "" {
			return
		}
		phone := parsePhone(phoneStr)
		if phone == -1 {
			description = "Invalid phone number format, please try again [eg. 510-827-7791]."
			continue
		}

		io.WriteString(s.out, "Enter Password: ")
		password, err := s.readPassword()
		if err != nil || password == "" {
			return
		}

		userID, err := s.repos.Users.CreateUser(ctx, name, email, phone, password)
		if err != nil {
			s.logger.Error("creating user", "error", err)
			description = "Could not create the account, please try again."
			continue
		}

		s.printSuccess(fmt.Sprintf("\nAccount created! Your User ID is %d, you'll need it to log in.", userID))
		s.waitForEnter()
		s.userID = userID
		s.loggedIn = true
		s.pager.Reset()
		s.logger.Info("user signed up", "user", userID)
		return
	}
}

// mainPage shows the feed and the top-level menu. One iteration per redraw;
// the feed is re-fetched every time so new posts show up immediately.
func (s *Session) mainPage(ctx context.Context) {
	errMsg := ""
	for s.loggedIn {
		s.clear()
		s.printBanner()

		name, err := s.repos.Users.GetUsername(ctx, s.userID)
		if err != nil {
			name = "Unknown"
		}
		fmt.Fprintf(s.out, "\nWelcome back, %s! (User Id: %d)\n\n", name, s.userID)
		fmt.Fprintf(s.out, "%s Your Feed %s\n", strings.Repeat("-", 44), strings.Repeat("-", 44))

		entries := s.repos.Feed.Assemble(ctx, s.userID)
		visible, notice := s.pager.Slice(len(entries))
		shown := entries[:visible]
		for i, e := range shown {
			fmt.Fprintf(s.out, "%d.\n%s\n%s\n", i+1, service.FormatEntry(e), divider)
		}

		switch notice {
		case service.NoticeNoMore:
			s.printError("\nYou Have No More Quacks Left To Display.")
		case service.NoticeNoneShown:
			s.printError("\nYou Are Already Not Displaying Any Quacks.")
		}
		s.printError(errMsg)

		io.WriteString(s.out, "\n1. See More Of My Feed\n"+
			"2. See Less Of My Feed\n"+
			"3. Search For Users\n"+
			"4. Search For Quacks\n"+
			"5. Reply/Requack From Feed\n"+
			"6. List Followers\n"+
			"7. Create New Quack\n"+
			"8. Log Out\n")

		switch s.promptSelection() {
		case '1':
			errMsg = ""
			s.pager.More()
		case '2':
			errMsg = ""
			s.pager.Less()
		case '3':
			errMsg = ""
			s.searchUsersPage(ctx)
		case '4':
			errMsg = ""
			s.searchQuacksPage(ctx)
		case '5':
			errMsg = ""
			if len(shown) == 0 {
				errMsg = "There are no quacks on screen to pick from."
				continue
			}
			idx := s.promptIndex("\nSelect a quack (1,2,3,...) to reply/requack or press Enter to return... ", len(shown))
			if idx < 0 {
				continue
			}
			quack, err := s.repos.Quacks.GetQuack(ctx, shown[idx].QuackID)
			if err != nil {
				errMsg = "That quack could not be loaded."
				continue
			}
			s.quackPage(ctx, quack)
		case '6':
			errMsg = ""
			s.followersPage(ctx)
		case '7':
			errMsg = ""
			s.postingPage(ctx)
		case '8':
			s.clear()
			errMsg = ""
			s.pager.Reset()
			s.loggedIn = false
			s.logger.Info("user logged out", "user", s.userID)
			s.userID = 0
			return
		default:
			if s.eof {
				s.loggedIn = false
				return
			}
			errMsg = "Invalid Input Entered [use: 1, 2, 3, ..., 8]."
		}
	}
}

func (s *Session) postingPage(ctx context.Context) {
	description := "Type your new Quack or press Enter to return."
	for {
		s.clear()
		s.printBanner()
		fmt.Fprintf(s.out, "\n%s\n\n--- New Quack ---\n", description)

		text := s.prompt("Enter your new quack: ")
		if text == "" {
			return
		}

		_, err := s.repos.Quacks.CreateQuack(ctx, s.userID, text)
		if err != nil {
			if errors.Is(err, apperror.ErrValidation) {
				description = err.Error() + ", please try again."
			} else {
				s.logger.Error("posting quack", "error", err)
				description = "Error posting Quack, please try again."
			}
			continue
		}

		s.printSuccess("Quack posted successfully!")
		s.waitForEnter()
		return
	}
}

func (s *Session) searchUsersPage(ctx context.Context) {
	for {
		s.clear()
		s.printBanner()
		io.WriteString(s.out, "\nSearch for a user or press Enter to return.\n\n--- User Search ---\n")

		term := s.prompt("Search for user name: ")
		if term == "" {
			return
		}

		results, _ := s.repos.Users.SearchUsers(ctx, term)
		if len(results) == 0 {
			io.WriteString(s.out, "No users found matching the search term.\n\n")
			s.waitForEnter()
			continue
		}

		fmt.Fprintf(s.out, "Found %d users matching the search term.\n\n", len(results))
		for i, u := range results {
			fmt.Fprintf(s.out, "%s\n%d.\n  User ID: %-40d Name: %s\n\n", divider, i+1, u.ID, u.Name)
		}
		fmt.Fprintf(s.out, "%s\n\n", divider)

		idx := s.promptIndex("Select a user (1,2,3,...) to view OR press Enter to return: ", len(results))
		if idx < 0 {
			continue
		}
		s.userPage(ctx, results[idx])
	}
}

func (s *Session) searchQuacksPage(ctx context.Context) {
	for {
		s.clear()
		s.printBanner()
		io.WriteString(s.out, "\nSearch quacks by keywords or #hashtags (comma separated), or press Enter to return.\n\n--- Quack Search ---\n")

		terms := s.prompt("Search terms: ")
		if terms == "" {
			return
		}

		results, _ := s.repos.Quacks.SearchQuacks(ctx, terms)
		if len(results) == 0 {
			io.WriteString(s.out, "No quacks found matching the search terms.\n\n")
			s.waitForEnter()
			continue
		}

		fmt.Fprintf(s.out, "Found %d quacks matching the search terms.\n\n", len(results))
		for i, q := range results {
			fmt.Fprintf(s.out, "%d.\n%s\n%s\n", i+1, s.formatQuack(ctx, &q), divider)
		}

		idx := s.promptIndex("Select a quack (1,2,3,...) to reply/requack OR press Enter to return: ", len(results))
		if idx < 0 {
			continue
		}
		s.quackPage(ctx, &results[idx])
	}
}

// userPage shows another user's profile: counters, their latest quacks
// (three at a time), and a follow action.
func (s *Session) userPage(ctx context.Context, user model.Follower) {
	errMsg := ""
	shown := 3
	for {
		s.clear()
		s.printBanner()
		io.WriteString(s.out, "\nActions For User:\n\n")

		followers, _ := s.repos.Follows.Followers(ctx, user.ID)
		follows, _ := s.repos.Follows.Follows(ctx, user.ID)
		quacks, _ := s.repos.Quacks.QuacksByUser(ctx, user.ID)

		fmt.Fprintf(s.out, "%s\n  User ID: %-40d Name: %s\n", divider, user.ID, user.Name)
		fmt.Fprintf(s.out, "  Followers: %-38d Follows: %d\n  Quack Count: %d\n\n", len(followers), len(follows), len(quacks))
		fmt.Fprintf(s.out, "%s User's Quacks %s\n\n", strings.Repeat("-", 43), strings.Repeat("-", 42))

		for i, q := range quacks {
			if i >= shown {
				break
			}
			fmt.Fprintf(s.out, "%d.\n%s\n%s\n", i+1, s.formatQuack(ctx, &q), divider)
		}

		s.printError(errMsg)
		io.WriteString(s.out, "\n1. See More Of The User's Quacks\n"+
			"2. See Less Of The User's Quacks\n"+
			"3. Follow The User\n"+
			"4. Return\n")

		switch s.promptSelection() {
		case '1':
			errMsg = ""
			if shown+3 > len(quacks)+3 {
				errMsg = "This User Has No More Quacks To Display!"
				continue
			}
			shown += 3
		case '2':
			errMsg = ""
			if shown == 0 {
				errMsg = "You Are Already Not Seeing Any Quacks!"
				continue
			}
			shown -= 3
		case '3':
			errMsg = ""
			err := s.repos.Follows.Follow(ctx, s.userID, user.ID)
			switch {
			case err == nil:
				s.printSuccess(fmt.Sprintf("You are now following %s", user.Name))
			case errors.Is(err, apperror.ErrConflict):
				fmt.Fprintf(s.out, "You already follow %s\n", user.Name)
			case errors.Is(err, apperror.ErrValidation):
				io.WriteString(s.out, "You can't follow yourself\n")
			default:
				s.logger.Error("following user", "error", err)
				s.printError("Could not follow the user, please try again.")
			}
			s.waitForEnter()
		case '4':
			return
		default:
			if s.eof {
				return
			}
			errMsg = "Invalid Input Entered [use: 1, 2, 3, 4]."
		}
	}
}

// quackPage shows one quack with its requack and reply counts, and offers
// reply / requack actions.
func (s *Session) quackPage(ctx context.Context, quack *model.Quack) {
	errMsg := ""
	for {
		s.clear()
		s.printBanner()
		io.WriteString(s.out, "\nActions For Quack:\n\n")
		fmt.Fprintf(s.out, "%s\n%s\n%s\n", divider, s.formatQuack(ctx, quack), divider)

		s.printError(errMsg)
		io.WriteString(s.out, "\n1. Reply\n2. Requack\n3. Return\n")

		switch s.promptSelection() {
		case '1':
			errMsg = ""
			s.replyPage(ctx, quack)
		case '2':
			errMsg = ""
			status, err := s.repos.Quacks.Requack(ctx, s.userID, quack.ID)
			if err != nil {
				s.logger.Error("requacking", "error", err)
				errMsg = "Error requacking, please try again."
				continue
			}
			if status == repository.RequackMarkedSpam {
				errMsg = "You've already requacked this, marked as spam..."
				continue
			}
			s.printSuccess("Requack successful!")
			s.waitForEnter()
		case '3':
			return
		default:
			if s.eof {
				return
			}
			errMsg = "Invalid Input Entered [use: 1, 2, 3]."
		}
	}
}

func (s *Session) replyPage(ctx context.Context, quack *model.Quack) {
	for {
		s.clear()
		s.printBanner()
		io.WriteString(s.out, "\nReply For Quack:\n\n")
		fmt.Fprintf(s.out, "%s\n%s\n%s\n", divider, s.formatQuack(ctx, quack), divider)

		text := s.prompt("\nEnter your reply or press Enter to cancel: ")
		if text == "" {
			return
		}

		_, err := s.repos.Quacks.CreateReply(ctx, s.userID, quack.ID, text)
		if err != nil {
			if errors.Is(err, apperror.ErrValidation) {
				s.printError(err.Error() + ", please try again.")
			} else {
				s.logger.Error("posting reply", "error", err)
				s.printError("Error posting reply, please try again.")
			}
			s.waitForEnter()
			continue
		}

		s.printSuccess("\nReply posted successfully!")
		s.waitForEnter()
		return
	}
}

func (s *Session) followersPage(ctx context.Context) {
	for {
		s.clear()
		s.printBanner()
		io.WriteString(s.out, "\nYour Followers:\n\n")

		followers, _ := s.repos.Follows.Followers(ctx, s.userID)
		for i, f := range followers {
			fmt.Fprintf(s.out, "%s\n%d.   User ID: %-40d Name: %s\n", divider, i+1, f.ID, f.Name)
		}
		fmt.Fprintf(s.out, "%s\n\n", divider)

		if len(followers) == 0 {
			io.WriteString(s.out, "Nobody follows you yet.\n\n")
			s.waitForEnter()
			return
		}

		idx := s.promptIndex("Select a user (1,2,3,...) OR press Enter to return: ", len(followers))
		if idx < 0 {
			return
		}
		s.userPage(ctx, followers[idx])
	}
}

// formatQuack renders a single quack in the same block layout the feed
// uses, plus its requack and reply counts.
func (s *Session) formatQuack(ctx context.Context, q *model.Quack) string {
	author, err := s.repos.Users.GetUsername(ctx, q.AuthorID)
	if err != nil {
		author = "Unknown"
	}
	entry := model.FeedEntry{
		QuackID: q.ID,
		Author:  author,
		Date:    q.Date,
		Time:    q.Time,
		Text:    q.Text,
	}

	requacks, _ := s.repos.Quacks.RequackCount(ctx, q.ID)
	replies, _ := s.repos.Quacks.RepliesTo(ctx, q.ID)
	return fmt.Sprintf("%s\nRequack Count: %d     Reply Count: %d\n",
		service.FormatEntry(entry), requacks, len(replies))
}
