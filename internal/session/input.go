package session

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// readLine reads one line of input, trimmed. Returns "" on EOF, which every
// prompt treats as "return to the previous page".
func (s *Session) readLine() string {
	if !s.in.Scan() {
		s.eof = true
		return ""
	}
	return strings.TrimSpace(s.in.Text())
}

// prompt prints a label and reads the response on the same line.
func (s *Session) prompt(label string) string {
	io.WriteString(s.out, label)
	return s.readLine()
}

// promptSelection reads a single-character menu choice. Anything longer
// than one character is reported as invalid by the caller's default branch.
func (s *Session) promptSelection() byte {
	line := s.prompt("\nSelection: ")
	if len(line) != 1 {
		return 0
	}
	return line[0]
}

// promptIndex asks for a 1-based pick from a listing of n items. Returns
// -1 when the user presses Enter to go back, re-prompting on bad input.
func (s *Session) promptIndex(label string, n int) int {
	for {
		line := s.prompt(label)
		if line == "" {
			return -1
		}
		idx, err := strconv.Atoi(line)
		if err != nil || idx < 1 || idx > n {
			s.printError(fmt.Sprintf("Input Is Invalid: pick 1-%d or press Enter to return.", n))
			continue
		}
		return idx - 1
	}
}

// waitForEnter pauses until the user acknowledges a message.
func (s *Session) waitForEnter() {
	s.prompt("Press Enter to return... ")
}

// hiddenPasswordReader returns an echo-off password reader when in is a
// real terminal, and a plain line reader otherwise (piped input, tests).
func (s *Session) hiddenPasswordReader(in io.Reader) func() (string, error) {
	f, ok := in.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return func() (string, error) {
			return s.readLine(), nil
		}
	}
	fd := int(f.Fd())
	return func() (string, error) {
		b, err := term.ReadPassword(fd)
		fmt.Fprintln(s.out)
		if err != nil {
			return "", fmt.Errorf("reading password: %w", err)
		}
		return string(b), nil
	}
}

// validEmail applies the loose format check used at signup: one '@' with a
// non-empty local part and a dotted domain, no whitespace anywhere.
func validEmail(email string) bool {
	if strings.ContainsAny(email, " \t") {
		return false
	}
	at := strings.Index(email, "@")
	if at < 1 || at != strings.LastIndex(email, "@") {
		return false
	}
	domain := email[at+1:]
	dot := strings.Index(domain, ".")
	return dot > 0 && dot < len(domain)-1
}

// parsePhone extracts digits from the input and accepts 10 or 11 of them,
// so "510-827-7791" and "(510) 827 7791" both work. Returns -1 on anything
// else.
func parsePhone(input string) int64 {
	var digits strings.Builder
	for _, r := range input {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() < 10 || digits.Len() > 11 {
		return -1
	}
	n, err := strconv.ParseInt(digits.String(), 10, 64)
	if err != nil {
		return -1
	}
	return n
}
