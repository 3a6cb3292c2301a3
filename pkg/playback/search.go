package playback

import (
	"context"
	"regexp"
	"strings"

	"github.com/pamsentry/pam-intel/pkg/identity"
)

// matcher reports the byte offsets of the first match in text, or
// (-1, -1) for no match.
type matcher interface {
	find(text string) (start, end int)
}

type literalMatcher struct {
	term       string
	foldedCase bool
}

func (m literalMatcher) find(text string) (int, int) {
	haystack := text
	needle := m.term
	if m.foldedCase {
		haystack = strings.ToLower(text)
		needle = strings.ToLower(m.term)
	}
	start := strings.Index(haystack, needle)
	if start < 0 {
		return -1, -1
	}
	return start, start + len(needle)
}

type regexMatcher struct {
	re *regexp.Regexp
}

func (m regexMatcher) find(text string) (int, int) {
	loc := m.re.FindStringIndex(text)
	if loc == nil {
		return -1, -1
	}
	return loc[0], loc[1]
}

// newMatcher builds the matcher for the term. An invalid regular
// expression degrades to a literal scan rather than failing the search.
func newMatcher(term string, opts SearchOptions) matcher {
	if opts.Regex {
		pattern := term
		if !opts.CaseSensitive {
			pattern = "(?i)" + pattern
		}
		if re, err := regexp.Compile(pattern); err == nil {
			return regexMatcher{re: re}
		}
	}
	return literalMatcher{term: term, foldedCase: !opts.CaseSensitive}
}

// SearchPlayback scans the session's recorded command, response, and
// error text for the term. Total matching time is bounded by the
// configured budget; when the budget expires mid-scan the result is
// marked truncated and carries the matches found so far.
func (s *Service) SearchPlayback(ctx context.Context, id *identity.Identity, sessionID, term string, opts SearchOptions) (*SearchResult, error) {
	session, err := s.gatedSession(ctx, id, sessionID, "search")
	if err != nil {
		return nil, err
	}
	commands, err := s.sessions.ListCommands(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	m := newMatcher(term, opts)
	result := &SearchResult{
		SessionID: session.SessionID,
		Term:      term,
		Matches:   []SearchMatch{},
	}

	deadline := s.now().Add(s.cfg.SearchBudget())
	for i := range commands {
		if s.now().After(deadline) {
			result.Truncated = true
			break
		}
		cmd := &commands[i]
		relative := cmd.RelativeTo(session.StartedAt)

		fields := []struct {
			enabled bool
			name    string
			text    string
		}{
			{opts.InCommands, FieldCommand, cmd.CommandText},
			{opts.InResponses, FieldResponse, cmd.ResponseText},
			{opts.InErrors, FieldError, cmd.ErrorMessage},
		}
		for _, field := range fields {
			if !field.enabled || field.text == "" {
				continue
			}
			start, end := m.find(field.text)
			if start < 0 {
				continue
			}
			result.Matches = append(result.Matches, SearchMatch{
				SequenceNumber:    cmd.SequenceNumber,
				RelativeTimestamp: relative,
				Field:             field.name,
				Context:           contextWindow(field.text, start, end, s.cfg.SearchContextChars),
			})
		}
	}

	s.auditViewed(id, sessionID, "search")
	return result, nil
}

// contextWindow cuts n characters either side of the match out of text,
// marking truncated edges with an ellipsis.
func contextWindow(text string, start, end, n int) string {
	from := start - n
	to := end + n

	var b strings.Builder
	if from < 0 {
		from = 0
	} else if from > 0 {
		b.WriteString("...")
	}
	if to > len(text) {
		to = len(text)
	}
	b.WriteString(text[from:to])
	if to < len(text) {
		b.WriteString("...")
	}
	return b.String()
}
