package docparse

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// headingTerms is the fixed vocabulary of recognized section headings,
// matched case-insensitively at the start of a line. Unlisted headings
// ("Experimental Setup") fall into the preceding section's body; body text
// that happens to start with one of these words starts a spurious section.
// Both are accepted trade-offs of the heuristic.
var headingTerms = []string{
	"abstract",
	"introduction",
	"background",
	"related work",
	"method",
	"methods",
	"materials",
	"results",
	"discussion",
	"conclusion",
	"limitations",
	"references",
}

// HeadingTerms returns a copy of the heading vocabulary, in match order.
func HeadingTerms() []string {
	out := make([]string, len(headingTerms))
	copy(out, headingTerms)
	return out
}

// IsHeading reports whether a trimmed line is a recognized section heading:
// a vocabulary term at the start of the line, followed by end-of-line or a
// non-word rune. "Methods: overview" matches; "Methodology" does not.
func IsHeading(line string) bool {
	lower := strings.ToLower(line)
	for _, term := range headingTerms {
		if !strings.HasPrefix(lower, term) {
			continue
		}
		rest := lower[len(term):]
		if rest == "" {
			return true
		}
		r, _ := utf8.DecodeRuneInString(rest)
		if !isWordRune(r) {
			return true
		}
	}
	return false
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
