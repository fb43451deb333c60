package docparse

import (
	"strings"
	"unicode"
)

// NormalizeWhitespace collapses every run of whitespace (spaces, tabs,
// newlines) into a single space and trims the result. Idempotent; never
// produces consecutive whitespace or a longer string than its input.
func NormalizeWhitespace(text string) string {
	var sb strings.Builder
	sb.Grow(len(text))
	prevSpace := false
	for _, r := range text {
		if unicode.IsSpace(r) {
			if !prevSpace && sb.Len() > 0 {
				sb.WriteByte(' ')
				prevSpace = true
			}
		} else {
			sb.WriteRune(r)
			prevSpace = false
		}
	}
	return strings.TrimRight(sb.String(), " ")
}
