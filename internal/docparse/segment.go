package docparse

import (
	"fmt"
	"hash/fnv"
	"io"
	"strings"
)

// SentinelHeading labels body text that precedes the first recognized
// heading, or the whole document when no heading is recognized.
const SentinelHeading = "Body"

// sectionIDPrefixLen bounds how much body text feeds the section id hash.
const sectionIDPrefixLen = 200

// SplitSections segments pre-joined document text into heading-delimited
// chunks. Chunks with empty bodies are never emitted; the heading label
// still advances past them. An input with no recognized heading yields a
// single chunk labeled with the sentinel; an empty input yields none.
func SplitSections(text string) []SectionChunk {
	return splitSections(rawLines(text))
}

func splitSections(lines []docLine) []SectionChunk {
	var sections []SectionChunk
	heading := SentinelHeading
	var body []string
	pageStart, pageEnd := 0, 0

	flush := func() {
		text := NormalizeWhitespace(strings.Join(body, " "))
		if text == "" {
			return
		}
		sections = append(sections, SectionChunk{
			ID:        sectionID(heading, text),
			Heading:   heading,
			Text:      text,
			PageStart: pageStart,
			PageEnd:   pageEnd,
		})
	}

	for _, ln := range lines {
		if IsHeading(ln.text) {
			flush()
			heading = ln.text
			body = nil
			pageStart, pageEnd = 0, 0
			continue
		}
		if len(body) == 0 {
			pageStart = ln.page
		}
		pageEnd = ln.page
		body = append(body, ln.text)
	}
	flush()

	return sections
}

// sectionID hashes the heading plus a bounded body prefix with FNV-1a.
// Deterministic for identical (heading, prefix) pairs within one document;
// collisions across distinct content are tolerated. Callers must not treat
// the id as a content fingerprint.
func sectionID(heading, body string) string {
	prefix := body
	if len(prefix) > sectionIDPrefixLen {
		prefix = prefix[:sectionIDPrefixLen]
	}
	h := fnv.New64a()
	io.WriteString(h, heading)
	h.Write([]byte{0})
	io.WriteString(h, prefix)
	return fmt.Sprintf("section_%d", h.Sum64())
}
