// Package docparse turns raw extracted document text into a structured
// parse result: title, abstract, heading-delimited sections, and
// heuristically parsed bibliography references. It performs no I/O and
// holds no state; every call is independent.
package docparse

import (
	"errors"
	"strings"
)

// Parser identity attached to every result. The confidence value is the
// known reliability ceiling of this heuristic tier, not a measured score.
const (
	ParserName    = "paperparse-heuristic"
	ParserVersion = "1.0.0"
	Confidence    = 0.74
)

// ErrEmptyDocument is returned when the normalized full text is empty,
// e.g. a scanned PDF with no OCR layer. No partial result accompanies it.
var ErrEmptyDocument = errors.New("document has no extractable text")

// Config controls the heuristic bounds. Zero values fall back to defaults.
type Config struct {
	RefMaxEntries   int // candidate lines examined in the bibliography region
	RefTailLines    int // fallback tail window when no "References" heading is found
	RefMinLineChars int // lines shorter than this are treated as noise
	AbstractLines   int // lines joined into the abstract, including the "Abstract" line itself
}

// DefaultConfig returns the bounds the original heuristics were tuned with.
// The tail window is a guess that has worked in practice, not a load-bearing
// value; see ExtractReferences.
func DefaultConfig() Config {
	return Config{
		RefMaxEntries:   60,
		RefTailLines:    120,
		RefMinLineChars: 30,
		AbstractLines:   5,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.RefMaxEntries <= 0 {
		c.RefMaxEntries = d.RefMaxEntries
	}
	if c.RefTailLines <= 0 {
		c.RefTailLines = d.RefTailLines
	}
	if c.RefMinLineChars <= 0 {
		c.RefMinLineChars = d.RefMinLineChars
	}
	if c.AbstractLines <= 0 {
		c.AbstractLines = d.AbstractLines
	}
	return c
}

// SectionChunk is a contiguous run of body text attributed to one heading.
type SectionChunk struct {
	ID        string `json:"id"`
	Heading   string `json:"heading"`
	Text      string `json:"text"`
	PageStart int    `json:"pageStart,omitempty"`
	PageEnd   int    `json:"pageEnd,omitempty"`
}

// ParsedReference is one bibliography entry. DOI and Year are extracted
// opportunistically; Title and Authors are reserved for a stronger parser
// tier and stay empty here.
type ParsedReference struct {
	RawText string   `json:"rawText"`
	DOI     string   `json:"doi,omitempty"`
	Title   string   `json:"title,omitempty"`
	Year    int      `json:"year,omitempty"`
	Authors []string `json:"authors"`
}

// Result is the aggregate output of one parse. It is never mutated after
// construction.
type Result struct {
	ParserName    string            `json:"parserName"`
	ParserVersion string            `json:"parserVersion"`
	Confidence    float64           `json:"confidence"`
	Title         string            `json:"title,omitempty"`
	Abstract      string            `json:"abstract,omitempty"`
	FullText      string            `json:"fullText"`
	Sections      []SectionChunk    `json:"sections"`
	References    []ParsedReference `json:"references"`
}

// docLine is a trimmed, non-empty line with its 1-based source page.
// Page is 0 when the caller supplied pre-joined text.
type docLine struct {
	text string
	page int
}

// Parse runs the full pipeline over per-page extracted texts. Section
// chunks carry the page range their body lines came from.
func Parse(pages []string, cfg Config) (*Result, error) {
	return parse(pageLines(pages), strings.Join(pages, "\n"), cfg)
}

// ParseText runs the full pipeline over a single pre-joined string.
// Page attribution is unavailable in this mode.
func ParseText(raw string, cfg Config) (*Result, error) {
	return parse(rawLines(raw), raw, cfg)
}

func parse(lines []docLine, raw string, cfg Config) (*Result, error) {
	cfg = cfg.withDefaults()

	full := NormalizeWhitespace(raw)
	if full == "" {
		return nil, ErrEmptyDocument
	}

	res := &Result{
		ParserName:    ParserName,
		ParserVersion: ParserVersion,
		Confidence:    Confidence,
		FullText:      full,
		Sections:      splitSections(lines),
		References:    extractReferences(lines, cfg),
	}
	if len(lines) > 0 {
		res.Title = lines[0].text
	}
	res.Abstract = extractAbstract(lines, cfg.AbstractLines)
	return res, nil
}

// extractAbstract joins the first line whose lowered form starts with
// "abstract" with the following window-1 lines. Only the first match counts.
func extractAbstract(lines []docLine, window int) string {
	for i, ln := range lines {
		if !strings.HasPrefix(strings.ToLower(ln.text), "abstract") {
			continue
		}
		end := i + window
		if end > len(lines) {
			end = len(lines)
		}
		parts := make([]string, 0, end-i)
		for _, l := range lines[i:end] {
			parts = append(parts, l.text)
		}
		return NormalizeWhitespace(strings.Join(parts, " "))
	}
	return ""
}

// pageLines splits per-page texts into trimmed non-empty lines, keeping
// the page each line came from.
func pageLines(pages []string) []docLine {
	var lines []docLine
	for i, page := range pages {
		for _, raw := range strings.Split(page, "\n") {
			if t := strings.TrimSpace(raw); t != "" {
				lines = append(lines, docLine{text: t, page: i + 1})
			}
		}
	}
	return lines
}

// rawLines is pageLines for pre-joined text: no page attribution.
func rawLines(raw string) []docLine {
	var lines []docLine
	for _, r := range strings.Split(raw, "\n") {
		if t := strings.TrimSpace(r); t != "" {
			lines = append(lines, docLine{text: t})
		}
	}
	return lines
}
