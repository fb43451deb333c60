package docparse

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	// doiPattern matches a DOI anywhere in a line: "10." prefix, registrant
	// code, slash, suffix. Matched values are lower-cased in output.
	doiPattern = regexp.MustCompile(`(?i)10\.\d{4,9}/[-._;()/:a-z0-9]+`)

	// yearPattern matches the first plausible publication year, using a
	// two-digit-century window: 19xx or 20xx.
	yearPattern = regexp.MustCompile(`(?:19|20)\d{2}`)
)

// ExtractReferences locates the bibliography region of pre-joined document
// text and parses each candidate line into a reference.
//
// The region is every line after the first line equal (case-insensitively)
// to "references". When no such line exists (the heading was mislabeled,
// e.g. "Bibliography"), the last cfg.RefTailLines trimmed lines serve as a
// best-effort fallback. Of the region, the first cfg.RefMaxEntries lines
// are examined; lines shorter than cfg.RefMinLineChars are skipped as noise
// (running headers, page numbers). Every surviving line yields exactly one
// reference, even when neither a DOI nor a year could be found in it.
func ExtractReferences(text string, cfg Config) []ParsedReference {
	return extractReferences(rawLines(text), cfg.withDefaults())
}

func extractReferences(lines []docLine, cfg Config) []ParsedReference {
	refIdx := -1
	for i, ln := range lines {
		if strings.EqualFold(ln.text, "references") {
			refIdx = i
			break
		}
	}

	var source []docLine
	if refIdx >= 0 {
		source = lines[refIdx+1:]
	} else {
		start := len(lines) - cfg.RefTailLines
		if start < 0 {
			start = 0
		}
		source = lines[start:]
	}
	if len(source) > cfg.RefMaxEntries {
		source = source[:cfg.RefMaxEntries]
	}

	var refs []ParsedReference
	for _, ln := range source {
		if len(ln.text) < cfg.RefMinLineChars {
			continue
		}
		ref := ParsedReference{
			RawText: ln.text,
			Authors: []string{},
		}
		if m := doiPattern.FindString(ln.text); m != "" {
			ref.DOI = strings.ToLower(m)
		}
		if m := yearPattern.FindString(ln.text); m != "" {
			ref.Year, _ = strconv.Atoi(m)
		}
		refs = append(refs, ref)
	}
	return refs
}
