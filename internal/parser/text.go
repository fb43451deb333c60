package parser

import (
	"io"
	"strings"
)

// TextParser handles plain text files. Form feeds, when present, mark page
// boundaries; otherwise the whole file is a single page.
type TextParser struct{}

func (p *TextParser) Parse(r io.Reader) ([]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return strings.Split(string(data), "\f"), nil
}
