package parser

import (
	"bytes"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownParser handles Markdown files using goldmark. Headings are
// emitted as standalone lines so the segmenter can recognize them; all
// other blocks contribute their plain text. Markdown has no pages, so the
// whole file becomes a single page.
type MarkdownParser struct{}

func (p *MarkdownParser) Parse(r io.Reader) ([]string, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	md := goldmark.New()
	reader := text.NewReader(src)
	doc := md.Parser().Parse(reader)

	var sb strings.Builder
	writeLine := func(s string) {
		s = strings.TrimSpace(s)
		if s == "" {
			return
		}
		if sb.Len() > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(s)
	}

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		if h, ok := n.(*ast.Heading); ok {
			writeLine(string(h.Text(src)))
			continue
		}
		writeLine(extractText(n, src))
	}

	return []string{sb.String()}, nil
}

// extractText gets the text content of a goldmark AST node. A block that
// owns source lines is rendered from them alone; its inline children cover
// the same segments and must not be walked as well. Container blocks
// (lists, quotes) own no lines and recurse into their children instead.
func extractText(n ast.Node, src []byte) string {
	if t, ok := n.(*ast.Text); ok {
		return string(t.Value(src))
	}
	if n.Type() == ast.TypeBlock {
		if lines := n.Lines(); lines.Len() > 0 {
			var buf bytes.Buffer
			for i := 0; i < lines.Len(); i++ {
				seg := lines.At(i)
				buf.Write(seg.Value(src))
			}
			return strings.TrimSpace(buf.String())
		}
	}
	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		part := extractText(c, src)
		if part == "" {
			continue
		}
		if buf.Len() > 0 {
			buf.WriteByte('\n')
		}
		buf.WriteString(part)
	}
	return buf.String()
}
