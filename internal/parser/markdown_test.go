package parser

import (
	"strings"
	"testing"
)

func TestMarkdownParser_HeadingsOnOwnLines(t *testing.T) {
	input := "# A Study of Parsing\n\nSome introductory prose.\n\n## Results\n\nThe results follow.\n"
	p := &MarkdownParser{}
	pages, err := p.Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pages) != 1 {
		t.Fatalf("expected 1 page, got %d", len(pages))
	}

	lines := strings.Split(pages[0], "\n")
	found := map[string]bool{}
	for _, l := range lines {
		found[l] = true
	}
	for _, want := range []string{"A Study of Parsing", "Results", "The results follow."} {
		if !found[want] {
			t.Errorf("expected standalone line %q in output, lines: %v", want, lines)
		}
	}
}

func TestMarkdownParser_ParagraphEmittedOnce(t *testing.T) {
	p := &MarkdownParser{}
	pages, err := p.Parse(strings.NewReader("# Introduction\n\nBody sentence here.\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := pages[0], "Introduction\nBody sentence here."; got != want {
		t.Errorf("expected output %q, got %q", want, got)
	}
	if strings.Count(pages[0], "Body sentence here.") != 1 {
		t.Errorf("paragraph text repeated: %q", pages[0])
	}
}

func TestMarkdownParser_ListItems(t *testing.T) {
	p := &MarkdownParser{}
	pages, err := p.Parse(strings.NewReader("## References\n\n- Smith 2020\n- Jones 2021\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines := strings.Split(pages[0], "\n")
	want := []string{"References", "Smith 2020", "Jones 2021"}
	if len(lines) != len(want) {
		t.Fatalf("expected lines %v, got %v", want, lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d: expected %q, got %q", i, want[i], lines[i])
		}
	}
}

func TestMarkdownParser_EmptyInput(t *testing.T) {
	p := &MarkdownParser{}
	pages, err := p.Parse(strings.NewReader(""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pages) != 1 || pages[0] != "" {
		t.Errorf("expected a single empty page, got %#v", pages)
	}
}
