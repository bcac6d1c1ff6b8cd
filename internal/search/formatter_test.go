package search

import (
	"strings"
	"testing"

	"github.com/hyperjump/kensaku/internal/pathres"
)

func TestFormatPage(t *testing.T) {
	resolver := pathres.New("/data/docs", false)
	page := &Page{
		TotalCount: 42,
		Hits: []Hit{
			{Path: "/notes/a.txt", Score: 1.2345, Content: "matched chunk text", CharOffset: 400},
			{Path: "/b.md", Score: 0.5, Content: "second chunk", CharOffset: 0},
		},
	}
	out := FormatPage(page, resolver, nil)

	if !strings.HasPrefix(out, "Total found: 42\n\n") {
		t.Errorf("missing total header: %q", out)
	}
	for _, want := range []string{
		"File: /notes/a.txt\n",
		"Score: 1.23\n",
		"Offset: 400\n",
		"Context:\nmatched chunk text\n",
		"File: /b.md\n",
		"Score: 0.50\n",
		hitDivider,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if got := strings.Count(out, hitDivider); got != 2 {
		t.Errorf("divider count = %d, want 2", got)
	}
}

func TestFormatPageEmpty(t *testing.T) {
	resolver := pathres.New("/data/docs", false)
	out := FormatPage(&Page{}, resolver, nil)
	if out != "Total found: 0\n\n" {
		t.Errorf("empty page = %q", out)
	}
}

func TestFormatPageAbsoluteOverride(t *testing.T) {
	resolver := pathres.New("/data/docs", false)
	page := &Page{TotalCount: 1, Hits: []Hit{{Path: "/a.txt", Score: 1, Content: "x"}}}
	abs := true
	out := FormatPage(page, resolver, &abs)
	if !strings.Contains(out, "File: /data/docs/a.txt\n") {
		t.Errorf("absolute override not applied:\n%s", out)
	}
}
