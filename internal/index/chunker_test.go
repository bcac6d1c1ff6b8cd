package index

import (
	"strings"
	"testing"
)

func TestChunkerSplit(t *testing.T) {
	c := NewChunker(10, 3)
	text := strings.Repeat("abcdefg", 4) // 28 chars
	chunks := c.Split(text)
	if len(chunks) == 0 {
		t.Fatal("expected chunks")
	}
	// Stride is size-overlap = 7.
	for i, ch := range chunks {
		if ch.Offset != i*7 {
			t.Errorf("chunk %d offset = %d, want %d", i, ch.Offset, i*7)
		}
		if len([]rune(ch.Text)) > 10 {
			t.Errorf("chunk %d longer than window: %d", i, len(ch.Text))
		}
	}
	// Every character position is covered by at least one window.
	covered := make([]bool, len([]rune(text)))
	for _, ch := range chunks {
		for j := range []rune(ch.Text) {
			covered[ch.Offset+j] = true
		}
	}
	for pos, ok := range covered {
		if !ok {
			t.Errorf("position %d not covered by any chunk", pos)
		}
	}
	// Adjacent windows overlap by exactly overlap characters (except the last,
	// which may be shorter).
	for i := 1; i < len(chunks); i++ {
		prevEnd := chunks[i-1].Offset + len([]rune(chunks[i-1].Text))
		overlap := prevEnd - chunks[i].Offset
		if i < len(chunks)-1 && overlap != 3 {
			t.Errorf("overlap between chunk %d and %d = %d, want 3", i-1, i, overlap)
		}
	}
}

func TestChunkerSplitEmpty(t *testing.T) {
	c := NewChunker(10, 3)
	if got := c.Split(""); got != nil {
		t.Errorf("empty text should yield nil, got %v", got)
	}
}

func TestChunkerSplitWhitespaceOnlyWindowsDropped(t *testing.T) {
	c := NewChunker(4, 0)
	// Window 1 is all spaces: dropped, but the following window keeps its
	// original offset slot.
	text := "abcd    efgh"
	chunks := c.Split(text)
	if len(chunks) != 2 {
		t.Fatalf("got %d chunks, want 2: %v", len(chunks), chunks)
	}
	if chunks[0].Offset != 0 || chunks[0].Text != "abcd" {
		t.Errorf("chunk 0 = %+v", chunks[0])
	}
	if chunks[1].Offset != 8 || chunks[1].Text != "efgh" {
		t.Errorf("chunk 1 = %+v (offset slot must not be renumbered)", chunks[1])
	}
}

func TestChunkerSplitShortText(t *testing.T) {
	c := NewChunker(500, 100)
	chunks := c.Split("tiny")
	if len(chunks) != 1 {
		t.Fatalf("got %d chunks, want 1", len(chunks))
	}
	if chunks[0].Offset != 0 || chunks[0].Text != "tiny" {
		t.Errorf("chunk = %+v", chunks[0])
	}
}

func TestChunkerSplitMultibyteOffsets(t *testing.T) {
	c := NewChunker(4, 1)
	text := "日本語のテキストです" // 10 runes
	chunks := c.Split(text)
	if len(chunks) != 3 {
		t.Fatalf("got %d chunks, want 3", len(chunks))
	}
	// Offsets count characters, not bytes.
	if chunks[1].Offset != 3 || chunks[2].Offset != 6 {
		t.Errorf("offsets = %d, %d; want 3, 6", chunks[1].Offset, chunks[2].Offset)
	}
	if chunks[0].Text != "日本語の" {
		t.Errorf("chunk 0 text = %q", chunks[0].Text)
	}
}

func TestChunkerDegenerateStride(t *testing.T) {
	// overlap >= size would loop forever with a naive stride; it must clamp.
	c := NewChunker(2, 5)
	chunks := c.Split("abcd")
	if len(chunks) == 0 {
		t.Fatal("expected chunks")
	}
	for i := 1; i < len(chunks); i++ {
		if chunks[i].Offset <= chunks[i-1].Offset {
			t.Fatalf("offsets not increasing: %v", chunks)
		}
	}
}
