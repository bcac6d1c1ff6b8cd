// Package index builds and holds the in-memory search index over chunked
// file contents.
package index

import "strings"

// Chunk is one overlapping window of a file's decoded text. Offset is the
// 0-based character (rune) position of the window's first character.
type Chunk struct {
	Offset int
	Text   string
}

// Chunker splits decoded text into fixed-size overlapping character windows.
type Chunker struct {
	size    int
	overlap int
}

// NewChunker creates a chunker with the given window size and overlap, both in
// characters.
func NewChunker(size, overlap int) *Chunker {
	return &Chunker{size: size, overlap: overlap}
}

// Split produces the chunk sequence for text. Windows start at stride
// size-overlap so adjacent windows share overlap characters; the final window
// is clipped at end of text. Windows that are empty after trimming are dropped
// from the output but their offset slots are not renumbered.
func (c *Chunker) Split(text string) []Chunk {
	runes := []rune(text)
	if len(runes) == 0 {
		return nil
	}
	step := c.size - c.overlap
	if step <= 0 {
		step = 1
	}
	var chunks []Chunk
	for start := 0; start < len(runes); start += step {
		end := start + c.size
		if end > len(runes) {
			end = len(runes)
		}
		window := string(runes[start:end])
		if strings.TrimSpace(window) != "" {
			chunks = append(chunks, Chunk{Offset: start, Text: window})
		}
		if end >= len(runes) {
			break
		}
	}
	return chunks
}
