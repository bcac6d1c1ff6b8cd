// Package extract decodes file contents into plain text for indexing.
// Plain text is decoded lossily (undecodable bytes dropped); PDF, OOXML and
// spreadsheet formats get their text pulled out of the binary container.
package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Extractor turns files into searchable text.
type Extractor struct{}

// NewExtractor returns a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract reads the file at path and returns its decoded text content.
// Returns an error only when the file cannot be read or a binary container is
// malformed; plain text never fails (invalid UTF-8 is dropped, not surfaced).
func (e *Extractor) Extract(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read file: %w", err)
	}
	return e.ExtractBytes(content, strings.ToLower(filepath.Ext(path)))
}

// ExtractBytes decodes content according to ext (with leading dot).
// Unknown extensions are treated as plain text.
func (e *Extractor) ExtractBytes(content []byte, ext string) (string, error) {
	switch ext {
	case ".pdf":
		return extractPDF(content)
	case ".docx":
		return extractZipXML(content, "word/document.xml", wtTag)
	case ".pptx":
		return extractSlides(content)
	case ".xlsx":
		return extractWorkbook(content)
	case ".odp", ".ods":
		return extractODF(content)
	default:
		return DecodeLossy(content), nil
	}
}

// DecodeLossy converts raw bytes to a string, dropping any bytes that do not
// form valid UTF-8. The result's character offsets are what the index stores,
// so the same function must be used for index builds and direct reads.
func DecodeLossy(content []byte) string {
	return strings.ToValidUTF8(string(content), "")
}
