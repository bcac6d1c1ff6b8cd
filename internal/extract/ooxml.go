package extract

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// OOXML text nodes. Both patterns tolerate attributes on the tag
// (e.g. <w:t xml:space="preserve">), which real-world documents carry.
var (
	wtTag = regexp.MustCompile(`<w:t[^>]*>([^<]*)</w:t>`)
	atTag = regexp.MustCompile(`<a:t[^>]*>([^<]*)</a:t>`)
)

// extractZipXML opens content as a zip, reads the entry at xmlPath, and joins
// the inner text of every tag match with spaces. Used for DOCX (word/document.xml,
// <w:t>) and per-slide PPTX parts.
func extractZipXML(content []byte, xmlPath string, tag *regexp.Regexp) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("extract OOXML: not a zip: %w", err)
	}
	data, err := readZipEntry(zr, xmlPath)
	if err != nil {
		return "", err
	}
	return joinTagText(data, tag), nil
}

// extractSlides extracts text from every slide of a .pptx in slide order.
func extractSlides(content []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("extract PPTX: not a zip: %w", err)
	}
	var b strings.Builder
	for _, f := range zr.File {
		if !strings.HasPrefix(f.Name, "ppt/slides/slide") || !strings.HasSuffix(f.Name, ".xml") {
			continue
		}
		data, err := readZipEntry(zr, f.Name)
		if err != nil {
			return "", err
		}
		text := joinTagText(data, atTag)
		if text == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(text)
	}
	return b.String(), nil
}

func readZipEntry(zr *zip.Reader, name string) ([]byte, error) {
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("extract OOXML: open %s: %w", name, err)
		}
		data, err := io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			return nil, fmt.Errorf("extract OOXML: read %s: %w", name, err)
		}
		return data, nil
	}
	return nil, fmt.Errorf("extract OOXML: %s not found", name)
}

func joinTagText(data []byte, tag *regexp.Regexp) string {
	parts := tag.FindAllSubmatch(data, -1)
	var b strings.Builder
	for _, p := range parts {
		text := strings.TrimSpace(string(p[1]))
		if text == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(text)
	}
	return b.String()
}
