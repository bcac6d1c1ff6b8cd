package extract

import (
	"archive/zip"
	"bytes"
	"fmt"
	"regexp"
	"strings"
)

// odfContentPath is the main content entry inside an OpenDocument zip, the
// same for presentations (.odp) and spreadsheets (.ods).
const odfContentPath = "content.xml"

// OpenDocument text nodes, attributes tolerated.
var (
	odfTextP    = regexp.MustCompile(`<text:p[^>]*>([^<]*)</text:p>`)
	odfTextSpan = regexp.MustCompile(`<text:span[^>]*>([^<]*)</text:span>`)
	odfTextH    = regexp.MustCompile(`<text:h[^>]*>([^<]*)</text:h>`)
)

// extractODF pulls text out of an OpenDocument file (.odp or .ods): a zip
// holding content.xml with text in text:p, text:span and text:h elements.
func extractODF(content []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("extract ODF: not a zip: %w", err)
	}
	data, err := readZipEntry(zr, odfContentPath)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for _, tag := range []*regexp.Regexp{odfTextP, odfTextSpan, odfTextH} {
		text := joinTagText(data, tag)
		if text == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(text)
	}
	return b.String(), nil
}
