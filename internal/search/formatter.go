package search

import (
	"fmt"
	"strings"

	"github.com/hyperjump/kensaku/internal/pathres"
)

// hitDivider separates result blocks in the text report.
const hitDivider = "--------------------"

// FormatPage renders a result page as the caller-facing text report: a total
// header, then one block per hit with path, score, character offset, and the
// matched chunk. absOverride selects absolute display paths for this call
// when non-nil.
func FormatPage(page *Page, resolver *pathres.Resolver, absOverride *bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Total found: %d\n\n", page.TotalCount)
	for _, hit := range page.Hits {
		fmt.Fprintf(&b, "File: %s\n", displayPath(hit.Path, resolver, absOverride))
		fmt.Fprintf(&b, "Score: %.2f\n", hit.Score)
		fmt.Fprintf(&b, "Offset: %d\n", hit.CharOffset)
		fmt.Fprintf(&b, "Context:\n%s\n\n\n", hit.Content)
		b.WriteString(hitDivider + "\n\n\n")
	}
	return b.String()
}

// displayPath converts the stored canonical root-relative path into the
// display form requested for this call.
func displayPath(canonical string, resolver *pathres.Resolver, absOverride *bool) string {
	abs := resolver.Absolute(canonical)
	return resolver.Display(abs, absOverride)
}
