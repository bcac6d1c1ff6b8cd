package search

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// NormalizePattern prepares a caller glob pattern for matching: a single
// leading "/" is stripped, and a pattern ending in "**" is extended with "/*"
// so it also matches nested paths.
func NormalizePattern(pattern string) string {
	pattern = strings.TrimPrefix(pattern, "/")
	if strings.HasSuffix(pattern, "**") {
		pattern += "/*"
	}
	return pattern
}

// MatchesPattern reports whether a canonical display path ("/dir/file.txt")
// matches an already-normalized pattern. An empty or "*" pattern matches
// everything. A pattern without wildcard characters is an exact relative-path
// equality test. A wildcard pattern without a path separator also matches on
// the file name alone, so "*.txt" selects .txt files at any depth.
func MatchesPattern(pattern, displayPath string) bool {
	if pattern == "" || pattern == "*" {
		return true
	}
	rel := strings.TrimPrefix(displayPath, "/")
	if !strings.ContainsAny(pattern, "*?[") {
		return pattern == rel
	}
	if matched, err := doublestar.Match(pattern, rel); err == nil && matched {
		return true
	}
	if !strings.Contains(pattern, "/") {
		base := rel
		if idx := strings.LastIndex(rel, "/"); idx >= 0 {
			base = rel[idx+1:]
		}
		if matched, err := doublestar.Match(pattern, base); err == nil && matched {
			return true
		}
	}
	return false
}
