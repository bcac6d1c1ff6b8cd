package utils

// TruncateRunes returns s truncated to max characters (runes, not bytes),
// with "..." appended if truncated. If max is 0 or negative, returns s unchanged.
func TruncateRunes(s string, max int) string {
	if max <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
