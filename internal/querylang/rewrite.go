package querylang

import "strings"

// defaultFuzziness is the edit distance used for rewritten terms and for a
// bare ~ suffix.
const defaultFuzziness = 2

// structuredChars are the characters whose presence marks a term (or a whole
// single-term query) as already structured, exempting it from rewriting.
const structuredChars = `"~*`

// Rewrite transforms a raw user query into a fuzzy- and prefix-tolerant
// expression. A single bare term becomes (term~2 OR term*). In multi-term
// queries each plain term is rewritten independently; quoted phrases, terms
// already carrying ~ or *, and boolean keywords pass through unchanged, in
// their original order, rejoined with single spaces.
func Rewrite(raw string) string {
	terms := strings.Fields(raw)
	if len(terms) == 1 && !strings.ContainsAny(raw, structuredChars) {
		return fuzzyOrPrefix(terms[0])
	}
	out := make([]string, 0, len(terms))
	for _, term := range terms {
		if strings.ContainsAny(term, structuredChars) || isBooleanKeyword(term) {
			out = append(out, term)
			continue
		}
		out = append(out, fuzzyOrPrefix(term))
	}
	return strings.Join(out, " ")
}

func fuzzyOrPrefix(term string) string {
	return "(" + term + "~2 OR " + term + "*)"
}

func isBooleanKeyword(term string) bool {
	switch strings.ToUpper(term) {
	case "AND", "OR", "NOT":
		return true
	}
	return false
}
