// Package querylang implements the structured query syntax executed against
// the index: quoted phrases, AND/OR/NOT connectives, parentheses, fuzzy
// terms (term~N) and prefix terms (term*). It also provides the rewriter
// that turns bare user queries into fuzzy- and prefix-tolerant expressions.
package querylang

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// ErrSyntax reports a query that does not parse against the grammar.
var ErrSyntax = errors.New("invalid query syntax")

type tokenKind int

const (
	tokenTerm tokenKind = iota
	tokenPhrase
	tokenLParen
	tokenRParen
	tokenAnd
	tokenOr
	tokenNot
)

// token is one lexical element of a query string. For tokenTerm, fuzziness
// is -1 unless the term carried a ~N suffix, and prefix marks a trailing *.
type token struct {
	kind      tokenKind
	text      string
	fuzziness int
	prefix    bool
}

// lex splits a query string into tokens. Returns ErrSyntax for an
// unterminated quote or a malformed fuzzy suffix.
func lex(input string) ([]token, error) {
	var tokens []token
	runes := []rune(input)
	i := 0
	for i < len(runes) {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case r == '(':
			tokens = append(tokens, token{kind: tokenLParen})
			i++
		case r == ')':
			tokens = append(tokens, token{kind: tokenRParen})
			i++
		case r == '"':
			end := -1
			for j := i + 1; j < len(runes); j++ {
				if runes[j] == '"' {
					end = j
					break
				}
			}
			if end < 0 {
				return nil, fmt.Errorf("%w: unterminated quote", ErrSyntax)
			}
			tokens = append(tokens, token{kind: tokenPhrase, text: string(runes[i+1 : end])})
			i = end + 1
		default:
			start := i
			for i < len(runes) && !unicode.IsSpace(runes[i]) && runes[i] != '(' && runes[i] != ')' && runes[i] != '"' {
				i++
			}
			tok, err := classifyWord(string(runes[start:i]))
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, tok)
		}
	}
	return tokens, nil
}

// classifyWord turns a bare word into a keyword, fuzzy, prefix, or plain term
// token.
func classifyWord(word string) (token, error) {
	switch strings.ToUpper(word) {
	case "AND":
		return token{kind: tokenAnd}, nil
	case "OR":
		return token{kind: tokenOr}, nil
	case "NOT":
		return token{kind: tokenNot}, nil
	}
	prefix := false
	if strings.HasSuffix(word, "*") {
		prefix = true
		word = strings.TrimSuffix(word, "*")
	}
	fuzziness := -1
	if idx := strings.LastIndex(word, "~"); idx >= 0 {
		suffix := word[idx+1:]
		word = word[:idx]
		if suffix == "" {
			fuzziness = defaultFuzziness
		} else {
			n, err := strconv.Atoi(suffix)
			if err != nil || n < 0 {
				return token{}, fmt.Errorf("%w: bad fuzziness %q", ErrSyntax, suffix)
			}
			fuzziness = n
		}
	}
	if word == "" {
		return token{}, fmt.Errorf("%w: empty term", ErrSyntax)
	}
	return token{kind: tokenTerm, text: word, fuzziness: fuzziness, prefix: prefix}, nil
}
