package querylang

import (
	"fmt"
	"strings"

	"github.com/blevesearch/bleve/v2"
	blevequery "github.com/blevesearch/bleve/v2/search/query"
)

// contentField is the only searchable field; path and char_offset are stored
// but never queried.
const contentField = "content"

// maxFuzziness is the edit distance bleve supports; larger requested values
// are clamped rather than rejected.
const maxFuzziness = 2

// Parse compiles a structured query string into a bleve query restricted to
// the content field. Grammar: OR has lowest precedence, adjacency and AND
// conjoin, NOT negates the following factor, parentheses group, quotes make
// phrases, ~N and * mark fuzzy and prefix terms. Returns an error wrapping
// ErrSyntax when the input does not parse.
func Parse(input string) (blevequery.Query, error) {
	tokens, err := lex(input)
	if err != nil {
		return nil, err
	}
	if len(tokens) == 0 {
		return nil, fmt.Errorf("%w: empty query", ErrSyntax)
	}
	p := &parser{tokens: tokens}
	q, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if !p.eof() {
		return nil, fmt.Errorf("%w: unexpected token after expression", ErrSyntax)
	}
	return q, nil
}

type parser struct {
	tokens []token
	pos    int
}

func (p *parser) eof() bool {
	return p.pos >= len(p.tokens)
}

func (p *parser) peek() token {
	return p.tokens[p.pos]
}

func (p *parser) next() token {
	t := p.tokens[p.pos]
	p.pos++
	return t
}

func (p *parser) parseOr() (blevequery.Query, error) {
	operand, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	operands := []blevequery.Query{operand}
	for !p.eof() && p.peek().kind == tokenOr {
		p.next()
		operand, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		operands = append(operands, operand)
	}
	if len(operands) == 1 {
		return operands[0], nil
	}
	return bleve.NewDisjunctionQuery(operands...), nil
}

// parseAnd parses a run of factors conjoined by adjacency or explicit AND,
// each optionally negated with NOT.
func (p *parser) parseAnd() (blevequery.Query, error) {
	var must, mustNot []blevequery.Query
	expectOperand := true
	for !p.eof() {
		k := p.peek().kind
		if k == tokenOr || k == tokenRParen {
			break
		}
		if k == tokenAnd {
			if expectOperand {
				return nil, fmt.Errorf("%w: dangling AND", ErrSyntax)
			}
			p.next()
			expectOperand = true
			continue
		}
		negated := false
		if k == tokenNot {
			p.next()
			negated = true
		}
		q, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		if negated {
			mustNot = append(mustNot, q)
		} else {
			must = append(must, q)
		}
		expectOperand = false
	}
	if expectOperand {
		return nil, fmt.Errorf("%w: missing operand", ErrSyntax)
	}
	if len(mustNot) == 0 {
		if len(must) == 1 {
			return must[0], nil
		}
		return bleve.NewConjunctionQuery(must...), nil
	}
	bq := bleve.NewBooleanQuery()
	if len(must) == 0 {
		// Pure negation still needs a positive leg to select from.
		bq.AddMust(bleve.NewMatchAllQuery())
	} else {
		bq.AddMust(must...)
	}
	bq.AddMustNot(mustNot...)
	return bq, nil
}

func (p *parser) parseFactor() (blevequery.Query, error) {
	if p.eof() {
		return nil, fmt.Errorf("%w: missing operand", ErrSyntax)
	}
	t := p.next()
	switch t.kind {
	case tokenLParen:
		q, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if p.eof() || p.peek().kind != tokenRParen {
			return nil, fmt.Errorf("%w: missing closing parenthesis", ErrSyntax)
		}
		p.next()
		return q, nil
	case tokenPhrase:
		q := bleve.NewMatchPhraseQuery(t.text)
		q.SetField(contentField)
		return q, nil
	case tokenTerm:
		return termQuery(t)
	default:
		return nil, fmt.Errorf("%w: unexpected token", ErrSyntax)
	}
}

// termQuery maps a term token onto the matching bleve query. Fuzzy and prefix
// queries bypass the analyzer, so the term is lowercased here to line up with
// the indexed (lowercased) tokens.
func termQuery(t token) (blevequery.Query, error) {
	if t.prefix && t.fuzziness >= 0 {
		return nil, fmt.Errorf("%w: term cannot be both fuzzy and prefix", ErrSyntax)
	}
	switch {
	case t.prefix:
		q := bleve.NewPrefixQuery(strings.ToLower(t.text))
		q.SetField(contentField)
		return q, nil
	case t.fuzziness >= 0:
		q := bleve.NewFuzzyQuery(strings.ToLower(t.text))
		fuzziness := t.fuzziness
		if fuzziness > maxFuzziness {
			fuzziness = maxFuzziness
		}
		q.SetFuzziness(fuzziness)
		q.SetField(contentField)
		return q, nil
	default:
		q := bleve.NewMatchQuery(t.text)
		q.SetField(contentField)
		return q, nil
	}
}
