package querylang

import (
	"errors"
	"testing"

	blevequery "github.com/blevesearch/bleve/v2/search/query"
)

func TestParsePlainTerm(t *testing.T) {
	q, err := Parse("hello")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	mq, ok := q.(*blevequery.MatchQuery)
	if !ok {
		t.Fatalf("got %T, want *MatchQuery", q)
	}
	if mq.Match != "hello" || mq.Field() != "content" {
		t.Errorf("match = %q field = %q", mq.Match, mq.Field())
	}
}

func TestParseFuzzyTerm(t *testing.T) {
	q, err := Parse("helo~2")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	fq, ok := q.(*blevequery.FuzzyQuery)
	if !ok {
		t.Fatalf("got %T, want *FuzzyQuery", q)
	}
	if fq.Term != "helo" || fq.Fuzziness != 2 {
		t.Errorf("term = %q fuzziness = %d", fq.Term, fq.Fuzziness)
	}
}

func TestParseFuzzyTermLowercased(t *testing.T) {
	// Fuzzy queries bypass the analyzer; the parser must lowercase to match
	// indexed tokens.
	q, err := Parse("Helo~1")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if fq := q.(*blevequery.FuzzyQuery); fq.Term != "helo" {
		t.Errorf("term = %q, want lowercased", fq.Term)
	}
}

func TestParseBareTildeDefaultsFuzziness(t *testing.T) {
	q, err := Parse("helo~")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if fq := q.(*blevequery.FuzzyQuery); fq.Fuzziness != 2 {
		t.Errorf("fuzziness = %d, want default 2", fq.Fuzziness)
	}
}

func TestParseFuzzinessClamped(t *testing.T) {
	q, err := Parse("helo~9")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if fq := q.(*blevequery.FuzzyQuery); fq.Fuzziness != 2 {
		t.Errorf("fuzziness = %d, want clamp to 2", fq.Fuzziness)
	}
}

func TestParsePrefixTerm(t *testing.T) {
	q, err := Parse("Hel*")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	pq, ok := q.(*blevequery.PrefixQuery)
	if !ok {
		t.Fatalf("got %T, want *PrefixQuery", q)
	}
	if pq.Prefix != "hel" {
		t.Errorf("prefix = %q, want lowercased %q", pq.Prefix, "hel")
	}
}

func TestParsePhrase(t *testing.T) {
	q, err := Parse(`"hello world"`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	pq, ok := q.(*blevequery.MatchPhraseQuery)
	if !ok {
		t.Fatalf("got %T, want *MatchPhraseQuery", q)
	}
	if pq.MatchPhrase != "hello world" {
		t.Errorf("phrase = %q", pq.MatchPhrase)
	}
}

func TestParseDisjunction(t *testing.T) {
	q, err := Parse("helo~2 OR helo*")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	dq, ok := q.(*blevequery.DisjunctionQuery)
	if !ok {
		t.Fatalf("got %T, want *DisjunctionQuery", q)
	}
	if len(dq.Disjuncts) != 2 {
		t.Errorf("disjuncts = %d, want 2", len(dq.Disjuncts))
	}
}

func TestParseAdjacencyConjoins(t *testing.T) {
	q, err := Parse("alpha beta")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	cq, ok := q.(*blevequery.ConjunctionQuery)
	if !ok {
		t.Fatalf("got %T, want *ConjunctionQuery", q)
	}
	if len(cq.Conjuncts) != 2 {
		t.Errorf("conjuncts = %d, want 2", len(cq.Conjuncts))
	}
}

func TestParseExplicitAnd(t *testing.T) {
	q, err := Parse("alpha AND beta")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if _, ok := q.(*blevequery.ConjunctionQuery); !ok {
		t.Fatalf("got %T, want *ConjunctionQuery", q)
	}
}

func TestParseNot(t *testing.T) {
	q, err := Parse("alpha NOT beta")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	bq, ok := q.(*blevequery.BooleanQuery)
	if !ok {
		t.Fatalf("got %T, want *BooleanQuery", q)
	}
	if bq.MustNot == nil {
		t.Error("expected MustNot leg")
	}
}

func TestParseGroupedRewriteOutput(t *testing.T) {
	// The exact shape the rewriter emits for two terms.
	q, err := Parse("(helo~2 OR helo*) (wrld~2 OR wrld*)")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	cq, ok := q.(*blevequery.ConjunctionQuery)
	if !ok {
		t.Fatalf("got %T, want *ConjunctionQuery", q)
	}
	for i, sub := range cq.Conjuncts {
		if _, ok := sub.(*blevequery.DisjunctionQuery); !ok {
			t.Errorf("conjunct %d is %T, want *DisjunctionQuery", i, sub)
		}
	}
}

func TestParseSyntaxErrors(t *testing.T) {
	bad := []string{
		"",
		"   ",
		"(unbalanced",
		"unbalanced)",
		`"unterminated`,
		"AND alpha",
		"alpha AND",
		"alpha OR",
		"NOT",
		"~2",
		"term~x",
		"both~1*",
	}
	for _, input := range bad {
		if _, err := Parse(input); !errors.Is(err, ErrSyntax) {
			t.Errorf("Parse(%q) error = %v, want ErrSyntax", input, err)
		}
	}
}
