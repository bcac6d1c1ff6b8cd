// Package search executes queries against the built index and renders
// result pages.
package search

import (
	"context"

	"github.com/hyperjump/kensaku/internal/config"
	"github.com/hyperjump/kensaku/internal/index"
	"github.com/hyperjump/kensaku/internal/querylang"
	"go.uber.org/zap"
)

// Hit is one ranked chunk match.
type Hit struct {
	Path       string
	Score      float64
	Content    string
	CharOffset int
}

// Page is the paginated result of one query execution. TotalCount is the
// full number of pattern-matching hits, ignoring skip and limit.
type Page struct {
	Hits       []Hit
	TotalCount int
}

// Executor runs queries against the lazily-built index. Glob filtering
// happens at query time, after retrieval: the index always covers every file
// under the root, each call filters hits by its own pattern before
// pagination, and TotalCount counts only pattern-matching hits.
type Executor struct {
	builder *index.Builder
	cfg     *config.SearchConfig
	logger  *zap.Logger
}

// NewExecutor creates an executor over builder.
func NewExecutor(builder *index.Builder, cfg *config.SearchConfig, logger *zap.Logger) *Executor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Executor{builder: builder, cfg: cfg, logger: logger}
}

// Search runs a query in fuzzy-auto mode: each bare term is rewritten to
// tolerate edit distance 2 and prefix matches before execution.
func (e *Executor) Search(ctx context.Context, rawQuery, globPattern string, skip, limit int) (*Page, error) {
	return e.run(ctx, querylang.Rewrite(rawQuery), globPattern, skip, limit)
}

// SearchStructured runs a query that already uses the structured syntax,
// bypassing the fuzzy rewriter.
func (e *Executor) SearchStructured(ctx context.Context, query, globPattern string, skip, limit int) (*Page, error) {
	return e.run(ctx, query, globPattern, skip, limit)
}

func (e *Executor) run(ctx context.Context, queryStr, globPattern string, skip, limit int) (*Page, error) {
	idx, err := e.builder.EnsureBuilt()
	if err != nil {
		return nil, err
	}
	q, err := querylang.Parse(queryStr)
	if err != nil {
		return nil, err
	}

	// First pass only reads the match count; the second retrieves every hit
	// so the glob post-filter sees the full ranked list.
	counted, err := idx.Search(ctx, q, 0, 0)
	if err != nil {
		return nil, err
	}
	if counted.Total == 0 {
		return &Page{}, nil
	}
	res, err := idx.Search(ctx, q, int(counted.Total), 0)
	if err != nil {
		return nil, err
	}

	pattern := NormalizePattern(globPattern)
	var hits []Hit
	for _, h := range res.Hits {
		path, _ := h.Fields["path"].(string)
		if !MatchesPattern(pattern, path) {
			continue
		}
		content, _ := h.Fields["content"].(string)
		offset, _ := h.Fields["char_offset"].(float64)
		hits = append(hits, Hit{
			Path:       path,
			Score:      h.Score,
			Content:    content,
			CharOffset: int(offset),
		})
	}

	page := &Page{TotalCount: len(hits)}
	if skip < 0 {
		skip = 0
	}
	limit = e.cfg.ResolveLimit(limit)
	if skip < len(hits) {
		end := skip + limit
		if end > len(hits) {
			end = len(hits)
		}
		page.Hits = hits[skip:end]
	}
	e.logger.Debug("search executed",
		zap.String("query", queryStr),
		zap.String("pattern", pattern),
		zap.Int("total", page.TotalCount),
		zap.Int("returned", len(page.Hits)),
	)
	return page, nil
}
