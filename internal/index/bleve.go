package index

import (
	"context"
	"fmt"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	blevequery "github.com/blevesearch/bleve/v2/search/query"
)

// ChunkDocument is the unit actually indexed and returned by searches: one
// chunk of one file. Path is the canonical root-relative display path;
// CharOffset is the chunk's first character position within the decoded file.
type ChunkDocument struct {
	Path       string `json:"path"`
	Content    string `json:"content"`
	CharOffset int    `json:"char_offset"`
}

// IndexedChunk pairs a chunk document with its index ID. IDs are derived from
// path and chunk ordinal so rebuilding over an unchanged tree produces the
// identical document set.
type IndexedChunk struct {
	ID  string
	Doc *ChunkDocument
}

// ChunkID returns the index document ID for the seq-th chunk of displayPath.
func ChunkID(displayPath string, seq int) string {
	return fmt.Sprintf("%s#%d", displayPath, seq)
}

// StoredFields are the fields requested back from the index on every search.
var StoredFields = []string{"path", "content", "char_offset"}

// MemIndex is the in-memory inverted index over chunk documents. Schema:
// content is stored and indexed with the standard analyzer (lowercase,
// tokenize, no stemming); path and char_offset are stored but not indexed,
// they only ride along for display.
type MemIndex struct {
	idx bleve.Index
}

// NewMemIndex creates an empty in-memory index.
func NewMemIndex() (*MemIndex, error) {
	im := bleve.NewIndexMapping()

	docMapping := bleve.NewDocumentMapping()
	contentField := bleve.NewTextFieldMapping()
	// Standard analyzer so queries match exact words; stemming would make
	// prefix and fuzzy semantics unpredictable (e.g. "running" -> "run").
	contentField.Analyzer = standard.Name
	contentField.Store = true
	docMapping.AddFieldMappingsAt("content", contentField)

	pathField := bleve.NewTextFieldMapping()
	pathField.Index = false
	pathField.Store = true
	docMapping.AddFieldMappingsAt("path", pathField)

	offsetField := bleve.NewNumericFieldMapping()
	offsetField.Index = false
	offsetField.Store = true
	docMapping.AddFieldMappingsAt("char_offset", offsetField)

	im.DefaultMapping = docMapping

	idx, err := bleve.NewMemOnly(im)
	if err != nil {
		return nil, fmt.Errorf("failed to create index: %w", err)
	}
	return &MemIndex{idx: idx}, nil
}

// IndexBatch commits chunks to the index in one batch. After the batch
// executes the documents are visible to searches; there is no separate
// refresh step.
func (m *MemIndex) IndexBatch(chunks []IndexedChunk) error {
	if len(chunks) == 0 {
		return nil
	}
	batch := m.idx.NewBatch()
	for _, ch := range chunks {
		if err := batch.Index(ch.ID, ch.Doc); err != nil {
			return fmt.Errorf("failed to index chunk %s: %w", ch.ID, err)
		}
	}
	if err := m.idx.Batch(batch); err != nil {
		return fmt.Errorf("failed to execute batch: %w", err)
	}
	return nil
}

// Search executes q with skip/limit pagination in index ranking order and
// returns the raw bleve result with the stored fields loaded.
func (m *MemIndex) Search(ctx context.Context, q blevequery.Query, size, from int) (*bleve.SearchResult, error) {
	req := bleve.NewSearchRequestOptions(q, size, from, false)
	req.Fields = StoredFields
	res, err := m.idx.SearchInContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}
	return res, nil
}

// DocCount returns the number of chunk documents in the index.
func (m *MemIndex) DocCount() (uint64, error) {
	return m.idx.DocCount()
}

// Close closes the underlying index.
func (m *MemIndex) Close() error {
	return m.idx.Close()
}
