package index

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hyperjump/kensaku/internal/config"
	"github.com/hyperjump/kensaku/internal/extract"
	"github.com/hyperjump/kensaku/internal/pathres"
	"go.uber.org/zap"
)

// ErrRootNotFound reports that the root directory does not exist or is not a
// directory. Callers surface it as a plain "Path not found" result.
var ErrRootNotFound = errors.New("root path not found")

// State is the build lifecycle of the process-wide index.
type State int32

const (
	StateUnbuilt State = iota
	StateBuilding
	StateReady
)

func (s State) String() string {
	switch s {
	case StateBuilding:
		return "building"
	case StateReady:
		return "ready"
	default:
		return "unbuilt"
	}
}

// Stats describes a completed build.
type Stats struct {
	Files   int
	Chunks  int
	BuiltAt time.Time
}

// Builder owns the lazily-built process-wide index. The index is built at
// most once: the first EnsureBuilt call walks the root and commits every
// chunk; later calls return the same index unconditionally. There is no
// invalidation: files changed after the build keep their indexed content
// until the process restarts (MarkStale only records that this happened).
type Builder struct {
	resolver  *pathres.Resolver
	extractor *extract.Extractor
	chunker   *Chunker
	logger    *zap.Logger

	mu    sync.Mutex
	state atomic.Int32
	index *MemIndex
	stats Stats
	stale atomic.Bool
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithLogger sets a logger for build progress and skipped-file events.
func WithLogger(l *zap.Logger) BuilderOption {
	return func(b *Builder) { b.logger = l }
}

// NewBuilder creates a builder. extractor may not be nil.
func NewBuilder(resolver *pathres.Resolver, cfg *config.SearchConfig, extractor *extract.Extractor, opts ...BuilderOption) *Builder {
	b := &Builder{
		resolver:  resolver,
		extractor: extractor,
		chunker:   NewChunker(cfg.ChunkSize, cfg.ChunkOverlap),
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// EnsureBuilt returns the built index, building it on the first call. Only
// one build ever executes; concurrent callers block until it completes.
// Returns ErrRootNotFound when the root directory is missing.
func (b *Builder) EnsureBuilt() (*MemIndex, error) {
	if b.State() == StateReady {
		return b.index, nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.State() == StateReady {
		return b.index, nil
	}

	info, err := os.Stat(b.resolver.Root())
	if err != nil || !info.IsDir() {
		return nil, ErrRootNotFound
	}

	b.state.Store(int32(StateBuilding))
	idx, stats, err := b.build()
	if err != nil {
		b.state.Store(int32(StateUnbuilt))
		return nil, err
	}
	b.index = idx
	b.stats = stats
	b.state.Store(int32(StateReady))
	return idx, nil
}

// build walks the root once and commits one document per non-empty chunk.
// A file that cannot be read or decoded is skipped; the build never aborts
// because of a single bad file.
func (b *Builder) build() (*MemIndex, Stats, error) {
	start := time.Now()
	idx, err := NewMemIndex()
	if err != nil {
		return nil, Stats{}, err
	}

	var chunks []IndexedChunk
	files := 0
	walkErr := filepath.WalkDir(b.resolver.Root(), func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			b.logger.Debug("walk entry skipped", zap.String("path", path), zap.Error(err))
			return nil
		}
		if d.IsDir() {
			return nil
		}
		// Stat resolves symlinks so only regular files are indexed.
		finfo, statErr := os.Stat(path)
		if statErr != nil || !finfo.Mode().IsRegular() {
			return nil
		}
		text, extractErr := b.extractor.Extract(path)
		if extractErr != nil {
			b.logger.Debug("file skipped", zap.String("path", path), zap.Error(extractErr))
			return nil
		}
		display := b.resolver.Canonical(path)
		for seq, ch := range b.chunker.Split(text) {
			chunks = append(chunks, IndexedChunk{
				ID: ChunkID(display, seq),
				Doc: &ChunkDocument{
					Path:       display,
					Content:    ch.Text,
					CharOffset: ch.Offset,
				},
			})
		}
		files++
		return nil
	})
	if walkErr != nil {
		_ = idx.Close()
		return nil, Stats{}, walkErr
	}
	if err := idx.IndexBatch(chunks); err != nil {
		_ = idx.Close()
		return nil, Stats{}, err
	}

	stats := Stats{Files: files, Chunks: len(chunks), BuiltAt: time.Now()}
	b.logger.Info("index built",
		zap.String("root", b.resolver.Root()),
		zap.Int("files", stats.Files),
		zap.Int("chunks", stats.Chunks),
		zap.Duration("took", time.Since(start)),
	)
	return idx, stats, nil
}

// State returns the current build state.
func (b *Builder) State() State {
	return State(b.state.Load())
}

// Stats returns build statistics; the zero value until the index is ready.
func (b *Builder) Stats() Stats {
	if b.State() != StateReady {
		return Stats{}
	}
	return b.stats
}

// MarkStale records that something under the root changed after the build.
// The index itself is never touched.
func (b *Builder) MarkStale() {
	if b.State() == StateReady {
		b.stale.Store(true)
	}
}

// Stale reports whether the filesystem changed after the index was built.
func (b *Builder) Stale() bool {
	return b.stale.Load()
}

// Close releases the built index, if any.
func (b *Builder) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.index != nil {
		return b.index.Close()
	}
	return nil
}
