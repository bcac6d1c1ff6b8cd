// Package server exposes the search and file access operations as MCP tools
// over stdio. Each tool returns a plain-text report; failures from the error
// taxonomy (missing root, bad query syntax, missing files) come back as tool
// errors with the same wording regardless of which tool hit them.
package server

import (
	"context"
	"errors"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/hyperjump/kensaku/internal/config"
	"github.com/hyperjump/kensaku/internal/extract"
	"github.com/hyperjump/kensaku/internal/fileops"
	"github.com/hyperjump/kensaku/internal/index"
	"github.com/hyperjump/kensaku/internal/pathres"
	"github.com/hyperjump/kensaku/internal/search"
	"github.com/hyperjump/kensaku/internal/watcher"
)

// Version is advertised to MCP clients for capability negotiation.
const Version = "1.0.0"

// Server wires the index, search and file operations behind the MCP tool
// surface. The index builds lazily on the first search, never at startup.
type Server struct {
	cfg      *config.Config
	resolver *pathres.Resolver
	builder  *index.Builder
	executor *search.Executor
	files    *fileops.Service
	watch    *watcher.Watcher
	logger   *zap.Logger
}

// New creates a server rooted at root. The root is not required to exist yet;
// a missing root surfaces as "Path not found" on the first search instead.
func New(root string, cfg *config.Config, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	resolver := pathres.New(root, cfg.Display.AbsolutePaths)
	builder := index.NewBuilder(resolver, &cfg.Search, extract.NewExtractor(), index.WithLogger(logger))
	s := &Server{
		cfg:      cfg,
		resolver: resolver,
		builder:  builder,
		executor: search.NewExecutor(builder, &cfg.Search, logger),
		files:    fileops.NewService(resolver, &cfg.Read),
		logger:   logger,
	}
	s.watch = watcher.NewWatcher(root, builder.MarkStale, watcher.WithLogger(logger))
	return s
}

// Serve runs the MCP server over stdio until the client disconnects or ctx
// is cancelled. Logging goes to stderr; stdout carries JSON-RPC only.
func (s *Server) Serve(ctx context.Context) error {
	if err := s.watch.Start(ctx); err != nil {
		// The root may not exist yet; searches report that themselves.
		s.logger.Warn("file watcher unavailable", zap.Error(err))
	}
	defer s.watch.Stop()
	defer func() { _ = s.builder.Close() }()

	mcpServer := server.NewMCPServer(
		"kensaku",
		Version,
		server.WithToolCapabilities(true),
	)
	s.registerTools(mcpServer)

	s.logger.Info("mcp server ready",
		zap.String("version", Version),
		zap.String("root", s.resolver.Root()),
		zap.String("transport", "stdio"),
	)
	err := server.ServeStdio(mcpServer)
	if errors.Is(err, context.Canceled) {
		s.logger.Info("server stopped")
		return nil
	}
	return err
}

func (s *Server) registerTools(m *server.MCPServer) {
	m.AddTool(
		mcp.NewTool("search",
			mcp.WithDescription("Full-text search over the indexed directory. Bare terms tolerate typos and match prefixes; quotes, AND/OR/NOT, parentheses, term~N and term* are passed through as written."),
			mcp.WithString("query", mcp.Required(), mcp.Description("Search query")),
			mcp.WithString("glob_pattern", mcp.Description("Glob filter on file paths, e.g. '*.txt' or 'docs/**' (default '*')")),
			mcp.WithNumber("skip", mcp.Description("Number of ranked hits to skip (default 0)")),
			mcp.WithNumber("limit", mcp.Description("Maximum hits to return (default 10)")),
			mcp.WithBoolean("absolute_paths", mcp.Description("Display absolute paths instead of root-relative ones")),
		),
		s.handleSearch,
	)
	m.AddTool(
		mcp.NewTool("search_structured",
			mcp.WithDescription("Full-text search taking the query exactly as written: no fuzzy or prefix rewriting is applied to bare terms."),
			mcp.WithString("query", mcp.Required(), mcp.Description("Structured search query")),
			mcp.WithString("glob_pattern", mcp.Description("Glob filter on file paths (default '*')")),
			mcp.WithNumber("skip", mcp.Description("Number of ranked hits to skip (default 0)")),
			mcp.WithNumber("limit", mcp.Description("Maximum hits to return (default 10)")),
			mcp.WithBoolean("absolute_paths", mcp.Description("Display absolute paths instead of root-relative ones")),
		),
		s.handleSearchStructured,
	)
	m.AddTool(
		mcp.NewTool("read_file_chunk",
			mcp.WithDescription("Read a window of a file around a character offset, typically one reported by search."),
			mcp.WithString("file_path", mcp.Required(), mcp.Description("File path relative to the root")),
			mcp.WithNumber("char_offset", mcp.Required(), mcp.Description("Character offset in the decoded file")),
			mcp.WithBoolean("absolute_paths", mcp.Description("Display absolute paths instead of root-relative ones")),
		),
		s.handleReadFileChunk,
	)
	m.AddTool(
		mcp.NewTool("list_directory_contents",
			mcp.WithDescription("List files and folders in a directory under the root."),
			mcp.WithString("path", mcp.Description("Directory path relative to the root (empty or '/' for the root)")),
			mcp.WithBoolean("absolute_paths", mcp.Description("Display absolute paths instead of root-relative ones")),
		),
		s.handleListDirectory,
	)
	m.AddTool(
		mcp.NewTool("index_status",
			mcp.WithDescription("Report the index build state, document counts and whether files changed since the index was built."),
		),
		s.handleIndexStatus,
	)
}
