package server

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"

	"github.com/hyperjump/kensaku/internal/fileops"
	"github.com/hyperjump/kensaku/internal/index"
	"github.com/hyperjump/kensaku/internal/querylang"
	"github.com/hyperjump/kensaku/internal/search"
	"github.com/hyperjump/kensaku/pkg/utils"
)

// maxLoggedQuery caps how much of a query ends up in log entries.
const maxLoggedQuery = 200

func (s *Server) handleSearch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.runSearch(ctx, req, "search", s.executor.Search)
}

func (s *Server) handleSearchStructured(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.runSearch(ctx, req, "search_structured", s.executor.SearchStructured)
}

func (s *Server) runSearch(
	ctx context.Context,
	req mcp.CallToolRequest,
	tool string,
	exec func(ctx context.Context, query, globPattern string, skip, limit int) (*search.Page, error),
) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query is required"), nil
	}
	globPattern := getString(req, "glob_pattern", "*")
	skip := getInt(req, "skip", 0)
	limit := getInt(req, "limit", 0)
	absOverride := getOptionalBool(req, "absolute_paths")

	log := s.logger.With(zap.String("request_id", uuid.NewString()), zap.String("tool", tool))
	page, err := exec(ctx, query, globPattern, skip, limit)
	if err != nil {
		log.Warn("search failed", zap.String("query", utils.TruncateRunes(query, maxLoggedQuery)), zap.Error(err))
		switch {
		case errors.Is(err, index.ErrRootNotFound):
			return mcp.NewToolResultError("Path not found: " + s.resolver.Root()), nil
		case errors.Is(err, querylang.ErrSyntax):
			return mcp.NewToolResultError("Invalid query syntax: " + query), nil
		default:
			return mcp.NewToolResultError(err.Error()), nil
		}
	}
	log.Debug("search served",
		zap.String("query", utils.TruncateRunes(query, maxLoggedQuery)),
		zap.Int("total", page.TotalCount),
		zap.Int("returned", len(page.Hits)),
	)
	return mcp.NewToolResultText(search.FormatPage(page, s.resolver, absOverride)), nil
}

func (s *Server) handleReadFileChunk(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	filePath, err := req.RequireString("file_path")
	if err != nil {
		return mcp.NewToolResultError("file_path is required"), nil
	}
	offset := getInt(req, "char_offset", 0)
	absOverride := getOptionalBool(req, "absolute_paths")

	log := s.logger.With(zap.String("request_id", uuid.NewString()), zap.String("tool", "read_file_chunk"))
	out, err := s.files.ReadChunk(filePath, offset, absOverride)
	if err != nil {
		log.Warn("read failed", zap.String("path", filePath), zap.Error(err))
		if errors.Is(err, fileops.ErrFileNotFound) {
			return mcp.NewToolResultError("File not found: " + filePath), nil
		}
		return mcp.NewToolResultError("Error reading file: " + err.Error()), nil
	}
	log.Debug("chunk served", zap.String("path", filePath), zap.Int("offset", offset))
	return mcp.NewToolResultText(out), nil
}

func (s *Server) handleListDirectory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	dirPath := getString(req, "path", "")
	absOverride := getOptionalBool(req, "absolute_paths")
	shown := dirPath
	if shown == "" {
		shown = "/"
	}

	log := s.logger.With(zap.String("request_id", uuid.NewString()), zap.String("tool", "list_directory_contents"))
	out, err := s.files.ListDirectory(dirPath, absOverride)
	if err != nil {
		log.Warn("list failed", zap.String("path", shown), zap.Error(err))
		switch {
		case errors.Is(err, fileops.ErrDirNotFound):
			return mcp.NewToolResultError("Directory not found: " + shown), nil
		case errors.Is(err, fileops.ErrNotDirectory):
			return mcp.NewToolResultError("Not a directory: " + shown), nil
		default:
			return mcp.NewToolResultError("Error listing directory: " + err.Error()), nil
		}
	}
	log.Debug("listing served", zap.String("path", shown))
	return mcp.NewToolResultText(out), nil
}

func (s *Server) handleIndexStatus(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	state := s.builder.State()
	stats := s.builder.Stats()

	var sb strings.Builder
	fmt.Fprintf(&sb, "Root: %s\n", s.resolver.Root())
	fmt.Fprintf(&sb, "State: %s\n", state)
	fmt.Fprintf(&sb, "Files: %d\n", stats.Files)
	fmt.Fprintf(&sb, "Chunks: %d\n", stats.Chunks)
	if state == index.StateReady {
		fmt.Fprintf(&sb, "Built at: %s\n", stats.BuiltAt.Format(time.RFC3339))
	}
	fmt.Fprintf(&sb, "Stale: %t", s.builder.Stale())
	return mcp.NewToolResultText(sb.String()), nil
}

// getString extracts an optional string parameter, returning def when the
// parameter is missing or not a string. Tool parameters from LLM clients are
// extracted permissively so a missing optional never fails the call.
func getString(req mcp.CallToolRequest, name, def string) string {
	if v, err := req.RequireString(name); err == nil {
		return v
	}
	return def
}

// getInt extracts an optional integer parameter. JSON numbers decode as
// float64, so the assertion goes through float64 first.
func getInt(req mcp.CallToolRequest, name string, def int) int {
	args, ok := req.Params.Arguments.(map[string]any)
	if !ok {
		return def
	}
	if v, ok := args[name].(float64); ok {
		return int(v)
	}
	return def
}

// getOptionalBool extracts a boolean parameter, distinguishing "absent" (nil)
// from an explicit true or false so per-call overrides only apply when the
// caller actually set them.
func getOptionalBool(req mcp.CallToolRequest, name string) *bool {
	args, ok := req.Params.Arguments.(map[string]any)
	if !ok {
		return nil
	}
	if v, ok := args[name].(bool); ok {
		return &v
	}
	return nil
}
