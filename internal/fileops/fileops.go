// Package fileops implements the direct file access operations: reading a
// character window out of a file and listing a directory. Both render the
// same plain-text reports the search tools do, with display paths resolved
// through the shared resolver.
package fileops

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/hyperjump/kensaku/internal/config"
	"github.com/hyperjump/kensaku/internal/extract"
	"github.com/hyperjump/kensaku/internal/pathres"
)

var (
	// ErrFileNotFound reports that the requested file does not exist or is
	// not a regular file.
	ErrFileNotFound = errors.New("file not found")
	// ErrDirNotFound reports that the requested directory does not exist.
	ErrDirNotFound = errors.New("directory not found")
	// ErrNotDirectory reports that the requested path exists but is a file.
	ErrNotDirectory = errors.New("not a directory")
)

// Service performs filesystem reads scoped to the resolver's root.
type Service struct {
	resolver *pathres.Resolver
	cfg      *config.ReadConfig
}

// NewService creates a file operations service.
func NewService(resolver *pathres.Resolver, cfg *config.ReadConfig) *Service {
	return &Service{resolver: resolver, cfg: cfg}
}

// ReadChunk reads a window of decoded characters around offset from the file
// at callerPath: CharsBefore characters before the offset and CharsAfter
// after it, both clipped to the file bounds. Offsets are measured in decoded
// characters, the same unit search hits report.
func (s *Service) ReadChunk(callerPath string, offset int, absOverride *bool) (string, error) {
	fsPath := s.resolver.Resolve(callerPath)
	info, err := os.Stat(fsPath)
	if err != nil || !info.Mode().IsRegular() {
		return "", fmt.Errorf("%w: %s", ErrFileNotFound, callerPath)
	}
	raw, err := os.ReadFile(fsPath)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", callerPath, err)
	}

	runes := []rune(extract.DecodeLossy(raw))
	total := len(runes)
	if offset < 0 {
		offset = 0
	}
	start := offset - s.cfg.CharsBefore
	if start < 0 {
		start = 0
	}
	if start > total {
		start = total
	}
	end := offset + s.cfg.CharsAfter
	if end > total {
		end = total
	}
	if end < start {
		end = start
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "File: %s\n", s.resolver.Display(fsPath, absOverride))
	fmt.Fprintf(&sb, "Range: %d-%d (offset %d) [Max: 0-%d]\n", start, end, offset, total)
	fmt.Fprintf(&sb, "Context:\n%s\n\n\n", string(runes[start:end]))
	return sb.String(), nil
}
