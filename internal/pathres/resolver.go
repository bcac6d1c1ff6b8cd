// Package pathres resolves caller-supplied paths against the server root and
// produces canonical display paths. Pure path arithmetic: nothing here touches
// the filesystem, existence checks belong to the consuming I/O operations.
package pathres

import (
	"path/filepath"
	"strings"

	"github.com/hyperjump/kensaku/internal/config"
)

// Resolver maps caller paths to filesystem paths under a fixed root and
// formats display paths. The root is immutable for the process lifetime.
type Resolver struct {
	root            string
	absoluteDefault bool
}

// New creates a resolver scoped to root. absoluteDefault selects the
// server-wide display mode: full filesystem paths instead of root-relative.
func New(root string, absoluteDefault bool) *Resolver {
	return &Resolver{root: filepath.Clean(root), absoluteDefault: absoluteDefault}
}

// Root returns the root directory the resolver is scoped to.
func (r *Resolver) Root() string {
	return r.root
}

// Resolve returns the filesystem path for a caller path. A "/"-prefixed path
// is the display form: it loses its single leading "/" and joins the root.
// Paths already equal to or under the root (as produced by absolute display
// mode) and non-slash absolute forms like Windows drive paths pass through.
func (r *Resolver) Resolve(callerPath string) string {
	if filepath.IsAbs(callerPath) {
		clean := filepath.Clean(callerPath)
		if clean == r.root || strings.HasPrefix(clean, r.root+string(filepath.Separator)) {
			return clean
		}
		if !strings.HasPrefix(callerPath, "/") {
			return clean
		}
	}
	trimmed := strings.TrimPrefix(callerPath, "/")
	if trimmed == "" {
		return r.root
	}
	return filepath.Join(r.root, trimmed)
}

// Canonical returns the root-relative display form regardless of the
// configured display mode. The index stores this form; absolute rendering
// happens when results are formatted.
func (r *Resolver) Canonical(fsPath string) string {
	relative := false
	return r.Display(fsPath, &relative)
}

// Absolute converts a canonical root-relative display path back to the full
// filesystem path, rendered with forward slashes.
func (r *Resolver) Absolute(displayPath string) string {
	return filepath.ToSlash(filepath.Join(r.root, strings.TrimPrefix(displayPath, "/")))
}

// Display returns the canonical display form for a filesystem path.
// Root-relative mode renders "/" + path relative to root with forward slashes;
// absolute mode renders the full path with forward slashes. absOverride, when
// non-nil, overrides the server default for this call.
func (r *Resolver) Display(fsPath string, absOverride *bool) string {
	if config.ResolveBool(absOverride, r.absoluteDefault) {
		return filepath.ToSlash(filepath.Clean(fsPath))
	}
	rel, err := filepath.Rel(r.root, fsPath)
	if err != nil || strings.HasPrefix(rel, "..") {
		// Not under the root: the relative form would be meaningless.
		return filepath.ToSlash(filepath.Clean(fsPath))
	}
	if rel == "." {
		return "/"
	}
	return "/" + filepath.ToSlash(rel)
}
