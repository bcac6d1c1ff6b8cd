package fileops

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ListDirectory renders the contents of the directory at callerPath:
// folders first, then files with their byte sizes, each group sorted
// case-insensitively by name, followed by a total count. An empty caller
// path or "/" lists the root.
func (s *Service) ListDirectory(callerPath string, absOverride *bool) (string, error) {
	fsPath := s.resolver.Resolve(callerPath)
	info, err := os.Stat(fsPath)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrDirNotFound, displayOrRoot(callerPath))
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrNotDirectory, displayOrRoot(callerPath))
	}
	entries, err := os.ReadDir(fsPath)
	if err != nil {
		return "", fmt.Errorf("failed to list %s: %w", callerPath, err)
	}

	var folders, files []string
	for _, entry := range entries {
		display := s.resolver.Display(filepath.Join(fsPath, entry.Name()), absOverride)
		if entry.IsDir() {
			folders = append(folders, display+"/")
			continue
		}
		finfo, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, fmt.Sprintf("%s (%d bytes)", display, finfo.Size()))
	}
	sortFold(folders)
	sortFold(files)

	var sb strings.Builder
	fmt.Fprintf(&sb, "Directory: %s\n\n", s.resolver.Display(fsPath, absOverride))
	if len(folders) > 0 {
		sb.WriteString("Folders:\n")
		for _, f := range folders {
			fmt.Fprintf(&sb, "  %s\n", f)
		}
		sb.WriteString("\n")
	}
	if len(files) > 0 {
		sb.WriteString("Files:\n")
		for _, f := range files {
			fmt.Fprintf(&sb, "  %s\n", f)
		}
	}
	if len(folders) == 0 && len(files) == 0 {
		sb.WriteString("(empty directory)\n")
	}
	fmt.Fprintf(&sb, "\nTotal: %d folders, %d files", len(folders), len(files))
	return sb.String(), nil
}

func sortFold(items []string) {
	sort.Slice(items, func(i, j int) bool {
		return strings.ToLower(items[i]) < strings.ToLower(items[j])
	})
}

func displayOrRoot(callerPath string) string {
	if callerPath == "" {
		return "/"
	}
	return callerPath
}
