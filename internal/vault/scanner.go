package vault

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"
)

// ScannedFile represents a markdown file found during directory scanning.
type ScannedFile struct {
	RelPath string // Relative path from the scan root (e.g., "projects/meeting-notes.md")
	Folder  string // Folder path (path components except filename, e.g., "projects")
	AbsPath string // Absolute file path
}

// Scanner finds files under a directory that match a set of glob patterns.
// Patterns use '/' as separator; a pattern without '/' is matched against the
// file name only, so "*.md" selects markdown files at any depth.
type Scanner struct {
	patterns []glob.Glob
	raw      []string
}

// NewScanner compiles the include patterns.
func NewScanner(patterns []string) (*Scanner, error) {
	if len(patterns) == 0 {
		return nil, fmt.Errorf("at least one pattern is required")
	}

	s := &Scanner{raw: patterns}
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid pattern '%s': %w", pattern, err)
		}
		s.patterns = append(s.patterns, g)
	}
	return s, nil
}

// Patterns returns the patterns the scanner was built from.
func (s *Scanner) Patterns() []string {
	return s.raw
}

// Match reports whether relPath (slash separated, relative to the scan root) is included.
func (s *Scanner) Match(relPath string) bool {
	relPath = filepath.ToSlash(relPath)
	name := path.Base(relPath)
	for i, g := range s.patterns {
		target := relPath
		if !strings.Contains(s.raw[i], "/") {
			target = name
		}
		if g.Match(target) {
			return true
		}
	}
	return false
}

// Scan walks root and returns matching files sorted by relative path.
// Hidden directories and files (name starting with '.') are skipped.
func (s *Scanner) Scan(ctx context.Context, root string) ([]ScannedFile, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", root, err)
	}

	var scannedFiles []ScannedFile
	err = filepath.WalkDir(absRoot, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("failed to access path %s: %w", p, err)
		}

		// Check for context cancellation
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if p == absRoot {
			if !d.IsDir() {
				return fmt.Errorf("%s is not a directory", root)
			}
			return nil
		}

		if isHidden(d.Name()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}

		relPath, err := filepath.Rel(absRoot, p)
		if err != nil {
			return fmt.Errorf("failed to compute relative path for %s: %w", p, err)
		}
		relPath = filepath.ToSlash(relPath)
		if !s.Match(relPath) {
			return nil
		}

		scannedFiles = append(scannedFiles, ScannedFile{
			RelPath: relPath,
			Folder:  folderOf(relPath),
			AbsPath: p,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", root, err)
	}

	sort.Slice(scannedFiles, func(i, j int) bool {
		return scannedFiles[i].RelPath < scannedFiles[j].RelPath
	})
	return scannedFiles, nil
}

// folderOf returns the directory part of a slash separated relative path, "" at the root.
func folderOf(relPath string) string {
	folder := path.Dir(relPath)
	if folder == "." {
		return ""
	}
	return folder
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}

// hiddenRel reports whether any component of a relative path is hidden.
func hiddenRel(relPath string) bool {
	for _, part := range strings.Split(filepath.ToSlash(relPath), "/") {
		if isHidden(part) {
			return true
		}
	}
	return false
}
