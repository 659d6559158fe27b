package vault

import (
	"context"
	"fmt"
	"os"

	"mdkb/internal/contextutil"
	"mdkb/internal/storage"
)

// DocumentImporter imports files into a knowledge base.
// This interface is defined from the vault package's perspective (consumer-first).
type DocumentImporter interface {
	ImportDocument(ctx context.Context, kbID, path string) (storage.Document, error)
	ImportDocuments(ctx context.Context, kbID string, paths []string) []storage.Document
}

// ImportResult reports a batch import.
type ImportResult struct {
	// Requested is the number of files that were attempted.
	Requested int
	// Documents holds the successful imports in input order.
	Documents []storage.Document
}

// Failed returns the number of files that could not be imported.
func (r ImportResult) Failed() int {
	return r.Requested - len(r.Documents)
}

// Manager imports files and directory trees into knowledge bases.
type Manager struct {
	importer DocumentImporter
	scanner  *Scanner
}

// NewManager creates a manager that selects files with scanner and imports them through importer.
func NewManager(importer DocumentImporter, scanner *Scanner) *Manager {
	return &Manager{
		importer: importer,
		scanner:  scanner,
	}
}

// Expand replaces every directory in paths with the matching files found under it.
// Other paths, including ones that do not exist, are kept as given so that the
// importer reports them.
func (m *Manager) Expand(ctx context.Context, paths []string) ([]string, error) {
	logger := contextutil.LoggerFromContext(ctx)

	var out []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil || !info.IsDir() {
			out = append(out, p)
			continue
		}

		files, err := m.scanner.Scan(ctx, p)
		if err != nil {
			return nil, fmt.Errorf("failed to scan directory: %w", err)
		}
		logger.InfoContext(ctx, "scanned directory", "root", p, "files", len(files))
		for _, f := range files {
			out = append(out, f.AbsPath)
		}
	}
	return out, nil
}

// ImportPaths expands paths and batch imports the result into kbID.
// Per-file failures are logged by the importer and skipped.
func (m *Manager) ImportPaths(ctx context.Context, kbID string, paths []string) (ImportResult, error) {
	files, err := m.Expand(ctx, paths)
	if err != nil {
		return ImportResult{}, err
	}
	return ImportResult{
		Requested: len(files),
		Documents: m.importer.ImportDocuments(ctx, kbID, files),
	}, nil
}

// Watch imports files created under root until ctx is cancelled.
func (m *Manager) Watch(ctx context.Context, kbID, root string) error {
	return NewWatcher(m.importer, m.scanner, kbID, root).Run(ctx)
}
