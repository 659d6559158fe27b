package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// JSONFileStore keeps the snapshot in a single pretty-printed JSON file.
// It implements the SnapshotStore interface.
type JSONFileStore struct {
	path string
}

// NewJSONFileStore creates a store backed by the file at path.
// The file is created lazily on the first Save.
func NewJSONFileStore(path string) *JSONFileStore {
	return &JSONFileStore{path: path}
}

// Path returns the location of the backing file.
func (s *JSONFileStore) Path() string {
	return s.path
}

// Load reads and decodes the snapshot file.
// A missing file is treated as an empty dataset.
func (s *JSONFileStore) Load(ctx context.Context) (*Snapshot, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		snap := &Snapshot{}
		normalize(snap)
		return snap, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read store %s: %w", s.path, err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, s.path, err)
	}
	normalize(&snap)

	return &snap, nil
}

// Save encodes the snapshot and replaces the backing file.
// The data is written to a temporary file in the same directory and renamed
// over the target so a failed write never leaves a truncated store behind.
func (s *JSONFileStore) Save(ctx context.Context, snap *Snapshot) error {
	normalize(snap)

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode store: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		// No-op once the rename succeeded.
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write store: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to sync store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close store: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("failed to replace store %s: %w", s.path, err)
	}

	return nil
}
