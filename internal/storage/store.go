package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_snapshot_store.go -package=mocks mdkb/internal/storage SnapshotStore

import (
	"context"
	"errors"
)

var (
	// ErrCorrupt is returned when the persisted snapshot cannot be decoded.
	// The store is not repaired automatically.
	ErrCorrupt = errors.New("corrupt store data")
)

// SnapshotStore loads and saves the whole dataset at once.
// Callers follow a read-modify-write pattern; implementations do not lock,
// so concurrent writers may lose updates.
type SnapshotStore interface {
	// Load returns the persisted snapshot. A store that was never written
	// yields an empty snapshot and no error.
	Load(ctx context.Context) (*Snapshot, error)
	// Save replaces the persisted snapshot.
	Save(ctx context.Context, snap *Snapshot) error
}

// normalize replaces nil slices with empty ones so that encoded snapshots
// always carry arrays rather than nulls.
func normalize(snap *Snapshot) {
	if snap.KnowledgeBases == nil {
		snap.KnowledgeBases = []KnowledgeBase{}
	}
	if snap.Documents == nil {
		snap.Documents = []Document{}
	}
	for i := range snap.Documents {
		doc := &snap.Documents[i]
		if doc.Chunks == nil {
			doc.Chunks = []Chunk{}
		}
		if doc.Metadata.Headings == nil {
			doc.Metadata.Headings = []HeadingInfo{}
		}
		for j := range doc.Chunks {
			if doc.Chunks[j].Headings == nil {
				doc.Chunks[j].Headings = []string{}
			}
		}
	}
}
