package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// SQLiteStore keeps the snapshot in SQLite tables.
// Every Save rewrites both tables inside one transaction, so it offers the
// same whole-snapshot semantics as JSONFileStore.
// It implements the SnapshotStore interface.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLiteStore. The schema must already exist (see Migrate).
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Load reads both tables in insertion order.
func (s *SQLiteStore) Load(ctx context.Context) (*Snapshot, error) {
	snap := &Snapshot{}

	kbRows, err := s.db.QueryContext(ctx,
		"SELECT id, name, description, created_at, updated_at, document_count FROM knowledge_bases ORDER BY position",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query knowledge bases: %w", err)
	}
	defer func() {
		_ = kbRows.Close()
	}()

	for kbRows.Next() {
		var kb KnowledgeBase
		var createdAt, updatedAt string
		if err := kbRows.Scan(&kb.ID, &kb.Name, &kb.Description, &createdAt, &updatedAt, &kb.DocumentCount); err != nil {
			return nil, fmt.Errorf("failed to scan knowledge base: %w", err)
		}
		if kb.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}
		if kb.UpdatedAt, err = parseTime(updatedAt); err != nil {
			return nil, err
		}
		snap.KnowledgeBases = append(snap.KnowledgeBases, kb)
	}
	if err := kbRows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	docRows, err := s.db.QueryContext(ctx,
		"SELECT id, kb_id, path, title, content, chunks, metadata, created_at FROM documents ORDER BY position",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer func() {
		_ = docRows.Close()
	}()

	for docRows.Next() {
		var doc Document
		var chunks, metadata, createdAt string
		if err := docRows.Scan(&doc.ID, &doc.KBID, &doc.Path, &doc.Title, &doc.Content, &chunks, &metadata, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		if err := json.Unmarshal([]byte(chunks), &doc.Chunks); err != nil {
			return nil, fmt.Errorf("%w: chunks of document %s: %v", ErrCorrupt, doc.ID, err)
		}
		if err := json.Unmarshal([]byte(metadata), &doc.Metadata); err != nil {
			return nil, fmt.Errorf("%w: metadata of document %s: %v", ErrCorrupt, doc.ID, err)
		}
		if doc.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}
		snap.Documents = append(snap.Documents, doc)
	}
	if err := docRows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	normalize(snap)
	return snap, nil
}

// Save replaces the contents of both tables with the snapshot.
func (s *SQLiteStore) Save(ctx context.Context, snap *Snapshot) (err error) {
	normalize(snap)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, "DELETE FROM documents"); err != nil {
		return fmt.Errorf("failed to clear documents: %w", err)
	}
	if _, err = tx.ExecContext(ctx, "DELETE FROM knowledge_bases"); err != nil {
		return fmt.Errorf("failed to clear knowledge bases: %w", err)
	}

	for i, kb := range snap.KnowledgeBases {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO knowledge_bases (position, id, name, description, created_at, updated_at, document_count)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			i, kb.ID, kb.Name, kb.Description, formatTime(kb.CreatedAt), formatTime(kb.UpdatedAt), kb.DocumentCount,
		)
		if err != nil {
			return fmt.Errorf("failed to insert knowledge base %s: %w", kb.ID, err)
		}
	}

	for i, doc := range snap.Documents {
		var chunks, metadata []byte
		if chunks, err = json.Marshal(doc.Chunks); err != nil {
			return fmt.Errorf("failed to encode chunks: %w", err)
		}
		if metadata, err = json.Marshal(doc.Metadata); err != nil {
			return fmt.Errorf("failed to encode metadata: %w", err)
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO documents (position, id, kb_id, path, title, content, chunks, metadata, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			i, doc.ID, doc.KBID, doc.Path, doc.Title, doc.Content, string(chunks), string(metadata), formatTime(doc.CreatedAt),
		)
		if err != nil {
			return fmt.Errorf("failed to insert document %s: %w", doc.ID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit snapshot: %w", err)
	}
	return nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: timestamp %q: %v", ErrCorrupt, s, err)
	}
	return t, nil
}
