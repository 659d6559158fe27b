package storage

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

// newTestDB opens a migrated database in a temporary directory.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})

	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}
	return db
}

func TestNew(t *testing.T) {
	tmpDir := t.TempDir()
	blocker := filepath.Join(tmpDir, "file")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{
			name:    "valid path",
			path:    filepath.Join(tmpDir, "test.db"),
			wantErr: false,
		},
		{
			name:    "missing parent directory is created",
			path:    filepath.Join(tmpDir, "a", "b", "test.db"),
			wantErr: false,
		},
		{
			name:    "parent is a file",
			path:    filepath.Join(blocker, "test.db"),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, err := New(tt.path)

			if tt.wantErr {
				if err == nil {
					t.Errorf("New() expected error, got nil")
				}
				if db != nil {
					_ = db.Close()
				}
				return
			}

			if err != nil {
				t.Errorf("New() unexpected error: %v", err)
				return
			}

			if db.Stats().MaxOpenConnections != 1 {
				t.Errorf("New() MaxOpenConnections = %v, want 1", db.Stats().MaxOpenConnections)
			}

			_ = db.Close()
		})
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	db := newTestDB(t)

	if err := Migrate(db); err != nil {
		t.Fatalf("second Migrate() error = %v", err)
	}

	for _, table := range []string{"knowledge_bases", "documents"} {
		var name string
		err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		if err != nil {
			t.Errorf("table %s not created: %v", table, err)
		}
	}
}

func TestSQLiteStore_LoadEmpty(t *testing.T) {
	store := NewSQLiteStore(newTestDB(t))

	snap, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if snap.KnowledgeBases == nil || snap.Documents == nil {
		t.Error("Load() should return non-nil slices")
	}
	if len(snap.KnowledgeBases) != 0 || len(snap.Documents) != 0 {
		t.Errorf("Load() = %+v, want empty snapshot", snap)
	}
}

func TestSQLiteStore_RoundTrip(t *testing.T) {
	store := NewSQLiteStore(newTestDB(t))
	ctx := context.Background()

	if err := store.Save(ctx, sampleSnapshot()); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if want := sampleSnapshot(); !reflect.DeepEqual(got, want) {
		t.Errorf("Load() after Save() = %+v, want %+v", got, want)
	}
}

func TestSQLiteStore_SaveReplacesAndKeepsOrder(t *testing.T) {
	store := NewSQLiteStore(newTestDB(t))
	ctx := context.Background()

	if err := store.Save(ctx, sampleSnapshot()); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	next := sampleSnapshot()
	// Reverse order and drop the document.
	next.KnowledgeBases[0], next.KnowledgeBases[1] = next.KnowledgeBases[1], next.KnowledgeBases[0]
	next.Documents = nil
	if err := store.Save(ctx, next); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(got.Documents) != 0 {
		t.Errorf("Load() documents = %d, want 0", len(got.Documents))
	}
	if len(got.KnowledgeBases) != 2 || got.KnowledgeBases[0].ID != "kb-2" || got.KnowledgeBases[1].ID != "kb-1" {
		t.Errorf("Load() knowledge base order = %+v, want kb-2, kb-1", got.KnowledgeBases)
	}
}

func TestSQLiteStore_LoadCorruptChunks(t *testing.T) {
	db := newTestDB(t)
	_, err := db.Exec(
		`INSERT INTO documents (position, id, kb_id, path, title, content, chunks, metadata, created_at)
		 VALUES (0, 'd', 'k', 'p', 't', 'c', '{broken', '{}', '2024-01-01T00:00:00Z')`,
	)
	if err != nil {
		t.Fatalf("insert error = %v", err)
	}

	_, err = NewSQLiteStore(db).Load(context.Background())
	if err == nil {
		t.Fatal("Load() expected error, got nil")
	}
}
