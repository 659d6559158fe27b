package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

// sampleSnapshot returns a snapshot exercising every field.
func sampleSnapshot() *Snapshot {
	created := time.Date(2024, 3, 1, 10, 0, 0, 123456789, time.UTC)
	updated := created.Add(time.Hour)

	return &Snapshot{
		KnowledgeBases: []KnowledgeBase{
			{ID: "kb-1", Name: "Notes", Description: "personal notes", CreatedAt: created, UpdatedAt: updated, DocumentCount: 1},
			{ID: "kb-2", Name: "Empty", CreatedAt: created, UpdatedAt: created},
		},
		Documents: []Document{
			{
				ID:      "doc-1",
				KBID:    "kb-1",
				Path:    "/tmp/intro.md",
				Title:   "Intro",
				Content: "# Intro\nhello",
				Chunks: []Chunk{
					{ID: "c-1", Content: "# Intro\nhello", StartLine: 0, EndLine: 1, Headings: []string{"Intro"}},
				},
				Metadata: DocumentMetadata{
					WordCount: 11,
					LineCount: 2,
					Headings:  []HeadingInfo{{Level: 1, Text: "Intro", Line: 0}},
					Keywords:  []string{"go"},
				},
				CreatedAt: created,
			},
		},
	}
}

func TestJSONFileStore_LoadMissingFile(t *testing.T) {
	store := NewJSONFileStore(filepath.Join(t.TempDir(), "kb_data.json"))

	snap, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(snap.KnowledgeBases) != 0 || len(snap.Documents) != 0 {
		t.Errorf("Load() = %+v, want empty snapshot", snap)
	}
	if _, err := os.Stat(store.Path()); !os.IsNotExist(err) {
		t.Errorf("Load() should not create the store file, stat err = %v", err)
	}
}

func TestJSONFileStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "kb_data.json")
	store := NewJSONFileStore(path)
	ctx := context.Background()

	want := sampleSnapshot()
	if err := store.Save(ctx, sampleSnapshot()); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	// Fresh instance, as a new process would do.
	got, err := NewJSONFileStore(path).Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("Load() after Save() = %+v, want %+v", got, want)
	}
}

func TestJSONFileStore_SaveFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kb_data.json")
	store := NewJSONFileStore(path)

	if err := store.Save(context.Background(), &Snapshot{}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	text := string(data)

	if !strings.Contains(text, "\n  \"knowledgeBases\": []") {
		t.Errorf("Save() output not pretty-printed with empty arrays: %s", text)
	}
	if !strings.Contains(text, "\"documents\": []") {
		t.Errorf("Save() output missing documents array: %s", text)
	}
}

func TestJSONFileStore_SaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	store := NewJSONFileStore(filepath.Join(dir, "kb_data.json"))

	for i := 0; i < 3; i++ {
		if err := store.Save(context.Background(), sampleSnapshot()); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "kb_data.json" {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("directory contents = %v, want only kb_data.json", names)
	}
}

func TestJSONFileStore_LoadCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kb_data.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	_, err := NewJSONFileStore(path).Load(context.Background())
	if !errors.Is(err, ErrCorrupt) {
		t.Errorf("Load() error = %v, want ErrCorrupt", err)
	}
}

func TestJSONFileStore_LoadNullArrays(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kb_data.json")
	content := `{"knowledgeBases": null, "documents": [{"id": "d", "kbId": "k", "chunks": null, "metadata": {}}]}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	snap, err := NewJSONFileStore(path).Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if snap.KnowledgeBases == nil {
		t.Error("Load() KnowledgeBases should be non-nil")
	}
	if snap.Documents[0].Chunks == nil || snap.Documents[0].Metadata.Headings == nil {
		t.Error("Load() document slices should be non-nil")
	}
}

func TestJSONFileStore_SaveUnwritable(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	// Parent of the store path is a regular file.
	store := NewJSONFileStore(filepath.Join(blocker, "kb_data.json"))
	if err := store.Save(context.Background(), sampleSnapshot()); err == nil {
		t.Error("Save() expected error for unwritable location, got nil")
	}
}
