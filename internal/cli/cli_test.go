package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mdkb/internal/config"
	"mdkb/internal/indexer"
	"mdkb/internal/service"
	"mdkb/internal/storage"
)

func init() {
	color.NoColor = true
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// testLoader returns a loader backed by a JSON store in a temporary directory.
func testLoader(t *testing.T) EnvLoader {
	t.Helper()
	cfg := &config.Config{
		DataDir:       t.TempDir(),
		StoreBackend:  config.BackendJSON,
		APIPort:       "0",
		LogLevel:      slog.LevelInfo,
		LogFormat:     "text",
		WatchPatterns: []string{"*.md"},
	}
	cfg.StorePath = filepath.Join(cfg.DataDir, "kb_data.json")

	return func() (*Env, error) {
		store, closeFn, err := OpenStore(cfg)
		if err != nil {
			return nil, err
		}
		return &Env{
			Config:  cfg,
			Store:   store,
			Service: service.NewKnowledgeBaseService(store, indexer.NewImporter(indexer.OSReader{})),
			Close:   closeFn,
		}, nil
	}
}

func execute(ctx context.Context, load EnvLoader, args ...string) (string, error) {
	buf := new(bytes.Buffer)
	root := NewRootCmd(load)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	return buf.String(), err
}

func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func createKB(t *testing.T, load EnvLoader, name string) storage.KnowledgeBase {
	t.Helper()
	out, err := execute(context.Background(), load, "--json", "kb", "create", name)
	require.NoError(t, err)

	var kb storage.KnowledgeBase
	require.NoError(t, json.Unmarshal([]byte(out), &kb))
	require.NotEmpty(t, kb.ID)
	return kb
}

func TestRootCmd_HasSubcommands(t *testing.T) {
	root := NewRootCmd(testLoader(t))

	names := make([]string, 0)
	for _, cmd := range root.Commands() {
		names = append(names, cmd.Name())
	}

	assert.Contains(t, names, "kb")
	assert.Contains(t, names, "doc")
	assert.Contains(t, names, "serve")
	assert.Contains(t, names, "watch")
}

func TestRootCmd_HelpDoesNotLoadEnv(t *testing.T) {
	load := func() (*Env, error) {
		t.Fatal("help should not open the store")
		return nil, nil
	}

	out, err := execute(context.Background(), load, "kb", "--help")

	require.NoError(t, err)
	assert.Contains(t, out, "Create, list, inspect and delete knowledge bases.")
}

func TestRootCmd_LoadError(t *testing.T) {
	loadErr := errors.New("boom")
	load := func() (*Env, error) { return nil, loadErr }

	_, err := execute(context.Background(), load, "kb", "list")

	assert.ErrorIs(t, err, loadErr)
}

func TestKBCmd_Lifecycle(t *testing.T) {
	load := testLoader(t)
	ctx := context.Background()

	out, err := execute(ctx, load, "kb", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No knowledge bases found")

	out, err = execute(ctx, load, "kb", "create", "Notes", "-d", "personal notes")
	require.NoError(t, err)
	assert.Contains(t, out, "Created knowledge base Notes")

	out, err = execute(ctx, load, "--json", "kb", "list")
	require.NoError(t, err)
	var kbs []storage.KnowledgeBase
	require.NoError(t, json.Unmarshal([]byte(out), &kbs))
	require.Len(t, kbs, 1)
	assert.Equal(t, "personal notes", kbs[0].Description)

	out, err = execute(ctx, load, "kb", "get", kbs[0].ID)
	require.NoError(t, err)
	assert.Contains(t, out, "Name:        Notes")
	assert.Contains(t, out, "Description: personal notes")
	assert.Contains(t, out, "Documents:   0")

	out, err = execute(ctx, load, "kb", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Total: 1 knowledge bases")

	out, err = execute(ctx, load, "kb", "delete", kbs[0].ID)
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted knowledge base "+kbs[0].ID)

	_, err = execute(ctx, load, "kb", "get", kbs[0].ID)
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestKBCmd_RequiresArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{name: "create", args: []string{"kb", "create"}, wantErr: "accepts 1 arg(s)"},
		{name: "get", args: []string{"kb", "get"}, wantErr: "accepts 1 arg(s)"},
		{name: "stats", args: []string{"kb", "stats", "a", "b"}, wantErr: "accepts 1 arg(s)"},
		{name: "list", args: []string{"kb", "list", "extra"}, wantErr: "unknown command"},
		{name: "import", args: []string{"doc", "import", "kb-1"}, wantErr: "requires at least 2 arg(s)"},
		{name: "watch", args: []string{"watch", "kb-1"}, wantErr: "accepts 2 arg(s)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(context.Background(), testLoader(t), tt.args...)

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestKBCmd_Stats(t *testing.T) {
	load := testLoader(t)
	ctx := context.Background()
	kb := createKB(t, load, "Notes")

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"note.md": "# Note\nbody\n---\n## Part\nmore"})
	_, err := execute(ctx, load, "doc", "import", kb.ID, filepath.Join(dir, "note.md"))
	require.NoError(t, err)

	out, err := execute(ctx, load, "--json", "kb", "stats", kb.ID)
	require.NoError(t, err)
	var stats indexer.CoverageStats
	require.NoError(t, json.Unmarshal([]byte(out), &stats))
	assert.Equal(t, 1, stats.Documents)
	assert.Equal(t, 2, stats.Chunks)

	out, err = execute(ctx, load, "kb", "stats", kb.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "Chunker version:    "+indexer.ChunkerVersion)

	_, err = execute(ctx, load, "kb", "stats", "missing")
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestDocCmd_ImportDirectory(t *testing.T) {
	load := testLoader(t)
	ctx := context.Background()
	kb := createKB(t, load, "Notes")

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"a.md":         "# A\nalpha",
		"sub/b.md":     "# B\nbeta",
		"skip.txt":     "not markdown",
		".hidden/c.md": "# C",
	})

	out, err := execute(ctx, load, "doc", "import", kb.ID, dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 2 of 2 files")

	out, err = execute(ctx, load, "--json", "doc", "list", kb.ID)
	require.NoError(t, err)
	var docs []storage.Document
	require.NoError(t, json.Unmarshal([]byte(out), &docs))
	require.Len(t, docs, 2)
	assert.Equal(t, "A", docs[0].Title)
	assert.Equal(t, "B", docs[1].Title)

	out, err = execute(ctx, load, "kb", "get", kb.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "Documents:   2")
}

func TestDocCmd_ImportReportsFailures(t *testing.T) {
	load := testLoader(t)
	kb := createKB(t, load, "Notes")

	out, err := execute(context.Background(), load, "doc", "import", kb.ID, filepath.Join(t.TempDir(), "missing.md"))

	require.NoError(t, err)
	assert.Contains(t, out, "Imported 0 of 1 files, 1 failed")
}

func TestDocCmd_GetAndDelete(t *testing.T) {
	load := testLoader(t)
	ctx := context.Background()
	kb := createKB(t, load, "Notes")

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"guide.md": "# Guide\n## Setup\nsteps here"})

	out, err := execute(ctx, load, "--json", "doc", "import", kb.ID, filepath.Join(dir, "guide.md"))
	require.NoError(t, err)
	var imported []storage.Document
	require.NoError(t, json.Unmarshal([]byte(out), &imported))
	require.Len(t, imported, 1)
	docID := imported[0].ID

	out, err = execute(ctx, load, "doc", "get", docID, "--content")
	require.NoError(t, err)
	assert.Contains(t, out, "Title:    Guide")
	assert.Contains(t, out, "Headings:")
	assert.Contains(t, out, "  Setup (line 2)")
	assert.Contains(t, out, "steps here")

	out, err = execute(ctx, load, "doc", "delete", docID)
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted document "+docID)

	_, err = execute(ctx, load, "doc", "get", docID)
	assert.ErrorIs(t, err, service.ErrNotFound)

	out, err = execute(ctx, load, "doc", "list", kb.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "No documents found for knowledge base: "+kb.ID)
}

func TestWatchCmd_UnknownKnowledgeBase(t *testing.T) {
	_, err := execute(context.Background(), testLoader(t), "watch", "missing", t.TempDir())

	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestWatchCmd_ImportExisting(t *testing.T) {
	load := testLoader(t)
	kb := createKB(t, load, "Notes")

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"a.md": "# A"})

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	out, err := execute(ctx, load, "watch", kb.ID, dir, "--import-existing")
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 1 of 1 existing files")
	assert.Contains(t, out, "Watching "+dir)
}

func TestRunServer_StopsOnCancel(t *testing.T) {
	server := newTestServer()
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- runServer(ctx, server)
	}()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("runServer did not return after cancellation")
	}
}
