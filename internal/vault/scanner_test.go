package vault

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// makeTree creates files (slash separated, relative to root) with placeholder content.
func makeTree(t *testing.T, root string, files ...string) {
	t.Helper()
	for _, f := range files {
		full := filepath.Join(root, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte("# Test"), 0o644))
	}
}

func TestNewScanner(t *testing.T) {
	t.Run("valid patterns", func(t *testing.T) {
		s, err := NewScanner([]string{"*.md", "docs/**.txt"})
		require.NoError(t, err)
		assert.Equal(t, []string{"*.md", "docs/**.txt"}, s.Patterns())
	})

	t.Run("no patterns", func(t *testing.T) {
		_, err := NewScanner(nil)
		assert.Error(t, err)
	})

	t.Run("invalid pattern", func(t *testing.T) {
		_, err := NewScanner([]string{"[unclosed"})
		assert.Error(t, err)
	})
}

func TestScanner_Match(t *testing.T) {
	s, err := NewScanner([]string{"*.md", "*.markdown", "notes/**.txt"})
	require.NoError(t, err)

	tests := []struct {
		path string
		want bool
	}{
		{"readme.md", true},
		{"deep/nested/file.md", true},
		{"guide.markdown", true},
		{"image.png", false},
		{"notes/a/b.txt", true},
		{"other/b.txt", false},
		{"md", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, s.Match(tt.path))
		})
	}
}

func TestScanner_Scan(t *testing.T) {
	root := t.TempDir()
	makeTree(t, root,
		"note1.md",
		"folder/note2.md",
		"folder/sub/note3.markdown",
		"folder/image.png",
		".obsidian/config.md",
		"visible/.hidden.md",
	)

	s, err := NewScanner([]string{"*.md", "*.markdown"})
	require.NoError(t, err)

	files, err := s.Scan(context.Background(), root)
	require.NoError(t, err)

	var rel []string
	for _, f := range files {
		rel = append(rel, f.RelPath)
	}
	assert.Equal(t, []string{"folder/note2.md", "folder/sub/note3.markdown", "note1.md"}, rel)

	assert.Equal(t, "folder", files[0].Folder)
	assert.Equal(t, "folder/sub", files[1].Folder)
	assert.Equal(t, "", files[2].Folder)
	assert.True(t, filepath.IsAbs(files[2].AbsPath))
	assert.Equal(t, "note1.md", filepath.Base(files[2].AbsPath))
}

func TestScanner_Scan_Errors(t *testing.T) {
	s, err := NewScanner([]string{"*.md"})
	require.NoError(t, err)

	t.Run("missing root", func(t *testing.T) {
		_, err := s.Scan(context.Background(), filepath.Join(t.TempDir(), "missing"))
		assert.Error(t, err)
	})

	t.Run("root is a file", func(t *testing.T) {
		root := t.TempDir()
		makeTree(t, root, "a.md")
		_, err := s.Scan(context.Background(), filepath.Join(root, "a.md"))
		assert.Error(t, err)
	})

	t.Run("cancelled context", func(t *testing.T) {
		root := t.TempDir()
		makeTree(t, root, "a.md")
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := s.Scan(ctx, root)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestHiddenRel(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"file.md", false},
		{".file.md", true},
		{"a/.b/c.md", true},
		{"../outside.md", false},
		{"a/b/c.md", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, hiddenRel(tt.path))
		})
	}
}
