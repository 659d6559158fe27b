package indexer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"

	"mdkb/internal/contextutil"
	"mdkb/internal/storage"
)

// untitled is used when neither a heading nor a file name yields a title.
const untitled = "Untitled"

var (
	// ErrInvalidEncoding is returned when a file is not valid UTF-8 text.
	ErrInvalidEncoding = errors.New("invalid UTF-8 encoding")
)

// TextReader reads a file as text.
type TextReader interface {
	ReadText(path string) (string, error)
}

// OSReader reads files from the local filesystem and rejects non-UTF-8 content.
type OSReader struct{}

// ReadText reads the file at path.
func (OSReader) ReadText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%w: %s", ErrInvalidEncoding, path)
	}
	return string(data), nil
}

// Importer turns a markdown file into a Document record. It does not persist anything.
type Importer struct {
	reader  TextReader
	chunker *Chunker
	newID   func() string
	now     func() time.Time
}

// NewImporter creates an importer reading files through reader.
func NewImporter(reader TextReader) *Importer {
	return &Importer{
		reader:  reader,
		chunker: NewChunker(),
		newID:   uuid.NewString,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Import reads path and builds a Document belonging to kbID.
func (i *Importer) Import(ctx context.Context, kbID, path string) (storage.Document, error) {
	logger := contextutil.LoggerFromContext(ctx)

	content, err := i.reader.ReadText(path)
	if err != nil {
		return storage.Document{}, fmt.Errorf("failed to read file %s: %w", path, err)
	}

	lines := SplitLines(content)
	chunked := i.chunker.Chunk(lines)

	keywords, err := extractKeywords(lines)
	if err != nil {
		logger.DebugContext(ctx, "ignoring unparseable front matter", "path", path, "error", err)
	}

	metadata := storage.DocumentMetadata{
		WordCount: countNonSpace(content),
		LineCount: len(lines),
		Headings:  chunked.Headings,
		Keywords:  keywords,
	}

	doc := storage.Document{
		ID:        i.newID(),
		KBID:      kbID,
		Path:      path,
		Title:     resolveTitle(chunked.Headings, path),
		Content:   content,
		Chunks:    chunked.Chunks,
		Metadata:  metadata,
		CreatedAt: i.now(),
	}

	logger.DebugContext(ctx, "parsed document", "path", path, "chunks", len(doc.Chunks), "headings", len(metadata.Headings))
	return doc, nil
}

// resolveTitle returns the first heading text, else the file stem, else untitled.
func resolveTitle(headings []storage.HeadingInfo, path string) string {
	if len(headings) > 0 {
		return headings[0].Text
	}
	if stem := fileStem(path); stem != "" {
		return stem
	}
	return untitled
}

// fileStem returns the file name without its final extension.
// Names that start with their only dot (".notes") are kept whole.
func fileStem(path string) string {
	name := filepath.Base(path)
	if name == "." || name == string(filepath.Separator) || name == ".." {
		return ""
	}

	ext := filepath.Ext(name)
	if ext == name {
		return name
	}
	return strings.TrimSuffix(name, ext)
}

// countNonSpace counts non-whitespace characters. It is stored as the word count.
func countNonSpace(s string) int {
	n := 0
	for _, r := range s {
		if !unicode.IsSpace(r) {
			n++
		}
	}
	return n
}
