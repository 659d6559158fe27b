package indexer

import (
	"strings"

	"github.com/google/uuid"

	"mdkb/internal/storage"
)

const (
	// maxChunkBytes is the buffer length (bytes, newlines included) past
	// which the open chunk is flushed at the end of the current line.
	maxChunkBytes = 2000
	// chunkSeparator at the start of a line closes the open chunk after that line.
	chunkSeparator = "---"
)

// Chunker splits markdown lines into chunks keyed by heading structure.
type Chunker struct {
	newID func() string
}

// NewChunker creates a new chunker that assigns random UUIDs to chunks.
func NewChunker() *Chunker {
	return &Chunker{
		newID: uuid.NewString,
	}
}

// SplitLines splits content into lines. A trailing "\r" is removed from each
// line and a final line terminator does not produce an extra empty line.
func SplitLines(content string) []string {
	if content == "" {
		return []string{}
	}

	lines := strings.Split(content, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// Chunk scans lines once and returns the chunks and headings found.
//
// A heading line closes the open chunk (ending on the previous line) and
// starts a new one at the heading. A line that pushes the buffer past
// maxChunkBytes, or that starts with chunkSeparator, closes the open chunk
// including that line. Chunks whose trimmed content is empty are dropped.
func (c *Chunker) Chunk(lines []string) ChunkResult {
	result := ChunkResult{
		Chunks:   []storage.Chunk{},
		Headings: []storage.HeadingInfo{},
	}

	var headingPath []string
	var buf strings.Builder
	chunkStart := 0

	flush := func(endLine int) {
		text := strings.TrimSpace(buf.String())
		if text == "" {
			return
		}
		path := make([]string, len(headingPath))
		copy(path, headingPath)
		result.Chunks = append(result.Chunks, storage.Chunk{
			ID:        c.newID(),
			Content:   text,
			StartLine: chunkStart,
			EndLine:   endLine,
			Headings:  path,
		})
	}

	for idx, line := range lines {
		if level, text, ok := ParseHeading(line); ok {
			flush(max(idx-1, 0))

			result.Headings = append(result.Headings, storage.HeadingInfo{
				Level: level,
				Text:  text,
				Line:  idx,
			})

			// A heading replaces every ancestor at its own level or deeper.
			if len(headingPath) > level-1 {
				headingPath = headingPath[:level-1]
			}
			headingPath = append(headingPath, text)

			chunkStart = idx
			buf.Reset()
		}

		buf.WriteString(line)
		buf.WriteByte('\n')

		if buf.Len() > maxChunkBytes || strings.HasPrefix(line, chunkSeparator) {
			flush(idx)
			chunkStart = idx + 1
			buf.Reset()
		}
	}

	flush(max(len(lines)-1, 0))

	return result
}
