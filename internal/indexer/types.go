package indexer

import "mdkb/internal/storage"

// ChunkResult is the output of one chunking pass over a document.
type ChunkResult struct {
	Chunks   []storage.Chunk       // In line order
	Headings []storage.HeadingInfo // Every heading line, in document order
}
