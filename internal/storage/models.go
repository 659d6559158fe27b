package storage

import "time"

// KnowledgeBase groups imported documents.
type KnowledgeBase struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
	DocumentCount int       `json:"documentCount"` // Recomputed from documents on every membership change
}

// Document is an imported markdown file together with its chunks.
type Document struct {
	ID        string           `json:"id"`
	KBID      string           `json:"kbId"` // Foreign key to KnowledgeBase.ID
	Path      string           `json:"path"`
	Title     string           `json:"title"`
	Content   string           `json:"content"` // Full original text
	Chunks    []Chunk          `json:"chunks"`
	Metadata  DocumentMetadata `json:"metadata"`
	CreatedAt time.Time        `json:"createdAt"`
}

// Chunk is a contiguous line range of a document.
type Chunk struct {
	ID        string   `json:"id"`
	Content   string   `json:"content"`
	StartLine int      `json:"startLine"` // Zero-based, inclusive
	EndLine   int      `json:"endLine"`   // Zero-based, inclusive
	Headings  []string `json:"headings"`  // Ancestor heading texts, outermost first
}

// DocumentMetadata holds values derived from a document at import time.
type DocumentMetadata struct {
	WordCount int           `json:"wordCount"` // Non-whitespace characters
	LineCount int           `json:"lineCount"`
	Headings  []HeadingInfo `json:"headings"`
	Keywords  []string      `json:"keywords,omitempty"`
}

// HeadingInfo describes one heading line.
type HeadingInfo struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
	Line  int    `json:"line"`
}

// Snapshot is the complete persisted dataset.
type Snapshot struct {
	KnowledgeBases []KnowledgeBase `json:"knowledgeBases"`
	Documents      []Document      `json:"documents"`
}
