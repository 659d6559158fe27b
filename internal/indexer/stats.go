package indexer

import (
	"math"
	"sort"
	"unicode/utf8"

	"mdkb/internal/storage"
)

const (
	// ChunkerVersion identifies the chunking rules that produced stored chunks.
	ChunkerVersion = "v1.0"
	// RunesPerToken is the approximation used for token estimates.
	RunesPerToken = 4.0
)

// CoverageStats summarises the documents and chunks of one knowledge base.
type CoverageStats struct {
	// Documents is the number of documents considered.
	Documents int `json:"documents"`
	// DocsWith0Chunks is the number of documents that produced no chunks.
	DocsWith0Chunks int `json:"docs_with_0_chunks"`
	// Chunks is the total number of chunks.
	Chunks int `json:"chunks"`
	// Words is the sum of the documents' word counts.
	Words int `json:"words"`
	// Headings is the total number of heading lines.
	Headings int `json:"headings"`
	// ChunkTokenStats contains estimated token counts per chunk.
	ChunkTokenStats ChunkTokenStats `json:"chunk_token_stats"`
	// ChunkerVersion is the version of the chunker.
	ChunkerVersion string `json:"chunker_version"`
}

// ChunkTokenStats contains statistics about token counts in chunks.
type ChunkTokenStats struct {
	Min  int     `json:"min"`
	Max  int     `json:"max"`
	Mean float64 `json:"mean"`
	P95  int     `json:"p95"`
}

// ComputeStats computes coverage statistics for docs.
func ComputeStats(docs []storage.Document) CoverageStats {
	stats := CoverageStats{
		Documents:      len(docs),
		ChunkerVersion: ChunkerVersion,
	}

	var tokenCounts []int
	for _, doc := range docs {
		if len(doc.Chunks) == 0 {
			stats.DocsWith0Chunks++
		}
		stats.Chunks += len(doc.Chunks)
		stats.Words += doc.Metadata.WordCount
		stats.Headings += len(doc.Metadata.Headings)

		for _, chunk := range doc.Chunks {
			tokenCounts = append(tokenCounts, EstimateTokens(chunk.Content))
		}
	}

	stats.ChunkTokenStats = computeTokenStats(tokenCounts)
	return stats
}

// EstimateTokens approximates the token count of text from its rune count (minimum 1).
func EstimateTokens(text string) int {
	runeCount := utf8.RuneCountInString(text)
	tokens := int(math.Round(float64(runeCount) / RunesPerToken))
	if tokens < 1 {
		tokens = 1
	}
	return tokens
}

// computeTokenStats computes min, max, mean, and p95 from token counts.
func computeTokenStats(tokenCounts []int) ChunkTokenStats {
	if len(tokenCounts) == 0 {
		return ChunkTokenStats{}
	}

	sorted := make([]int, len(tokenCounts))
	copy(sorted, tokenCounts)
	sort.Ints(sorted)

	sum := 0
	for _, count := range sorted {
		sum += count
	}
	mean := float64(sum) / float64(len(sorted))

	p95Index := int(math.Ceil(float64(len(sorted))*0.95)) - 1
	if p95Index < 0 {
		p95Index = 0
	}

	return ChunkTokenStats{
		Min:  sorted[0],
		Max:  sorted[len(sorted)-1],
		Mean: math.Round(mean*100) / 100,
		P95:  sorted[p95Index],
	}
}
