package chunker

import (
	"fmt"
	"strings"

	"askdocs/internal/models"
)

// Config controls how text is split into overlapping chunks.
type Config struct {
	ChunkSize    int // target maximum characters per chunk
	ChunkOverlap int // characters repeated from the end of one chunk into the next
}

// TextChunker splits long text into overlapping chunks, snapping chunk
// boundaries to the end of a sentence or line where possible so embedding
// inputs don't cut mid-sentence.
type TextChunker struct {
	config Config
}

// NewWithConfig validates the configuration and returns a chunker.
// ChunkOverlap must stay strictly below ChunkSize or the window cannot
// advance.
func NewWithConfig(config Config) (*TextChunker, error) {
	if config.ChunkSize == 0 {
		config.ChunkSize = 1000
	}
	if config.ChunkOverlap == 0 && config.ChunkSize > 200 {
		config.ChunkOverlap = 200
	}
	if config.ChunkSize < 0 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", config.ChunkSize)
	}
	if config.ChunkOverlap < 0 {
		return nil, fmt.Errorf("chunk overlap cannot be negative, got %d", config.ChunkOverlap)
	}
	if config.ChunkOverlap >= config.ChunkSize {
		return nil, fmt.Errorf("chunk overlap (%d) must be less than chunk size (%d)",
			config.ChunkOverlap, config.ChunkSize)
	}
	return &TextChunker{config: config}, nil
}

// Split breaks text into overlapping chunks of at most ChunkSize characters.
// Text that already fits in one chunk is returned unchanged. Chunks are
// trimmed of surrounding whitespace and empty chunks are dropped.
func (c *TextChunker) Split(text string) []string {
	if text == "" {
		return nil
	}
	if len(text) <= c.config.ChunkSize {
		return []string{text}
	}

	var chunks []string
	start := 0

	for start < len(text) {
		end := start + c.config.ChunkSize
		if end > len(text) {
			end = len(text)
		}

		// Snap the boundary back to the last period or newline so the
		// cut lands at a sentence or line end instead of mid-word.
		if end < len(text) {
			if rel := strings.LastIndexAny(text[start:end], ".\n"); rel > 0 {
				end = start + rel + 1
			}
		}

		chunk := strings.TrimSpace(text[start:end])
		if chunk != "" {
			chunks = append(chunks, chunk)
		}

		// Step the window forward, re-reading ChunkOverlap characters for
		// context continuity. A snapped boundary close to start could walk
		// the cursor backwards; in that case give up the overlap for this
		// step rather than loop.
		next := end - c.config.ChunkOverlap
		if next <= start {
			next = end
		}
		start = next

		if start >= len(text) {
			break
		}
	}

	return chunks
}

// ChunkDocuments splits each document and fans its metadata out to the
// produced chunks. Output preserves document order, then chunk order within
// each document. Documents whose text yields no non-empty chunks emit
// nothing.
func (c *TextChunker) ChunkDocuments(docs []models.Document) []models.Chunk {
	var chunked []models.Chunk

	for _, doc := range docs {
		parts := c.Split(doc.Text)

		var contents []string
		for _, part := range parts {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				contents = append(contents, trimmed)
			}
		}

		for i, content := range contents {
			chunked = append(chunked, models.Chunk{
				Content:    content,
				SourceID:   doc.SourceID,
				PageIndex:  doc.PageIndex,
				ChunkIndex: i,
				ChunkCount: len(contents),
			})
		}
	}

	return chunked
}
