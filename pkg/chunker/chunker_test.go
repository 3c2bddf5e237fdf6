package chunker_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"askdocs/internal/models"
	"askdocs/pkg/chunker"
)

func mustChunker(t *testing.T, size, overlap int) *chunker.TextChunker {
	t.Helper()
	c, err := chunker.NewWithConfig(chunker.Config{ChunkSize: size, ChunkOverlap: overlap})
	require.NoError(t, err)
	return c
}

func TestNewWithConfig_Validation(t *testing.T) {
	tests := []struct {
		name    string
		config  chunker.Config
		wantErr bool
	}{
		{"defaults", chunker.Config{}, false},
		{"valid", chunker.Config{ChunkSize: 100, ChunkOverlap: 20}, false},
		{"negative size", chunker.Config{ChunkSize: -1}, true},
		{"negative overlap", chunker.Config{ChunkSize: 100, ChunkOverlap: -5}, true},
		{"overlap equals size", chunker.Config{ChunkSize: 100, ChunkOverlap: 100}, true},
		{"overlap exceeds size", chunker.Config{ChunkSize: 100, ChunkOverlap: 150}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := chunker.NewWithConfig(tt.config)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSplit_ShortTextReturnedUnchanged(t *testing.T) {
	c := mustChunker(t, 1000, 200)

	text := "  short text, not trimmed in the trivial case  "
	chunks := c.Split(text)

	require.Len(t, chunks, 1)
	assert.Equal(t, text, chunks[0])
}

func TestSplit_EmptyInput(t *testing.T) {
	c := mustChunker(t, 1000, 200)
	assert.Empty(t, c.Split(""))
}

func TestSplit_SnapsToSentenceBoundary(t *testing.T) {
	c := mustChunker(t, 5, 2)

	chunks := c.Split("A. B. C.")

	require.NotEmpty(t, chunks)
	for _, chunk := range chunks {
		assert.NotEmpty(t, chunk)
		assert.LessOrEqual(t, len(chunk), 5)
	}
	// The first cut lands after a period, not mid-word.
	assert.Equal(t, "A. B.", chunks[0])
}

func TestSplit_SnapsToNewline(t *testing.T) {
	c := mustChunker(t, 20, 5)

	chunks := c.Split("first line\nsecond line without any period at all here")

	require.NotEmpty(t, chunks)
	assert.Equal(t, "first line", chunks[0])
}

func TestSplit_HardCutWithoutBoundary(t *testing.T) {
	c := mustChunker(t, 10, 2)

	text := strings.Repeat("x", 25)
	chunks := c.Split(text)

	require.NotEmpty(t, chunks)
	assert.Equal(t, strings.Repeat("x", 10), chunks[0])

	// Every chunk respects the size cap.
	for _, chunk := range chunks {
		assert.LessOrEqual(t, len(chunk), 10)
	}
}

func TestSplit_OverlapCarriesContext(t *testing.T) {
	c := mustChunker(t, 10, 4)

	text := strings.Repeat("y", 30)
	chunks := c.Split(text)
	require.Greater(t, len(chunks), 1)

	// Each chunk re-reads the tail of its predecessor.
	for i := 1; i < len(chunks); i++ {
		prevTail := chunks[i-1][len(chunks[i-1])-4:]
		assert.True(t, strings.HasPrefix(chunks[i], prevTail),
			"chunk %d should start with the last 4 characters of chunk %d", i, i-1)
	}
}

func TestSplit_CoversWholeText(t *testing.T) {
	c := mustChunker(t, 50, 10)

	text := "The quick brown fox jumps over the lazy dog. " +
		"Pack my box with five dozen liquor jugs. " +
		"How vexingly quick daft zebras jump. " +
		"Sphinx of black quartz, judge my vow."

	chunks := c.Split(text)
	require.Greater(t, len(chunks), 1)

	// Every non-whitespace character of the input appears in the
	// concatenated chunks, in order.
	joined := strings.Join(chunks, "")
	for _, sentence := range strings.Split(text, ". ") {
		assert.Contains(t, joined, strings.TrimSuffix(strings.TrimSpace(sentence), "."))
	}
}

func TestSplit_Idempotent(t *testing.T) {
	c := mustChunker(t, 30, 10)

	text := "One sentence here. Another one there. And a third for good measure."
	first := c.Split(text)
	second := c.Split(text)

	assert.Equal(t, first, second)
}

func TestSplit_TerminatesOnPathologicalInput(t *testing.T) {
	// A single period near the start would snap the boundary so close to
	// the cursor that the overlap step could walk backwards.
	c := mustChunker(t, 10, 5)

	chunks := c.Split("ab." + strings.Repeat("z", 40))

	require.NotEmpty(t, chunks)
	assert.Equal(t, "ab.", chunks[0])
}

func TestChunkDocuments_MetadataConsistency(t *testing.T) {
	c := mustChunker(t, 40, 10)

	docs := []models.Document{
		{SourceID: "a.pdf", PageIndex: 0, Text: "First page. It has two sentences that will need splitting into pieces. And more text follows here."},
		{SourceID: "a.pdf", PageIndex: 1, Text: "Second page text."},
		{SourceID: "b.txt", PageIndex: 0, Text: "Other file."},
	}

	chunks := c.ChunkDocuments(docs)
	require.NotEmpty(t, chunks)

	perDoc := make(map[string]int)
	for _, chunk := range chunks {
		key := chunk.SourceID + ":" + string(rune('0'+chunk.PageIndex))
		perDoc[key]++

		assert.GreaterOrEqual(t, chunk.ChunkIndex, 0)
		assert.Less(t, chunk.ChunkIndex, chunk.ChunkCount)
		assert.NotEmpty(t, chunk.Content)
		assert.Equal(t, strings.TrimSpace(chunk.Content), chunk.Content)
	}

	for _, chunk := range chunks {
		key := chunk.SourceID + ":" + string(rune('0'+chunk.PageIndex))
		assert.Equal(t, perDoc[key], chunk.ChunkCount,
			"chunk count must equal chunks actually produced for %s", key)
	}

	// Document order, then chunk order.
	assert.Equal(t, "a.pdf", chunks[0].SourceID)
	assert.Equal(t, 0, chunks[0].ChunkIndex)
	last := chunks[len(chunks)-1]
	assert.Equal(t, "b.txt", last.SourceID)
}

func TestChunkDocuments_SingleShortDocument(t *testing.T) {
	c := mustChunker(t, 1000, 200)

	chunks := c.ChunkDocuments([]models.Document{
		{SourceID: "f.pdf", PageIndex: 0, Text: "short"},
	})

	require.Len(t, chunks, 1)
	assert.Equal(t, "short", chunks[0].Content)
	assert.Equal(t, 0, chunks[0].ChunkIndex)
	assert.Equal(t, 1, chunks[0].ChunkCount)
	assert.Equal(t, "f.pdf", chunks[0].SourceID)
}

func TestChunkDocuments_WhitespaceOnlyEmitsNothing(t *testing.T) {
	c := mustChunker(t, 1000, 200)

	chunks := c.ChunkDocuments([]models.Document{
		{SourceID: "blank.txt", PageIndex: 0, Text: "   \n\t  "},
	})

	assert.Empty(t, chunks)
}
