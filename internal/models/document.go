package models

// Document is one unit of loaded source text, typically a single page
// of a PDF or the whole body of a text/HTML file.
type Document struct {
	SourceID  string // file name the text came from
	PageIndex int    // 0 if the format has no pagination
	Text      string
}

// Chunk is a contiguous piece of a Document sized for embedding.
type Chunk struct {
	Content    string
	SourceID   string
	PageIndex  int
	ChunkIndex int // 0-based position among the parent document's chunks
	ChunkCount int // total chunks produced from the parent document
}

// ScoredMatch is one ranked result from a vector store search.
// Whether a higher or lower Score means "more relevant" depends on the
// backend's metric; see ScoreDirection.
type ScoredMatch struct {
	Content   string
	SourceID  string
	PageIndex int
	Score     float64
}

// RetrievalContext is the formatted context handed to the chat model,
// together with the matches it was rendered from. The 1-based "Source N"
// labels in Text refer to Matches[N-1].
type RetrievalContext struct {
	Text    string
	Matches []ScoredMatch
}

// Usage holds token counts reported by the chat backend, when available.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
}

// Answer is a generated response plus the sources it was grounded on.
type Answer struct {
	Text    string
	Sources []ScoredMatch
	Usage   Usage
}
