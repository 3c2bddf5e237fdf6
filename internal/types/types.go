package types

import (
	"context"

	"askdocs/internal/models"
)

// Core interfaces
type Loader interface {
	Load(ctx context.Context) ([]models.Document, error)
}

type Chunker interface {
	Split(text string) []string
	ChunkDocuments(docs []models.Document) []models.Chunk
}

type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// VectorStore persists embedded chunks and answers similarity queries.
// Embeddings are computed by the caller and passed in; the store never
// owns an embedding client of its own.
type VectorStore interface {
	Store(ctx context.Context, chunks []models.Chunk, vectors [][]float32) error
	Search(ctx context.Context, vector []float32, limit int) ([]models.ScoredMatch, error)
	Direction() models.ScoreDirection
	Close()
}

type ChatModel interface {
	Ask(ctx context.Context, question string, rc models.RetrievalContext) (models.Answer, error)
	AskStream(ctx context.Context, question string, rc models.RetrievalContext) (<-chan string, error)
}
