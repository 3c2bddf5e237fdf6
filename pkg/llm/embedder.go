package llm

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms/ollama"
	"golang.org/x/time/rate"
)

// EmbedderConfig configures the Ollama embedding client.
type EmbedderConfig struct {
	Model     string
	BaseURL   string  // Ollama server URL
	BatchSize int     // texts per embedding request
	RateLimit float64 // embedding requests per second
}

// Embedder turns text into vectors via a local Ollama server. Requests are
// batched and rate limited; the embedding API is the one shared resource in
// the ingestion path.
type Embedder struct {
	config  EmbedderConfig
	llm     *ollama.LLM
	limiter *rate.Limiter
}

func NewEmbedderWithConfig(config EmbedderConfig) (*Embedder, error) {
	if config.Model == "" {
		config.Model = "nomic-embed-text:latest"
	}
	if config.BaseURL == "" {
		config.BaseURL = "http://localhost:11434"
	}
	if config.BatchSize == 0 {
		config.BatchSize = 16
	}
	if config.BatchSize < 0 {
		return nil, fmt.Errorf("batch size must be positive, got %d", config.BatchSize)
	}
	if config.RateLimit == 0 {
		config.RateLimit = 2.0
	}

	emb, err := ollama.New(
		ollama.WithModel(config.Model),
		ollama.WithServerURL(config.BaseURL),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize embedding model: %w", err)
	}

	return &Embedder{
		config:  config,
		llm:     emb,
		limiter: rate.NewLimiter(rate.Limit(config.RateLimit), 1),
	}, nil
}

// EmbedTexts embeds texts in batches, preserving input order.
func (e *Embedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, 0, len(texts))

	for i := 0; i < len(texts); i += e.config.BatchSize {
		end := i + e.config.BatchSize
		if end > len(texts) {
			end = len(texts)
		}

		if err := e.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		batch, err := e.llm.CreateEmbedding(ctx, texts[i:end])
		if err != nil {
			return nil, fmt.Errorf("embedding batch starting at %d failed: %w", i, err)
		}
		if len(batch) != end-i {
			return nil, fmt.Errorf("embedding batch starting at %d: got %d vectors for %d texts",
				i, len(batch), end-i)
		}

		vectors = append(vectors, batch...)
	}

	return vectors, nil
}

// EmbedQuery embeds a single query string.
func (e *Embedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	vectors, err := e.EmbedTexts(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}
