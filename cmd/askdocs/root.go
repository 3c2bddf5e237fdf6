package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"askdocs/internal/models"
	"askdocs/internal/types"
	"askdocs/pkg/catalog"
	"askdocs/pkg/chunker"
	"askdocs/pkg/config"
	"askdocs/pkg/llm"
	"askdocs/pkg/loader"
	"askdocs/pkg/pipeline"
	"askdocs/pkg/retriever"
	"askdocs/pkg/store"
	"askdocs/pkg/store/memory"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "askdocs",
	Short: "Chat with a local document corpus",
	Long: `askdocs ingests PDF, HTML and text files into a vector store and
answers questions about them with cited sources, using a local Ollama
server for embeddings and generation.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")
	rootCmd.AddCommand(ingestCmd, askCmd, chatCmd, statusCmd, serveCmd)
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		for _, e := range errs {
			fmt.Printf("config error: %v\n", e)
		}
		return nil, fmt.Errorf("invalid configuration (%d errors)", len(errs))
	}
	return cfg, nil
}

// buildPipeline assembles the full pipeline from configuration. Every
// component is constructed here and owned by the caller; nothing holds
// ambient client state.
func buildPipeline(ctx context.Context, cfg *config.Config, withCatalog bool) (*pipeline.Pipeline, error) {
	textChunker, err := chunker.NewWithConfig(chunker.Config{
		ChunkSize:    cfg.Chunker.ChunkSize,
		ChunkOverlap: cfg.Chunker.ChunkOverlap,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize chunker: %v", err)
	}

	embedder, err := llm.NewEmbedderWithConfig(llm.EmbedderConfig{
		Model:     cfg.LLM.EmbeddingModel,
		BaseURL:   cfg.LLM.BaseURL,
		BatchSize: cfg.LLM.EmbedBatchSize,
		RateLimit: cfg.LLM.RateLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize embedder: %v", err)
	}

	chatEngine, err := llm.NewWithConfig(llm.ChatConfig{
		Model:       cfg.LLM.Model,
		MaxTokens:   cfg.LLM.MaxTokens,
		Temperature: cfg.LLM.Temperature,
		BaseURL:     cfg.LLM.BaseURL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize chat engine: %v", err)
	}

	vectorStore, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	direction := vectorStore.Direction()
	if cfg.Retriever.ScoreDirection != "" {
		direction, err = models.ParseScoreDirection(cfg.Retriever.ScoreDirection)
		if err != nil {
			vectorStore.Close()
			return nil, err
		}
	}

	thresholdRetriever, err := retriever.NewWithConfig(retriever.Config{
		TopK:           cfg.Retriever.TopK,
		ScoreThreshold: cfg.Retriever.ScoreThreshold,
		Direction:      direction,
	})
	if err != nil {
		vectorStore.Close()
		return nil, fmt.Errorf("failed to initialize retriever: %v", err)
	}

	dirLoader, err := loader.NewWithConfig(loader.Config{DataDir: cfg.Loader.DataDir})
	if err != nil {
		vectorStore.Close()
		return nil, err
	}

	p := &pipeline.Pipeline{
		Loader:    dirLoader,
		Chunker:   textChunker,
		Embedder:  embedder,
		Store:     vectorStore,
		Retriever: thresholdRetriever,
		Chat:      chatEngine,
	}

	if withCatalog {
		cat, err := catalog.Open(cfg.Catalog.Path)
		if err != nil {
			vectorStore.Close()
			return nil, err
		}
		p.Catalog = cat
	}

	return p, nil
}

func buildStore(ctx context.Context, cfg *config.Config) (types.VectorStore, error) {
	switch cfg.Store.Type {
	case "memory":
		return memory.New(), nil
	case "pgvector":
		vs, err := store.NewWithConfig(ctx, store.VectorStoreConfig{
			ConnString: cfg.Database.URL,
			TableName:  cfg.Database.TableName,
			VectorDim:  cfg.Database.VectorDim,
			BatchSize:  cfg.Database.BatchSize,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize vector store: %v", err)
		}
		return vs, nil
	default:
		return nil, fmt.Errorf("unknown store type: %s", cfg.Store.Type)
	}
}

func closePipeline(p *pipeline.Pipeline) {
	p.Store.Close()
	if p.Catalog != nil {
		p.Catalog.Close()
	}
}
