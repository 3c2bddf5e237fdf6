package llm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"askdocs/pkg/llm"
)

func TestNewEmbedderWithConfig(t *testing.T) {
	emb, err := llm.NewEmbedderWithConfig(llm.EmbedderConfig{
		Model:     "nomic-embed-text:latest",
		BaseURL:   "http://localhost:11434",
		BatchSize: 16,
		RateLimit: 2.0,
	})
	require.NoError(t, err)
	assert.NotNil(t, emb)
}

func TestNewEmbedderWithConfig_Defaults(t *testing.T) {
	emb, err := llm.NewEmbedderWithConfig(llm.EmbedderConfig{})
	require.NoError(t, err)
	assert.NotNil(t, emb)
}

func TestNewEmbedderWithConfig_NegativeBatchSize(t *testing.T) {
	_, err := llm.NewEmbedderWithConfig(llm.EmbedderConfig{BatchSize: -4})
	assert.Error(t, err)
}
