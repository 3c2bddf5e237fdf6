package llm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"askdocs/internal/models"
	"askdocs/pkg/llm"
)

func TestNewWithConfig(t *testing.T) {
	engine, err := llm.NewWithConfig(llm.ChatConfig{
		Model:       "mistral",
		MaxTokens:   1000,
		Temperature: 0.7,
		BaseURL:     "http://localhost:11434",
	})
	require.NoError(t, err)
	assert.NotNil(t, engine)
}

func TestNewWithConfig_Validation(t *testing.T) {
	_, err := llm.NewWithConfig(llm.ChatConfig{Temperature: 3.0})
	assert.Error(t, err)

	_, err = llm.NewWithConfig(llm.ChatConfig{MaxTokens: -1})
	assert.Error(t, err)
}

func TestEstimateCost(t *testing.T) {
	cost := llm.EstimateCost(
		models.Usage{PromptTokens: 1_000_000, CompletionTokens: 500_000},
		llm.Pricing{InputPerMTok: 0.15, OutputPerMTok: 0.60},
	)

	assert.Equal(t, 1_500_000, cost.TotalTokens)
	assert.InDelta(t, 0.15, cost.InputUSD, 1e-9)
	assert.InDelta(t, 0.30, cost.OutputUSD, 1e-9)
	assert.InDelta(t, 0.45, cost.TotalUSD, 1e-9)
}

func TestEstimateCost_ZeroUsage(t *testing.T) {
	cost := llm.EstimateCost(models.Usage{}, llm.Pricing{InputPerMTok: 0.15, OutputPerMTok: 0.60})
	assert.Zero(t, cost.TotalUSD)
}
