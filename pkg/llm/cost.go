package llm

import "askdocs/internal/models"

// Pricing holds per-million-token prices in USD for a hosted model.
// Local Ollama models cost nothing; the estimate exists for deployments
// pointing the same pipeline at a metered endpoint.
type Pricing struct {
	InputPerMTok  float64
	OutputPerMTok float64
}

// Cost is a per-query cost breakdown.
type Cost struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
	InputUSD         float64
	OutputUSD        float64
	TotalUSD         float64
}

// EstimateCost converts reported token usage into dollars.
func EstimateCost(usage models.Usage, pricing Pricing) Cost {
	input := float64(usage.PromptTokens) / 1_000_000 * pricing.InputPerMTok
	output := float64(usage.CompletionTokens) / 1_000_000 * pricing.OutputPerMTok
	return Cost{
		PromptTokens:     usage.PromptTokens,
		CompletionTokens: usage.CompletionTokens,
		TotalTokens:      usage.PromptTokens + usage.CompletionTokens,
		InputUSD:         input,
		OutputUSD:        output,
		TotalUSD:         input + output,
	}
}
