package llm

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/schema"

	"askdocs/internal/models"
)

const defaultSystemTemplate = `You are a helpful assistant that answers questions based on provided context.

IMPORTANT RULES:
1. Only use information from the provided context
2. If the answer is not in the context, say "I don't have enough information to answer that question."
3. Always cite your sources using the format: [Source X]
4. Be concise but complete
5. If multiple sources provide similar information, mention all relevant sources`

// NoContextAnswer is returned without calling the model when retrieval
// produced nothing usable.
const NoContextAnswer = "I don't have any relevant information to answer that question."

// ChatConfig represents the configuration for a chat engine.
type ChatConfig struct {
	Model          string
	Temperature    float64
	MaxTokens      int
	SystemTemplate string
	BaseURL        string // Ollama server URL
}

// ChatEngine generates answers grounded in retrieved context.
type ChatEngine struct {
	config ChatConfig
	llm    llms.Model
}

// NewWithConfig creates a new ChatEngine with the given configuration.
func NewWithConfig(config ChatConfig) (*ChatEngine, error) {
	if config.Model == "" {
		config.Model = "mistral"
	}
	if config.Temperature < 0 || config.Temperature > 2 {
		return nil, fmt.Errorf("temperature must be between 0 and 2")
	}
	if config.MaxTokens < 0 {
		return nil, fmt.Errorf("max tokens cannot be negative")
	} else if config.MaxTokens == 0 {
		config.MaxTokens = 2000
	}
	if config.SystemTemplate == "" {
		config.SystemTemplate = defaultSystemTemplate
	}
	if config.BaseURL == "" {
		config.BaseURL = "http://localhost:11434"
	}

	llm, err := ollama.New(
		ollama.WithModel(config.Model),
		ollama.WithServerURL(config.BaseURL),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize LLM: %w", err)
	}

	return &ChatEngine{
		config: config,
		llm:    llm,
	}, nil
}

func (ce *ChatEngine) messages(question string, rc models.RetrievalContext) []llms.MessageContent {
	system := fmt.Sprintf("%s\n\nContext:\n%s", ce.config.SystemTemplate, rc.Text)
	return []llms.MessageContent{
		llms.TextParts(schema.ChatMessageTypeSystem, system),
		llms.TextParts(schema.ChatMessageTypeHuman, question),
	}
}

// Ask generates an answer to the question using the retrieved context.
// The matches the context was built from come back as the answer's sources
// so callers can render citations.
func (ce *ChatEngine) Ask(ctx context.Context, question string, rc models.RetrievalContext) (models.Answer, error) {
	response, err := ce.llm.GenerateContent(ctx, ce.messages(question, rc),
		llms.WithMaxTokens(ce.config.MaxTokens),
		llms.WithTemperature(ce.config.Temperature),
	)
	if err != nil {
		return models.Answer{}, fmt.Errorf("chat error: %w", err)
	}
	if len(response.Choices) == 0 {
		return models.Answer{}, fmt.Errorf("no response from LLM")
	}

	choice := response.Choices[0]
	return models.Answer{
		Text:    choice.Content,
		Sources: rc.Matches,
		Usage:   usageFromGenerationInfo(choice.GenerationInfo),
	}, nil
}

// AskStream generates the answer as a stream of text fragments. The channel
// closes when generation finishes; an error mid-stream is delivered as a
// final "Error: ..." fragment, matching how the CLI and WS server report it.
func (ce *ChatEngine) AskStream(ctx context.Context, question string, rc models.RetrievalContext) (<-chan string, error) {
	resultChan := make(chan string)

	go func() {
		defer close(resultChan)

		_, err := ce.llm.GenerateContent(ctx, ce.messages(question, rc),
			llms.WithMaxTokens(ce.config.MaxTokens),
			llms.WithTemperature(ce.config.Temperature),
			llms.WithStreamingFunc(func(ctx context.Context, chunk []byte) error {
				select {
				case resultChan <- string(chunk):
					return nil
				case <-ctx.Done():
					return ctx.Err()
				}
			}),
		)
		if err != nil {
			resultChan <- fmt.Sprintf("Error: %v", err)
		}
	}()

	return resultChan, nil
}

func usageFromGenerationInfo(info map[string]any) models.Usage {
	var usage models.Usage
	if info == nil {
		return usage
	}
	if v, ok := info["PromptTokens"].(int); ok {
		usage.PromptTokens = v
	}
	if v, ok := info["CompletionTokens"].(int); ok {
		usage.CompletionTokens = v
	}
	return usage
}
