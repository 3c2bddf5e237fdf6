package retriever

import (
	"context"
	"fmt"
	"strings"

	"askdocs/internal/models"
	"askdocs/internal/types"
)

// NoResultsContext is returned in place of an empty context so prompt
// assembly never silently drops the context section.
const NoResultsContext = "No relevant documents found."

// blockSeparator joins source blocks. A horizontal rule with blank lines
// around it does not occur in normal chunk text, so downstream parsing of
// source boundaries stays unambiguous.
const blockSeparator = "\n\n---\n\n"

// Config controls how many candidates are requested and which ones survive.
type Config struct {
	TopK           int                   // candidates requested from the search backend
	ScoreThreshold *float64              // optional relevance cutoff; nil disables filtering
	Direction      models.ScoreDirection
}

// ThresholdRetriever filters ranked search results by a relevance cutoff and
// renders the survivors into a citation-annotated context string. It holds
// no state between calls.
type ThresholdRetriever struct {
	config Config
}

// NewWithConfig validates the configuration and returns a retriever.
// Direction is mandatory: backends disagree on whether high or low scores
// mean relevant, and guessing wrong silently inverts the filter.
func NewWithConfig(config Config) (*ThresholdRetriever, error) {
	if config.TopK == 0 {
		config.TopK = 4
	}
	if config.TopK < 0 {
		return nil, fmt.Errorf("top_k must be positive, got %d", config.TopK)
	}
	if config.Direction == models.ScoreDirectionUnset {
		return nil, fmt.Errorf("score direction must be set explicitly")
	}
	return &ThresholdRetriever{config: config}, nil
}

// TopK reports how many candidates the retriever requests per query.
func (r *ThresholdRetriever) TopK() int {
	return r.config.TopK
}

// FilterByThreshold keeps the matches whose score passes the cutoff in the
// configured direction, preserving the input ranking. An empty result is a
// valid outcome, not an error.
func (r *ThresholdRetriever) FilterByThreshold(matches []models.ScoredMatch, threshold float64) []models.ScoredMatch {
	filtered := make([]models.ScoredMatch, 0, len(matches))
	for _, m := range matches {
		if r.config.Direction == models.HigherIsBetter && m.Score >= threshold {
			filtered = append(filtered, m)
		}
		if r.config.Direction == models.LowerIsBetter && m.Score <= threshold {
			filtered = append(filtered, m)
		}
	}
	return filtered
}

// FormatContext renders matches into the context string handed to the chat
// model. Citation label i always refers to matches[i-1].
func (r *ThresholdRetriever) FormatContext(matches []models.ScoredMatch) models.RetrievalContext {
	if len(matches) == 0 {
		return models.RetrievalContext{Text: NoResultsContext}
	}

	blocks := make([]string, 0, len(matches))
	for i, m := range matches {
		header := fmt.Sprintf("[Source %d: %s, page %d, score %.3f]",
			i+1, m.SourceID, m.PageIndex, m.Score)
		blocks = append(blocks, header+"\n"+strings.TrimSpace(m.Content))
	}

	return models.RetrievalContext{
		Text:    strings.Join(blocks, blockSeparator),
		Matches: matches,
	}
}

// Retrieve runs a similarity search against the store, applies the
// configured threshold when one is set, and formats the survivors. Search
// failures propagate to the caller; retry policy belongs to the store
// client, not here.
func (r *ThresholdRetriever) Retrieve(ctx context.Context, queryVector []float32, store types.VectorStore) (models.RetrievalContext, error) {
	matches, err := store.Search(ctx, queryVector, r.config.TopK)
	if err != nil {
		return models.RetrievalContext{}, fmt.Errorf("similarity search failed: %w", err)
	}

	if r.config.ScoreThreshold != nil {
		matches = r.FilterByThreshold(matches, *r.config.ScoreThreshold)
	}

	return r.FormatContext(matches), nil
}

// Stats summarizes a result set for logging and the CLI.
type Stats struct {
	Count     int
	Sources   map[string]int
	AvgLength int
}

// RetrievalStats reports how many matches came from which sources and the
// average content length.
func RetrievalStats(matches []models.ScoredMatch) Stats {
	stats := Stats{Count: len(matches), Sources: make(map[string]int)}
	if len(matches) == 0 {
		return stats
	}
	total := 0
	for _, m := range matches {
		stats.Sources[m.SourceID]++
		total += len(m.Content)
	}
	stats.AvgLength = total / len(matches)
	return stats
}
