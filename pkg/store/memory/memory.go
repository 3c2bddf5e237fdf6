package memory

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"askdocs/internal/models"
)

type entry struct {
	chunk  models.Chunk
	vector []float32
}

// Store is a brute-force in-memory vector store. Scores are cosine
// similarities, so higher-is-better, the opposite convention to the
// pgvector backend. Safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	entries []entry
}

func New() *Store {
	return &Store{}
}

func (s *Store) Store(_ context.Context, chunks []models.Chunk, vectors [][]float32) error {
	if len(chunks) != len(vectors) {
		return fmt.Errorf("got %d chunks but %d vectors", len(chunks), len(vectors))
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range chunks {
		s.entries = append(s.entries, entry{chunk: chunks[i], vector: vectors[i]})
	}
	return nil
}

func (s *Store) Search(_ context.Context, vector []float32, limit int) ([]models.ScoredMatch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matches := make([]models.ScoredMatch, 0, len(s.entries))
	for _, e := range s.entries {
		matches = append(matches, models.ScoredMatch{
			Content:   e.chunk.Content,
			SourceID:  e.chunk.SourceID,
			PageIndex: e.chunk.PageIndex,
			Score:     cosine(vector, e.vector),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	if limit > 0 && limit < len(matches) {
		matches = matches[:limit]
	}
	return matches, nil
}

func (s *Store) Direction() models.ScoreDirection {
	return models.HigherIsBetter
}

// Len reports how many chunks are stored.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func (s *Store) Close() {}

func cosine(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
