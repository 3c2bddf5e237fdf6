package pipeline

import (
	"context"
	"fmt"

	"askdocs/internal/models"
	"askdocs/internal/types"
	"askdocs/pkg/catalog"
	"askdocs/pkg/llm"
	"askdocs/pkg/retriever"
)

// Progress receives stage updates during ingestion, for progress bars.
type Progress func(stage string, done, total int)

// IngestStats summarizes one ingestion run.
type IngestStats struct {
	Documents int
	Chunks    int
	Sources   int
}

// Pipeline wires the loader, chunker, embedder, store and retriever into
// the two end-to-end flows: ingest a corpus, and answer a question about
// it. Every dependency is caller-owned and injected.
type Pipeline struct {
	Loader     types.Loader
	Chunker    types.Chunker
	Embedder   types.Embedder
	Store      types.VectorStore
	Retriever  *retriever.ThresholdRetriever
	Chat       types.ChatModel
	Catalog    *catalog.Catalog // optional
	OnProgress Progress         // optional
}

func (p *Pipeline) progress(stage string, done, total int) {
	if p.OnProgress != nil {
		p.OnProgress(stage, done, total)
	}
}

// Ingest loads the corpus, chunks it, embeds the chunks in batches and
// stores the vectors. Each source file is recorded in the catalog once all
// of its chunks are stored.
func (p *Pipeline) Ingest(ctx context.Context) (IngestStats, error) {
	documents, err := p.Loader.Load(ctx)
	if err != nil {
		return IngestStats{}, fmt.Errorf("failed to load documents: %w", err)
	}
	if len(documents) == 0 {
		return IngestStats{}, nil
	}
	p.progress("load", len(documents), len(documents))

	chunks := p.Chunker.ChunkDocuments(documents)
	p.progress("chunk", len(chunks), len(chunks))
	if len(chunks) == 0 {
		return IngestStats{Documents: len(documents)}, nil
	}

	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Content
	}

	vectors, err := p.Embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return IngestStats{}, fmt.Errorf("failed to embed chunks: %w", err)
	}
	p.progress("embed", len(vectors), len(chunks))

	if err := p.Store.Store(ctx, chunks, vectors); err != nil {
		return IngestStats{}, fmt.Errorf("failed to store chunks: %w", err)
	}
	p.progress("store", len(chunks), len(chunks))

	stats := IngestStats{Documents: len(documents), Chunks: len(chunks)}

	perSource := sourceCounts(documents, chunks)
	stats.Sources = len(perSource)

	if p.Catalog != nil {
		for source, counts := range perSource {
			if err := p.Catalog.Record(ctx, source, counts.pages, counts.chunks); err != nil {
				return stats, fmt.Errorf("failed to update catalog: %w", err)
			}
		}
	}

	return stats, nil
}

// Ask answers a question about the ingested corpus. When no match survives
// the threshold, the fixed fallback answer is returned without calling the
// chat model.
func (p *Pipeline) Ask(ctx context.Context, question string) (models.Answer, error) {
	rc, err := p.RetrieveContext(ctx, question)
	if err != nil {
		return models.Answer{}, err
	}

	if len(rc.Matches) == 0 {
		return models.Answer{Text: llm.NoContextAnswer}, nil
	}

	return p.Chat.Ask(ctx, question, rc)
}

// AskStream is Ask with a streamed answer. The retrieval context is
// returned alongside the stream so callers can render sources.
func (p *Pipeline) AskStream(ctx context.Context, question string) (<-chan string, models.RetrievalContext, error) {
	rc, err := p.RetrieveContext(ctx, question)
	if err != nil {
		return nil, models.RetrievalContext{}, err
	}

	if len(rc.Matches) == 0 {
		ch := make(chan string, 1)
		ch <- llm.NoContextAnswer
		close(ch)
		return ch, rc, nil
	}

	stream, err := p.Chat.AskStream(ctx, question, rc)
	return stream, rc, err
}

// RetrieveContext embeds the question and runs thresholded retrieval.
func (p *Pipeline) RetrieveContext(ctx context.Context, question string) (models.RetrievalContext, error) {
	vector, err := p.Embedder.EmbedQuery(ctx, question)
	if err != nil {
		return models.RetrievalContext{}, fmt.Errorf("failed to embed query: %w", err)
	}
	return p.Retriever.Retrieve(ctx, vector, p.Store)
}

type counts struct {
	pages  int
	chunks int
}

func sourceCounts(documents []models.Document, chunks []models.Chunk) map[string]counts {
	pages := make(map[string]int)
	for _, doc := range documents {
		pages[doc.SourceID]++
	}

	perSource := make(map[string]counts)
	for source, n := range pages {
		perSource[source] = counts{pages: n}
	}
	for _, chunk := range chunks {
		c := perSource[chunk.SourceID]
		c.chunks++
		perSource[chunk.SourceID] = c
	}
	return perSource
}
