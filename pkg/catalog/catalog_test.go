package catalog_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"askdocs/pkg/catalog"
)

func openCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.Open(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { cat.Close() })
	return cat
}

func TestRecordAndList(t *testing.T) {
	cat := openCatalog(t)
	ctx := context.Background()

	require.NoError(t, cat.Record(ctx, "a.pdf", 10, 42))
	require.NoError(t, cat.Record(ctx, "b.txt", 1, 3))

	records, err := cat.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)

	bySource := make(map[string]catalog.Record)
	for _, r := range records {
		bySource[r.SourceID] = r
		assert.NotEmpty(t, r.ID)
		assert.False(t, r.IngestedAt.IsZero())
	}

	assert.Equal(t, 10, bySource["a.pdf"].Pages)
	assert.Equal(t, 42, bySource["a.pdf"].Chunks)
	assert.Equal(t, 3, bySource["b.txt"].Chunks)
}

func TestRecord_ReingestReplacesCounts(t *testing.T) {
	cat := openCatalog(t)
	ctx := context.Background()

	require.NoError(t, cat.Record(ctx, "a.pdf", 10, 42))
	require.NoError(t, cat.Record(ctx, "a.pdf", 12, 50))

	records, err := cat.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1, "re-ingesting must not duplicate the row")
	assert.Equal(t, 12, records[0].Pages)
	assert.Equal(t, 50, records[0].Chunks)
}

func TestList_Empty(t *testing.T) {
	cat := openCatalog(t)

	records, err := cat.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
}
