package loader_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"askdocs/pkg/loader"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func TestNewWithConfig_MissingDir(t *testing.T) {
	_, err := loader.NewWithConfig(loader.Config{DataDir: "/nonexistent/path"})
	assert.Error(t, err)
}

func TestLoad_TextFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "notes.txt", "plain text body")
	writeFile(t, dir, "readme.md", "# heading\nmarkdown body")

	l, err := loader.NewWithConfig(loader.Config{DataDir: dir})
	require.NoError(t, err)

	docs, err := l.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, docs, 2)

	bySource := make(map[string]string)
	for _, d := range docs {
		bySource[d.SourceID] = d.Text
		assert.Equal(t, 0, d.PageIndex)
	}
	assert.Equal(t, "plain text body", bySource["notes.txt"])
	assert.Contains(t, bySource["readme.md"], "markdown body")
}

func TestLoad_HTMLStripsMarkup(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "page.html", `<html>
<head><title>t</title><style>body { color: red }</style></head>
<body>
<script>var hidden = true;</script>
<h1>Visible Heading</h1>
<p>Paragraph    with   spaces.</p>
</body>
</html>`)

	l, err := loader.NewWithConfig(loader.Config{DataDir: dir})
	require.NoError(t, err)

	docs, err := l.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, docs, 1)

	text := docs[0].Text
	assert.Contains(t, text, "Visible Heading")
	assert.Contains(t, text, "Paragraph with spaces.")
	assert.NotContains(t, text, "hidden")
	assert.NotContains(t, text, "color: red")
}

func TestLoad_SkipsUnsupportedAndEmpty(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "image.png", "\x89PNG")
	writeFile(t, dir, "empty.txt", "   \n ")
	writeFile(t, dir, "good.txt", "content")

	l, err := loader.NewWithConfig(loader.Config{DataDir: dir})
	require.NoError(t, err)

	docs, err := l.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "good.txt", docs[0].SourceID)
}

func TestLoad_ProgressCallback(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.txt", "a")
	writeFile(t, dir, "b.txt", "b")

	var loaded []string
	l, err := loader.NewWithConfig(loader.Config{
		DataDir:    dir,
		OnProgress: func(name string) { loaded = append(loaded, name) },
	})
	require.NoError(t, err)

	_, err = l.Load(context.Background())
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a.txt", "b.txt"}, loaded)
}

func TestLoad_CorruptPDFSkipped(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "broken.pdf", "not a pdf at all")
	writeFile(t, dir, "good.txt", "content")

	l, err := loader.NewWithConfig(loader.Config{DataDir: dir})
	require.NoError(t, err)

	docs, err := l.Load(context.Background())
	require.NoError(t, err, "a corrupt file must not abort the walk")
	require.Len(t, docs, 1)
	assert.Equal(t, "good.txt", docs[0].SourceID)
}
