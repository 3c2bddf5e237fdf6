package loader

import (
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"askdocs/internal/models"
)

// readHTML strips markup and returns the visible text of a local HTML file.
func readHTML(path, name string) ([]models.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	doc, err := goquery.NewDocumentFromReader(f)
	if err != nil {
		return nil, err
	}

	doc.Find("script, style, noscript").Remove()

	var builder strings.Builder
	doc.Find("body").Each(func(_ int, s *goquery.Selection) {
		builder.WriteString(s.Text())
	})

	text := normalizeWhitespace(builder.String())
	if text == "" {
		return nil, nil
	}

	return []models.Document{{SourceID: name, PageIndex: 0, Text: text}}, nil
}

// normalizeWhitespace collapses runs of blanks inside lines but keeps line
// breaks, since the chunker snaps boundaries on newlines.
func normalizeWhitespace(s string) string {
	lines := strings.Split(s, "\n")
	var kept []string
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}
