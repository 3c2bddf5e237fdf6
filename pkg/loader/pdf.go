package loader

import (
	"strings"

	"github.com/ledongthuc/pdf"

	"askdocs/internal/models"
)

// readPDF extracts text page by page so chunk metadata keeps the page a
// passage came from. Pages with no extractable text are skipped.
func readPDF(path, name string) ([]models.Document, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var documents []models.Document

	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// A single unreadable page should not discard the rest.
			continue
		}

		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}

		documents = append(documents, models.Document{
			SourceID:  name,
			PageIndex: pageNum - 1,
			Text:      text,
		})
	}

	return documents, nil
}
