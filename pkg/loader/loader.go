package loader

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"askdocs/internal/models"
)

// Config controls where documents are loaded from.
type Config struct {
	DataDir string
	// OnProgress is called once per loaded file.
	OnProgress func(name string)
}

// DirLoader walks a directory and extracts text from every supported file.
// PDFs produce one Document per page; HTML, text and Markdown files produce
// a single Document with page index 0.
type DirLoader struct {
	config Config
}

func NewWithConfig(config Config) (*DirLoader, error) {
	if config.DataDir == "" {
		config.DataDir = "data"
	}
	info, err := os.Stat(config.DataDir)
	if err != nil {
		return nil, fmt.Errorf("data directory %s: %v", config.DataDir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", config.DataDir)
	}
	return &DirLoader{config: config}, nil
}

// Load reads every supported file under the data directory. Files that
// fail to parse are logged and skipped so one corrupt file does not abort
// the whole ingestion.
func (l *DirLoader) Load(ctx context.Context) ([]models.Document, error) {
	var documents []models.Document

	err := filepath.WalkDir(l.config.DataDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		name := d.Name()
		var docs []models.Document
		var loadErr error

		switch strings.ToLower(filepath.Ext(path)) {
		case ".pdf":
			docs, loadErr = readPDF(path, name)
		case ".html", ".htm":
			docs, loadErr = readHTML(path, name)
		case ".txt", ".md":
			docs, loadErr = readText(path, name)
		default:
			return nil
		}

		if loadErr != nil {
			log.Printf("skipping %s: %v", name, loadErr)
			return nil
		}

		documents = append(documents, docs...)
		if l.config.OnProgress != nil {
			l.config.OnProgress(name)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %v", l.config.DataDir, err)
	}

	return documents, nil
}

func readText(path, name string) ([]models.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	text := strings.TrimSpace(string(data))
	if text == "" {
		return nil, nil
	}
	return []models.Document{{SourceID: name, PageIndex: 0, Text: text}}, nil
}
