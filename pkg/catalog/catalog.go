package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Record describes one ingested source file.
type Record struct {
	ID         string
	SourceID   string
	Pages      int
	Chunks     int
	IngestedAt time.Time
}

// Catalog tracks which files have been ingested and when, in a local
// sqlite database, so status reporting never has to touch the vector
// store.
type Catalog struct {
	db *sql.DB
}

func Open(path string) (*Catalog, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %v", err)
	}

	schema := `
		CREATE TABLE IF NOT EXISTS documents (
			id TEXT PRIMARY KEY,
			source_id TEXT NOT NULL UNIQUE,
			pages INTEGER NOT NULL,
			chunks INTEGER NOT NULL,
			ingested_at TIMESTAMP NOT NULL
		)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create catalog schema: %v", err)
	}

	return &Catalog{db: db}, nil
}

// Record upserts the ingestion record for a source file. Re-ingesting a
// file replaces its counts and timestamp.
func (c *Catalog) Record(ctx context.Context, sourceID string, pages, chunks int) error {
	stmt := `
		INSERT INTO documents (id, source_id, pages, chunks, ingested_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (source_id) DO UPDATE SET
			pages = excluded.pages,
			chunks = excluded.chunks,
			ingested_at = excluded.ingested_at`

	_, err := c.db.ExecContext(ctx, stmt,
		uuid.New().String(),
		sourceID,
		pages,
		chunks,
		time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to record %s: %v", sourceID, err)
	}
	return nil
}

// List returns all ingestion records, most recent first.
func (c *Catalog) List(ctx context.Context) ([]Record, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT id, source_id, pages, chunks, ingested_at
		FROM documents
		ORDER BY ingested_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list catalog: %v", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.ID, &r.SourceID, &r.Pages, &r.Chunks, &r.IngestedAt); err != nil {
			return nil, fmt.Errorf("failed to scan record: %v", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

func (c *Catalog) Close() error {
	return c.db.Close()
}
