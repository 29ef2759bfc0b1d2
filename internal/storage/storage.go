package storage

import (
	"context"
	"path/filepath"
	"strings"

	"spiderbot/internal/model"
)

// Sink is the persistence contract for crawl records. Appends must be
// safe under concurrent calls from multiple workers; both provided
// implementations serialize writes internally.
type Sink interface {
	// Append stores one record. Records are immutable once appended.
	Append(ctx context.Context, record model.CrawlRecord) error

	// LoadAll returns every stored record in append order. A sink that
	// has never been written to returns an empty slice, not an error.
	LoadAll(ctx context.Context) ([]model.CrawlRecord, error)

	// Clear discards all stored records.
	Clear(ctx context.Context) error

	// Close releases any resources held by the sink.
	Close() error
}

// Open creates a Sink for the given storage target. Targets ending in
// .db, .sqlite, or .sqlite3 open a SQLite database; anything else is
// treated as a CSV file path.
func Open(target string) (Sink, error) {
	switch strings.ToLower(filepath.Ext(target)) {
	case ".db", ".sqlite", ".sqlite3":
		return OpenSQLiteStore(target)
	default:
		return NewCSVStore(target), nil
	}
}
