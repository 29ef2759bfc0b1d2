package storage

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"spiderbot/internal/model"
)

// csvHeader is the first line of every storage file.
var csvHeader = []string{"URL", "Timestamp", "Status"}

// CSVStore is a Sink backed by an append-mode CSV file. The file grows
// by one line per crawled URL and is created, header first, on the
// first append. A mutex serializes writes from concurrent workers.
type CSVStore struct {
	mu   sync.Mutex
	path string
}

// NewCSVStore creates a CSVStore for the given file path. The file is
// not touched until the first Append.
func NewCSVStore(path string) *CSVStore {
	return &CSVStore{path: path}
}

// Append writes one record as a CSV line, creating the file with its
// header on first use.
func (s *CSVStore) Append(_ context.Context, record model.CrawlRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, statErr := os.Stat(s.path)
	isNew := os.IsNotExist(statErr)

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create storage directory: %w", err)
		}
	}

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600) //nolint:gosec // User-provided storage path is intentional
	if err != nil {
		return fmt.Errorf("failed to open storage file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if isNew {
		if err := w.Write(csvHeader); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}
	if err := w.Write([]string{record.URL, record.FormatTimestamp(), strconv.Itoa(record.Status)}); err != nil {
		return fmt.Errorf("failed to write record: %w", err)
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush record: %w", err)
	}

	return nil
}

// LoadAll reads every stored record in file order. A missing file is an
// empty store, not an error. Malformed lines are skipped rather than
// failing the whole load: one corrupt row must not block resumption.
func (s *CSVStore) LoadAll(_ context.Context) ([]model.CrawlRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(s.path) //nolint:gosec // User-provided storage path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open storage file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read storage file: %w", err)
	}

	records := make([]model.CrawlRecord, 0, len(rows))
	for i, row := range rows {
		if i == 0 || len(row) < 3 {
			// Header line or short row.
			continue
		}

		status, err := strconv.Atoi(row[2])
		if err != nil {
			continue
		}

		// A bad timestamp keeps the record; the URL is what matters
		// for resumption.
		ts, _ := time.ParseInLocation(model.TimestampLayout, row[1], time.Local)

		records = append(records, model.CrawlRecord{
			URL:       row[0],
			Timestamp: ts,
			Status:    status,
		})
	}

	return records, nil
}

// Clear removes the storage file. Clearing a store that was never
// written to succeeds.
func (s *CSVStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove storage file: %w", err)
	}
	return nil
}

// Close implements Sink. The file is opened per append, so there is
// nothing to release.
func (s *CSVStore) Close() error {
	return nil
}
