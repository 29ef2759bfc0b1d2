package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"spiderbot/internal/model"
)

// SQLiteStore is a Sink backed by a single-table SQLite database.
// Records round-trip exactly through LoadAll and survive process
// restarts, which makes this the preferred sink for long crawls.
type SQLiteStore struct {
	db     *sql.DB
	dbPath string
}

// OpenSQLiteStore opens or creates a SQLite store at the given path.
// The parent directory is created if needed and WAL mode is enabled for
// concurrent reader performance.
func OpenSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath+"?mode=rwc")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite supports one writer; worker appends serialize on this
	// single connection instead of an application-level mutex.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	s := &SQLiteStore{db: db, dbPath: dbPath}

	if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	if err := s.createTable(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return s, nil
}

// createTable creates the crawls table if it doesn't exist.
func (s *SQLiteStore) createTable() error {
	schema := `
	CREATE TABLE IF NOT EXISTS crawls (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		url TEXT NOT NULL,
		timestamp TEXT NOT NULL,
		status INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_crawls_url ON crawls(url);
	`

	_, err := s.db.ExecContext(context.Background(), schema)
	return err
}

// Append inserts one record.
func (s *SQLiteStore) Append(ctx context.Context, record model.CrawlRecord) error {
	query := `INSERT INTO crawls (url, timestamp, status) VALUES (?, ?, ?)`

	if _, err := s.db.ExecContext(ctx, query, record.URL, record.FormatTimestamp(), record.Status); err != nil {
		return fmt.Errorf("failed to insert crawl record: %w", err)
	}
	return nil
}

// LoadAll returns every stored record in insertion order.
func (s *SQLiteStore) LoadAll(ctx context.Context) ([]model.CrawlRecord, error) {
	query := `SELECT url, timestamp, status FROM crawls ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query crawl records: %w", err)
	}
	defer rows.Close()

	var records []model.CrawlRecord
	for rows.Next() {
		var (
			rec model.CrawlRecord
			ts  string
		)
		if err := rows.Scan(&rec.URL, &ts, &rec.Status); err != nil {
			return nil, fmt.Errorf("failed to scan crawl record: %w", err)
		}
		rec.Timestamp, _ = time.ParseInLocation(model.TimestampLayout, ts, time.Local)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate crawl records: %w", err)
	}

	return records, nil
}

// Clear deletes all stored records but keeps the database file.
func (s *SQLiteStore) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM crawls`); err != nil {
		return fmt.Errorf("failed to clear crawl records: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
