package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"spiderbot/internal/model"
)

func testRecord(url string, status int) model.CrawlRecord {
	ts, _ := time.ParseInLocation(model.TimestampLayout, "2026-01-02 15:04:05", time.Local)
	return model.CrawlRecord{URL: url, Timestamp: ts, Status: status}
}

// TestCSVStoreAppend tests writing records to a CSV file.
func TestCSVStoreAppend(t *testing.T) {
	t.Parallel()

	t.Run("writes header on first append", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "crawl.csv")
		store := NewCSVStore(path)

		if err := store.Append(context.Background(), testRecord("https://a.com/", 200)); err != nil {
			t.Fatalf("append failed: %v", err)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("read failed: %v", err)
		}
		lines := strings.Split(strings.TrimSpace(string(data)), "\n")
		if len(lines) != 2 {
			t.Fatalf("expected header + 1 row, got %d lines", len(lines))
		}
		if lines[0] != "URL,Timestamp,Status" {
			t.Errorf("unexpected header: %q", lines[0])
		}
		if lines[1] != "https://a.com/,2026-01-02 15:04:05,200" {
			t.Errorf("unexpected row: %q", lines[1])
		}
	})

	t.Run("no duplicate header on reopen", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "crawl.csv")

		store := NewCSVStore(path)
		if err := store.Append(context.Background(), testRecord("https://a.com/", 200)); err != nil {
			t.Fatalf("append failed: %v", err)
		}

		// A fresh store against the same file must not rewrite the header.
		store = NewCSVStore(path)
		if err := store.Append(context.Background(), testRecord("https://a.com/x", 404)); err != nil {
			t.Fatalf("append failed: %v", err)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("read failed: %v", err)
		}
		if got := strings.Count(string(data), "URL,Timestamp,Status"); got != 1 {
			t.Errorf("expected exactly one header, found %d", got)
		}
	})

	t.Run("creates parent directories", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "nested", "dir", "crawl.csv")
		store := NewCSVStore(path)

		if err := store.Append(context.Background(), testRecord("https://a.com/", 200)); err != nil {
			t.Fatalf("append failed: %v", err)
		}
		if _, err := os.Stat(path); err != nil {
			t.Errorf("expected file to exist: %v", err)
		}
	})

	t.Run("concurrent appends lose nothing", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "crawl.csv")
		store := NewCSVStore(path)

		const n = 50
		var wg sync.WaitGroup
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				rec := testRecord("https://a.com/"+string(rune('a'+i%26)), 200)
				if err := store.Append(context.Background(), rec); err != nil {
					t.Errorf("append failed: %v", err)
				}
			}(i)
		}
		wg.Wait()

		records, err := store.LoadAll(context.Background())
		if err != nil {
			t.Fatalf("load failed: %v", err)
		}
		if len(records) != n {
			t.Errorf("expected %d records, got %d", n, len(records))
		}
	})
}

// TestCSVStoreLoadAll tests reading records back.
func TestCSVStoreLoadAll(t *testing.T) {
	t.Parallel()

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "crawl.csv")
		store := NewCSVStore(path)

		want := []model.CrawlRecord{
			testRecord("https://a.com/", 200),
			testRecord("https://a.com/x", 0),
			testRecord("https://a.com/y", 503),
		}
		for _, rec := range want {
			if err := store.Append(context.Background(), rec); err != nil {
				t.Fatalf("append failed: %v", err)
			}
		}

		got, err := store.LoadAll(context.Background())
		if err != nil {
			t.Fatalf("load failed: %v", err)
		}
		if len(got) != len(want) {
			t.Fatalf("expected %d records, got %d", len(want), len(got))
		}
		for i := range want {
			if got[i].URL != want[i].URL || got[i].Status != want[i].Status {
				t.Errorf("record %d: got %+v, want %+v", i, got[i], want[i])
			}
			if !got[i].Timestamp.Equal(want[i].Timestamp) {
				t.Errorf("record %d: timestamp got %v, want %v", i, got[i].Timestamp, want[i].Timestamp)
			}
		}
	})

	t.Run("missing file yields no records", func(t *testing.T) {
		t.Parallel()

		store := NewCSVStore(filepath.Join(t.TempDir(), "does-not-exist.csv"))
		records, err := store.LoadAll(context.Background())
		if err != nil {
			t.Fatalf("expected no error for missing file, got %v", err)
		}
		if len(records) != 0 {
			t.Errorf("expected no records, got %d", len(records))
		}
	})

	t.Run("skips malformed rows", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "crawl.csv")
		content := "URL,Timestamp,Status\n" +
			"https://a.com/,2026-01-02 15:04:05,200\n" +
			"short,row\n" +
			"https://a.com/x,2026-01-02 15:04:06,not-a-number\n" +
			"https://a.com/y,2026-01-02 15:04:07,404\n"
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatalf("write failed: %v", err)
		}

		store := NewCSVStore(path)
		records, err := store.LoadAll(context.Background())
		if err != nil {
			t.Fatalf("load failed: %v", err)
		}
		if len(records) != 2 {
			t.Fatalf("expected 2 valid records, got %d: %v", len(records), records)
		}
		if records[0].URL != "https://a.com/" || records[1].URL != "https://a.com/y" {
			t.Errorf("unexpected records: %v", records)
		}
	})
}

// TestCSVStoreClear tests removing the backing file.
func TestCSVStoreClear(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "crawl.csv")
	store := NewCSVStore(path)

	if err := store.Append(context.Background(), testRecord("https://a.com/", 200)); err != nil {
		t.Fatalf("append failed: %v", err)
	}
	if err := store.Clear(context.Background()); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("expected file to be removed, got %v", err)
	}

	// Clearing an already-clean store is fine.
	if err := store.Clear(context.Background()); err != nil {
		t.Errorf("second clear failed: %v", err)
	}

	records, err := store.LoadAll(context.Background())
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("expected no records after clear, got %d", len(records))
	}
}
