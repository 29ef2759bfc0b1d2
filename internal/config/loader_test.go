package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// TestLoadConfigFile tests reading the YAML config file.
func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("loads all fields", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), DefaultConfigFile)
		content := `seed: https://example.com
workers: 8
delay: 500ms
storage: /tmp/crawl.db
stayOnDomain: false
maxPages: 200
metricsAddr: ":9090"
`
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatalf("write failed: %v", err)
		}

		cf, err := LoadConfigFile(path)
		if err != nil {
			t.Fatalf("load failed: %v", err)
		}

		if cf.Seed != "https://example.com" {
			t.Errorf("seed: got %q", cf.Seed)
		}
		if cf.Workers != 8 {
			t.Errorf("workers: got %d", cf.Workers)
		}
		if cf.Delay != "500ms" {
			t.Errorf("delay: got %q", cf.Delay)
		}
		if cf.Storage != "/tmp/crawl.db" {
			t.Errorf("storage: got %q", cf.Storage)
		}
		if cf.StayOnDomain == nil || *cf.StayOnDomain {
			t.Errorf("stayOnDomain: got %v", cf.StayOnDomain)
		}
		if cf.MaxPages != 200 {
			t.Errorf("maxPages: got %d", cf.MaxPages)
		}
		if cf.MetricsAddr != ":9090" {
			t.Errorf("metricsAddr: got %q", cf.MetricsAddr)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfigFile(filepath.Join(t.TempDir(), "nope"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("expected ErrConfigNotFound, got %v", err)
		}
	})

	t.Run("invalid yaml", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), DefaultConfigFile)
		if err := os.WriteFile(path, []byte("workers: [not a number"), 0o600); err != nil {
			t.Fatalf("write failed: %v", err)
		}

		if _, err := LoadConfigFile(path); err == nil {
			t.Error("expected a parse error")
		}
	})
}

// TestFileApply tests overlaying file values onto a config.
func TestFileApply(t *testing.T) {
	t.Parallel()

	t.Run("set fields override defaults", func(t *testing.T) {
		t.Parallel()

		stay := false
		cf := &File{
			Seed:         "https://example.com",
			Workers:      2,
			Delay:        "250ms",
			Storage:      "out.csv",
			StayOnDomain: &stay,
			MaxPages:     50,
		}

		cfg := NewConfig()
		if err := cf.Apply(cfg); err != nil {
			t.Fatalf("apply failed: %v", err)
		}

		if cfg.Seed != "https://example.com" {
			t.Errorf("seed: got %q", cfg.Seed)
		}
		if cfg.Workers != 2 {
			t.Errorf("workers: got %d", cfg.Workers)
		}
		if cfg.Delay != 250*time.Millisecond {
			t.Errorf("delay: got %v", cfg.Delay)
		}
		if cfg.StorageTarget != "out.csv" {
			t.Errorf("storage: got %q", cfg.StorageTarget)
		}
		if cfg.RestrictDomain {
			t.Error("expected domain restriction off")
		}
		if cfg.MaxPages != 50 {
			t.Errorf("maxPages: got %d", cfg.MaxPages)
		}
	})

	t.Run("unset fields keep current values", func(t *testing.T) {
		t.Parallel()

		cfg := NewConfig()
		before := *cfg

		if err := (&File{}).Apply(cfg); err != nil {
			t.Fatalf("apply failed: %v", err)
		}

		if *cfg != before {
			t.Errorf("empty file changed the config: %+v -> %+v", before, *cfg)
		}
	})

	t.Run("invalid delay", func(t *testing.T) {
		t.Parallel()

		cf := &File{Delay: "soon"}
		if err := cf.Apply(NewConfig()); err == nil {
			t.Error("expected an error for an unparseable delay")
		}
	})
}

// TestFindConfigFile tests the config file search order.
func TestFindConfigFile(t *testing.T) {
	t.Run("explicit path wins", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "custom.yml")
		if err := os.WriteFile(path, []byte("workers: 2\n"), 0o600); err != nil {
			t.Fatalf("write failed: %v", err)
		}

		if got := FindConfigFile(path); got != path {
			t.Errorf("got %q, want %q", got, path)
		}
	})

	t.Run("explicit path missing returns empty", func(t *testing.T) {
		if got := FindConfigFile(filepath.Join(t.TempDir(), "nope")); got != "" {
			t.Errorf("expected empty string, got %q", got)
		}
	})

	t.Run("current directory", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, DefaultConfigFile)
		if err := os.WriteFile(path, []byte("workers: 2\n"), 0o600); err != nil {
			t.Fatalf("write failed: %v", err)
		}

		oldWD, err := os.Getwd()
		if err != nil {
			t.Fatalf("getwd failed: %v", err)
		}
		if err := os.Chdir(dir); err != nil {
			t.Fatalf("chdir failed: %v", err)
		}
		t.Cleanup(func() {
			if err := os.Chdir(oldWD); err != nil {
				t.Fatalf("chdir back failed: %v", err)
			}
		})
		if got := FindConfigFile(""); got != path {
			t.Errorf("got %q, want %q", got, path)
		}
	})
}
