package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"

	"spiderbot/internal/crawler"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "spiderbot"

	// DefaultWorkers is the number of concurrent crawl workers. Four
	// keeps a comfortable margin under the politeness defaults while
	// still overlapping network latency.
	DefaultWorkers = 4

	// DefaultDelay is the politeness pause between a worker's
	// consecutive fetches. One second is conservative and respectful
	// of target servers.
	DefaultDelay = 1 * time.Second

	// DefaultStorageFile is the file name of the default CSV sink,
	// placed under the XDG data directory.
	DefaultStorageFile = "crawled_urls.csv"

	// DefaultRestrictDomain keeps the crawl on the seed URL's host
	// unless the user opts out.
	DefaultRestrictDomain = true
)

// Config holds all options for a SpiderBot run. It is populated from
// defaults, an optional config file, and CLI flags, then passed through
// the application by value rather than kept in globals.
type Config struct {
	// Seed is the URL the crawl starts from. Must use http or https.
	Seed string

	// Workers is the worker pool size, between crawler.MinWorkers and
	// crawler.MaxWorkers.
	Workers int

	// Delay is the per-worker politeness pause after each processed
	// URL. Zero disables the pause.
	Delay time.Duration

	// StorageTarget is the persistence sink location. The extension
	// selects the format: .db/.sqlite/.sqlite3 for SQLite, anything
	// else for CSV.
	StorageTarget string

	// RestrictDomain limits the crawl to the seed URL's host.
	RestrictDomain bool

	// MaxPages stops the crawl after this many processed URLs.
	// Zero means crawl until the frontier drains.
	MaxPages int

	// MetricsAddr is the listen address for the Prometheus metrics
	// endpoint. Empty disables metrics serving.
	MetricsAddr string

	// Verbose enables debug-level log output.
	Verbose bool
}

// NewConfig creates a Config with default values. The defaults describe
// a polite, domain-restricted crawl persisting to the XDG data
// directory.
func NewConfig() *Config {
	return &Config{
		Workers:        DefaultWorkers,
		Delay:          DefaultDelay,
		StorageTarget:  filepath.Join(XDGDataDir(), DefaultStorageFile),
		RestrictDomain: DefaultRestrictDomain,
	}
}

// XDGDataDir returns the XDG data directory for SpiderBot.
// On Linux: ~/.local/share/spiderbot
// On macOS: ~/Library/Application Support/spiderbot
// On Windows: %LOCALAPPDATA%\spiderbot
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// Validate checks the configuration with the same rules the crawl
// controller applies at Start, so invalid input is reported before any
// session state is touched. It returns the first problem found.
func (c *Config) Validate() error {
	if !crawler.HasHTTPScheme(c.Seed) {
		return crawler.ErrInvalidSeed
	}
	if c.Workers < crawler.MinWorkers || c.Workers > crawler.MaxWorkers {
		return crawler.ErrInvalidWorkerCount
	}
	if c.Delay < 0 {
		return crawler.ErrNegativeDelay
	}
	return nil
}

// CrawlOptions converts the config into the controller's per-session
// options.
func (c *Config) CrawlOptions() crawler.Options {
	return crawler.Options{
		Seed:           c.Seed,
		Workers:        c.Workers,
		Delay:          c.Delay,
		RestrictDomain: c.RestrictDomain,
		MaxPages:       c.MaxPages,
	}
}
