package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"spiderbot/internal/config"
	"spiderbot/internal/crawler"
	"spiderbot/internal/log"
	"spiderbot/internal/metrics"
	"spiderbot/internal/model"
	"spiderbot/internal/storage"
)

// NewCrawlCmd creates the crawl command.
func NewCrawlCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crawl [seed-url]",
		Short: "Crawl a website starting from the seed URL",
		Long: `Crawl fetches pages breadth-first starting from the seed URL,
following links with a configurable worker pool and politeness delay.

Every visited URL is recorded in the storage target together with its
fetch timestamp and HTTP status (0 for transport failures). URLs
already present in the storage target are never fetched again, so
repeated invocations resume rather than restart.

The crawl runs until the link frontier drains, the page budget is
reached, or the process receives SIGINT/SIGTERM. Interrupting stops
gracefully: in-flight fetches finish and are recorded.

Examples:
  # Crawl a site, staying on its domain (the default)
  spiderbot crawl https://example.com

  # Cross domain boundaries with 8 workers and a 500ms delay
  spiderbot crawl --stay-on-domain=false -w 8 -d 500ms https://example.com

  # Persist to SQLite instead of CSV
  spiderbot crawl -s crawl.db https://example.com

  # Expose Prometheus metrics while crawling
  spiderbot crawl --metrics-addr :9102 https://example.com

Configuration file (.spiderbot) example:
  seed: https://example.com
  workers: 8
  delay: 500ms
  storage: crawl.db
  stayOnDomain: true
  maxPages: 1000`,
		Args: cobra.MaximumNArgs(1),
		RunE: runCrawlCmd,
	}

	cmd.Flags().IntP("workers", "w", config.DefaultWorkers,
		fmt.Sprintf("Number of concurrent crawl workers (%d-%d)", crawler.MinWorkers, crawler.MaxWorkers))
	cmd.Flags().DurationP("delay", "d", config.DefaultDelay,
		"Politeness delay between a worker's consecutive fetches")
	cmd.Flags().StringP("storage", "s", "",
		"Storage target (CSV path, or .db/.sqlite for SQLite; default: XDG data dir)")
	cmd.Flags().Bool("stay-on-domain", config.DefaultRestrictDomain,
		"Only follow links on the seed URL's domain")
	cmd.Flags().IntP("max-pages", "p", 0,
		"Stop after this many pages (0 = crawl until the frontier drains)")
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .spiderbot in current or home directory)")
	cmd.Flags().String("metrics-addr", "",
		"Listen address for the Prometheus /metrics endpoint (empty = disabled)")

	return cmd
}

// runCrawlCmd executes the crawl command.
func runCrawlCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cfg.Verbose)
	slog.SetDefault(logger)

	// Cancelled on return so the metrics endpoint shuts down with the
	// command.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	return runCrawl(ctx, cfg, logger)
}

// buildConfig merges defaults, the optional config file, and CLI flags,
// in that order of precedence.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// If the user explicitly named a config file, it must exist.
	// Otherwise a missing .spiderbot is simply skipped.
	found := config.FindConfigFile(configPath)
	if found != "" {
		cf, err := config.LoadConfigFile(found)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", found, err)
		}
		if err := cf.Apply(cfg); err != nil {
			return nil, err
		}
	} else if configPath != "" {
		return nil, fmt.Errorf("configuration file not found: %s", configPath)
	}

	if len(args) > 0 {
		cfg.Seed = args[0]
	}

	// Flags override file values only when set on the command line.
	if cmd.Flags().Changed("workers") {
		if cfg.Workers, err = cmd.Flags().GetInt("workers"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("delay") {
		if cfg.Delay, err = cmd.Flags().GetDuration("delay"); err != nil {
			return nil, err
		}
	}
	if storageTarget, err := cmd.Flags().GetString("storage"); err != nil {
		return nil, err
	} else if storageTarget != "" {
		cfg.StorageTarget = storageTarget
	}
	if cmd.Flags().Changed("stay-on-domain") {
		if cfg.RestrictDomain, err = cmd.Flags().GetBool("stay-on-domain"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("max-pages") {
		if cfg.MaxPages, err = cmd.Flags().GetInt("max-pages"); err != nil {
			return nil, err
		}
	}
	if metricsAddr, err := cmd.Flags().GetString("metrics-addr"); err != nil {
		return nil, err
	} else if metricsAddr != "" {
		cfg.MetricsAddr = metricsAddr
	}

	cfg.Verbose = getVerboseFlag(cmd)

	return cfg, nil
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// setupLogger creates a structured logger based on verbosity setting.
func setupLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return slog.New(handler)
}

// newCrawlLogger wraps base so that every log record is also delivered
// to the observer's OnLog, keeping progress consumers in sync with the
// log stream.
func newCrawlLogger(base *slog.Logger, observer crawler.Observer) *slog.Logger {
	return slog.New(log.NewObserverHandler(base.Handler(), observer.OnLog))
}

// consoleObserver prints per-URL progress to stdout. Stats pushes are
// intentionally quiet; the final summary is printed after the crawl.
type consoleObserver struct{}

func (consoleObserver) OnCrawled(record model.CrawlRecord) {
	fmt.Printf("%s  %-6d %s\n", record.FormatTimestamp(), record.Status, record.URL)
}

func (consoleObserver) OnLog(string) {}

func (consoleObserver) OnStats(model.Stats) {}

// runCrawl executes the crawl session.
func runCrawl(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	sink, err := storage.Open(cfg.StorageTarget)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer sink.Close()

	logger.Info("storage opened", "target", cfg.StorageTarget)

	observers := []crawler.Observer{consoleObserver{}}

	if cfg.MetricsAddr != "" {
		promObserver := metrics.NewObserver()
		observers = append(observers, promObserver)
		go func() {
			if err := promObserver.Serve(ctx, cfg.MetricsAddr); err != nil {
				logger.Error("metrics endpoint failed", "addr", cfg.MetricsAddr, "error", err)
			}
		}()
		logger.Info("metrics endpoint listening", "addr", cfg.MetricsAddr)
	}

	multi := crawler.NewMultiObserver(observers...)
	logger = newCrawlLogger(logger, multi)

	ctrl := crawler.NewController(sink,
		crawler.WithObserver(multi),
		crawler.WithLogger(logger),
	)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		<-sigCh
		logger.Warn("received shutdown signal, stopping crawl")
		fmt.Fprintln(os.Stderr, "stopping... (in-flight fetches will finish)")
		ctrl.Stop()
	}()

	start := time.Now()
	if err := ctrl.Start(ctx, cfg.CrawlOptions()); err != nil {
		return err
	}
	ctrl.Wait()

	stats := ctrl.Stats()
	fmt.Printf("\nCrawl finished in %s: %d URLs visited, %d still queued\n",
		time.Since(start).Round(time.Millisecond), stats.Visited, stats.Queued)

	return nil
}
