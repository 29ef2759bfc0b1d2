package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"spiderbot/internal/model"
)

// Observer is a crawl observer that records progress as Prometheus
// metrics. All methods are safe for concurrent use; the underlying
// prometheus types handle their own synchronization.
type Observer struct {
	registry *prometheus.Registry

	crawledTotal *prometheus.CounterVec
	errorsTotal  prometheus.Counter
	frontierSize prometheus.Gauge
	visitedURLs  prometheus.Gauge
}

// NewObserver creates an Observer with its own registry, so multiple
// crawls in one process (tests included) never collide on metric
// registration.
func NewObserver() *Observer {
	registry := prometheus.NewRegistry()

	o := &Observer{
		registry: registry,
		crawledTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "spiderbot_urls_crawled_total",
			Help: "Total number of URLs processed, by status class.",
		}, []string{"status_class"}),
		errorsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "spiderbot_errors_total",
			Help: "Total number of fetch failures (status 0 records).",
		}),
		frontierSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "spiderbot_frontier_size",
			Help: "Current number of URLs waiting in the frontier.",
		}),
		visitedURLs: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "spiderbot_visited_urls",
			Help: "Current number of unique URLs in the visited set.",
		}),
	}

	registry.MustRegister(o.crawledTotal, o.errorsTotal, o.frontierSize, o.visitedURLs)

	return o
}

// OnCrawled implements the crawl observer interface.
func (o *Observer) OnCrawled(record model.CrawlRecord) {
	o.crawledTotal.WithLabelValues(record.StatusClass()).Inc()
	if record.Status == model.StatusFetchFailed {
		o.errorsTotal.Inc()
	}
}

// OnLog implements the crawl observer interface. Log lines carry no
// metric value.
func (o *Observer) OnLog(string) {}

// OnStats implements the crawl observer interface.
func (o *Observer) OnStats(stats model.Stats) {
	o.frontierSize.Set(float64(stats.Queued))
	o.visitedURLs.Set(float64(stats.Visited))
}

// Serve exposes the observer's metrics at /metrics on addr until ctx is
// cancelled. It blocks; run it in its own goroutine.
func (o *Observer) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(o.registry, promhttp.HandlerOpts{}))

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
