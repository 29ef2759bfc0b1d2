// Package metrics exposes crawl progress as Prometheus metrics.
//
// Observer implements the crawler's observer interface, so attaching it
// to a controller is all that is needed to get per-status-class crawl
// counters and live frontier/visited gauges. Serve starts a promhttp
// endpoint for scraping.
package metrics
