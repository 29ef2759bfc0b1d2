package crawler

import "spiderbot/internal/model"

// Observer receives crawl progress notifications. The engine pushes one
// OnCrawled per processed URL, OnLog for noteworthy events, and OnStats
// on a fixed interval while a session runs.
//
// Implementations must be safe for concurrent use: workers call
// OnCrawled and OnLog from multiple goroutines. Callbacks should return
// quickly; a slow observer slows the whole pool.
type Observer interface {
	// OnCrawled is invoked once per processed URL with its final record.
	OnCrawled(record model.CrawlRecord)

	// OnLog is invoked with a human-readable progress or error message.
	OnLog(message string)

	// OnStats is invoked with a session snapshot at least every 500ms
	// while a session runs, and once more after it ends.
	OnStats(stats model.Stats)
}

// NopObserver is an Observer that discards all notifications.
// It is the default when no observer is configured.
type NopObserver struct{}

// OnCrawled implements Observer.
func (NopObserver) OnCrawled(model.CrawlRecord) {}

// OnLog implements Observer.
func (NopObserver) OnLog(string) {}

// OnStats implements Observer.
func (NopObserver) OnStats(model.Stats) {}

// MultiObserver fans notifications out to several observers in order.
// It lets the CLI combine console output with metrics collection.
type MultiObserver struct {
	observers []Observer
}

// NewMultiObserver creates an Observer that forwards to all the given
// observers.
func NewMultiObserver(observers ...Observer) *MultiObserver {
	return &MultiObserver{observers: observers}
}

// OnCrawled implements Observer.
func (m *MultiObserver) OnCrawled(record model.CrawlRecord) {
	for _, o := range m.observers {
		o.OnCrawled(record)
	}
}

// OnLog implements Observer.
func (m *MultiObserver) OnLog(message string) {
	for _, o := range m.observers {
		o.OnLog(message)
	}
}

// OnStats implements Observer.
func (m *MultiObserver) OnStats(stats model.Stats) {
	for _, o := range m.observers {
		o.OnStats(stats)
	}
}
