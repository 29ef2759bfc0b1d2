package crawler

import (
	"context"
	"sync"
	"time"
)

// Frontier is the queue of URLs discovered but not yet fetched. It is a
// blocking FIFO safe for concurrent producers and consumers: no push is
// lost and no URL is popped twice.
//
// The frontier does not deduplicate. The same URL may be pushed several
// times before any worker processes it; the VisitedSet filters
// duplicates when workers pop.
type Frontier struct {
	mu    sync.Mutex
	items []string

	// wake is a capacity-1 signal channel. Push sends a token after
	// appending so that one blocked Pop rechecks the queue; Pop
	// re-signals when items remain so wakeups propagate to other
	// waiting consumers.
	wake chan struct{}
}

// NewFrontier creates an empty Frontier.
func NewFrontier() *Frontier {
	return &Frontier{wake: make(chan struct{}, 1)}
}

// Push appends a URL to the back of the queue and wakes one waiting
// consumer. It never blocks.
func (f *Frontier) Push(rawURL string) {
	f.mu.Lock()
	f.items = append(f.items, rawURL)
	f.mu.Unlock()

	f.signal()
}

// Pop removes and returns the URL at the front of the queue. When the
// queue is empty it blocks until a URL arrives, the timeout elapses, or
// ctx is cancelled. The second return value is false when Pop gave up
// without a URL: workers treat that as "frontier drained" and exit.
func (f *Frontier) Pop(ctx context.Context, timeout time.Duration) (string, bool) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	for {
		f.mu.Lock()
		if len(f.items) > 0 {
			item := f.items[0]
			f.items = f.items[1:]
			remaining := len(f.items)
			f.mu.Unlock()

			if remaining > 0 {
				f.signal()
			}
			return item, true
		}
		f.mu.Unlock()

		select {
		case <-ctx.Done():
			return "", false
		case <-timer.C:
			return "", false
		case <-f.wake:
			// Recheck; another consumer may have taken the item.
		}
	}
}

// Size returns the number of URLs currently queued.
func (f *Frontier) Size() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.items)
}

// Clear discards all queued URLs.
func (f *Frontier) Clear() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.items = nil
}

// signal performs a non-blocking send on the wake channel.
func (f *Frontier) signal() {
	select {
	case f.wake <- struct{}{}:
	default:
	}
}
