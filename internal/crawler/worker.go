package crawler

import (
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"spiderbot/internal/model"
)

// runWorker is the loop executed by each member of the worker pool.
//
// A worker repeats: pop a URL from the frontier, claim it in the
// visited set, fetch it, extract links, record the result, then take
// the politeness pause. It exits when the frontier stays empty for the
// pop timeout (the crawl has drained; this is normal termination) or
// when the session is stopped.
func (c *Controller) runWorker(sess *session, id int) {
	logger := c.logger.With("worker", id)

	for sess.stopCtx.Err() == nil {
		rawURL, ok := c.frontier.Pop(sess.stopCtx, c.popTimeout)
		if !ok {
			logger.Debug("frontier drained, worker exiting")
			return
		}

		processed := c.processURL(sess, logger, rawURL)
		if !processed {
			// Duplicate pop; skip the politeness pause and go straight
			// back to the frontier.
			continue
		}

		if sess.countProcessed() {
			logger.Info("page budget reached, stopping crawl", "maxPages", sess.opts.MaxPages)
			c.Stop()
			return
		}

		if sess.opts.Delay > 0 {
			select {
			case <-sess.stopCtx.Done():
				return
			case <-time.After(sess.opts.Delay):
			}
		}
	}
}

// processURL handles one popped URL end to end and reports whether it
// was actually processed (false means it was a duplicate).
//
// Every failure inside this method is local to the URL: fetch errors
// become status-0 records, persistence errors are logged, and panics
// are recovered. A single bad URL must never take down a worker.
func (c *Controller) processURL(sess *session, logger *slog.Logger, rawURL string) (processed bool) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("worker recovered from panic", "url", rawURL, "panic", r)
			c.observer.OnLog(fmt.Sprintf("Worker error: %v", r))
		}
	}()

	// The authoritative dedup check happens here, at pop time. The same
	// URL may have been pushed more than once before any worker got to
	// it; only the first pop wins.
	if !c.visited.CheckAndAdd(rawURL) {
		return false
	}

	body, status, err := c.fetcher.Fetch(sess.ctx, rawURL)
	if err != nil {
		status = model.StatusFetchFailed
		logger.Warn("fetch failed", "url", rawURL, "error", err)
		c.observer.OnLog(fmt.Sprintf("Error crawling %s: %v", rawURL, err))
	}

	record := model.CrawlRecord{
		URL:       rawURL,
		Timestamp: time.Now(),
		Status:    status,
	}

	var links []string
	if err == nil && record.IsSuccess() {
		if base, perr := url.Parse(rawURL); perr == nil {
			links = c.extractor.Extract(body, base, sess.baseDomain)
		}
	}

	// A failed append loses one record, not the session.
	if serr := c.sink.Append(sess.ctx, record); serr != nil {
		logger.Warn("failed to persist record", "url", rawURL, "error", serr)
		c.observer.OnLog(fmt.Sprintf("Error saving %s: %v", rawURL, serr))
	}

	c.observer.OnCrawled(record)
	c.observer.OnLog(fmt.Sprintf("Crawled: %s (Status: %d)", rawURL, status))
	logger.Debug("crawled", "url", rawURL, "status", status, "links", len(links))

	// Pushing does not mark visited; that stays with the pop-time
	// check. Contains here only trims obvious duplicates early.
	for _, link := range links {
		if !c.visited.Contains(link) {
			c.frontier.Push(link)
		}
	}

	return true
}
