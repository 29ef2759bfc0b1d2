// Package crawler implements the SpiderBot crawl engine.
//
// # Architecture
//
// The engine is built from small, independently testable pieces:
//
//   - URL helpers (Resolve, Accept, Normalize) for link resolution and
//     domain filtering
//   - Fetcher: one HTTP GET per URL with a fixed timeout and User-Agent
//   - Extractor: anchor href extraction from HTML
//   - VisitedSet: the single deduplication authority
//   - Frontier: blocking FIFO of URLs pending fetch
//   - Controller: session lifecycle (start, stop, reset) and the worker
//     pool that ties the pieces together
//
// # Concurrency
//
// A session runs a fixed pool of worker goroutines sharing the Frontier
// and VisitedSet. Each structure carries its own mutex and no operation
// holds both locks at once. Deduplication happens when a worker pops a
// URL, not when links are enqueued: enqueue-time filtering alone cannot
// stop two workers from popping duplicate entries that were queued
// before either was processed. The frontier may therefore transiently
// hold duplicates; the visited set guarantees each URL is fetched at
// most once per session.
//
// # Politeness
//
// Each worker sleeps for the configured delay after every processed URL,
// so the effective global fetch rate scales with worker count.
// Cancellation is cooperative: stopping a session prevents new work but
// never aborts an in-flight fetch.
package crawler
