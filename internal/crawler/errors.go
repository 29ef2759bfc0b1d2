package crawler

import "errors"

// Validation errors returned by Controller.Start and Controller.Reset.
// These are sentinel errors so callers can use errors.Is for
// programmatic handling while still getting readable messages.
var (
	// ErrAlreadyRunning is returned by Start when a session is active.
	ErrAlreadyRunning = errors.New("crawler is already running")

	// ErrInvalidSeed is returned by Start when the seed URL does not
	// use the http or https scheme.
	ErrInvalidSeed = errors.New("invalid seed URL: must start with http:// or https://")

	// ErrInvalidWorkerCount is returned by Start when the worker count
	// is outside the allowed range.
	ErrInvalidWorkerCount = errors.New("invalid worker count: must be between 1 and 16")

	// ErrNegativeDelay is returned by Start when the politeness delay
	// is negative. Use 0 for no delay between requests.
	ErrNegativeDelay = errors.New("invalid politeness delay: must be non-negative")

	// ErrCrawlRunning is returned by Reset while a session is active.
	// Stop the session before clearing crawl state.
	ErrCrawlRunning = errors.New("cannot reset while a crawl is running")
)

// MinWorkers and MaxWorkers bound the configurable worker pool size.
const (
	MinWorkers = 1
	MaxWorkers = 16
)
