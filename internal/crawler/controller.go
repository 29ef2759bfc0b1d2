package crawler

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"spiderbot/internal/model"
	"spiderbot/internal/storage"
)

// Default controller tuning values.
const (
	// DefaultPopTimeout is how long a worker waits on an empty frontier
	// before concluding the crawl has drained and exiting. It is not
	// user-configurable; it only detects frontier exhaustion.
	DefaultPopTimeout = 2 * time.Second

	// DefaultStatsInterval is how often session snapshots are pushed to
	// the observer while a crawl runs.
	DefaultStatsInterval = 500 * time.Millisecond
)

// Options holds the per-session parameters passed to Start.
type Options struct {
	// Seed is the absolute URL the crawl begins from. It must use the
	// http or https scheme.
	Seed string

	// Workers is the number of concurrent crawl workers, between
	// MinWorkers and MaxWorkers.
	Workers int

	// Delay is the politeness pause each worker takes after processing
	// a URL. Zero disables the pause; negative is invalid.
	Delay time.Duration

	// RestrictDomain limits the crawl to the seed URL's host.
	RestrictDomain bool

	// MaxPages stops the session after this many URLs have been
	// processed. Zero means unlimited.
	MaxPages int
}

// validate checks the options against the rules enforced at Start.
func (o Options) validate() error {
	if !HasHTTPScheme(o.Seed) {
		return ErrInvalidSeed
	}
	if o.Workers < MinWorkers || o.Workers > MaxWorkers {
		return ErrInvalidWorkerCount
	}
	if o.Delay < 0 {
		return ErrNegativeDelay
	}
	return nil
}

// session is the run-scoped state of one crawl. It is created by Start
// and torn down when the worker pool exits. The visited set and
// frontier deliberately live on the Controller instead, so they survive
// stop/start for resumability within the process lifetime.
type session struct {
	opts Options

	// baseDomain is the seed host when the crawl is domain-restricted,
	// empty otherwise.
	baseDomain string

	// ctx is the caller's context, passed through to fetches. Stopping
	// a session does not cancel it: in-flight fetches run to
	// completion or timeout.
	ctx context.Context

	// stopCtx is cancelled by Stop. Workers check it between URLs and
	// while waiting on the frontier or sleeping, never mid-fetch.
	stopCtx    context.Context
	stopCancel context.CancelFunc

	// done is closed once every worker has exited and the session is
	// finalized.
	done chan struct{}

	// processed counts URLs handled this session, for MaxPages.
	processed int64
	procMu    sync.Mutex
}

// countProcessed increments the processed counter and reports whether
// the MaxPages budget is now exhausted.
func (s *session) countProcessed() bool {
	s.procMu.Lock()
	defer s.procMu.Unlock()

	s.processed++
	return s.opts.MaxPages > 0 && s.processed >= int64(s.opts.MaxPages)
}

// Controller owns the crawl lifecycle. It validates start parameters,
// spawns and supervises the worker pool, exposes statistics, and is the
// only component allowed to clear the visited set and frontier.
//
// A Controller is safe for concurrent use. It runs at most one session
// at a time; the visited set and frontier persist across sessions until
// Reset.
type Controller struct {
	fetcher   Fetcher
	extractor *Extractor
	sink      storage.Sink
	observer  Observer
	logger    *slog.Logger

	visited  *VisitedSet
	frontier *Frontier

	popTimeout    time.Duration
	statsInterval time.Duration

	mu      sync.Mutex
	running bool
	status  model.SessionStatus
	sess    *session
}

// ControllerOption configures a Controller.
type ControllerOption func(*Controller)

// WithFetcher replaces the default HTTP fetcher. Tests use this to
// substitute a mock.
func WithFetcher(f Fetcher) ControllerOption {
	return func(c *Controller) {
		c.fetcher = f
	}
}

// WithObserver sets the observer notified of crawl progress.
func WithObserver(o Observer) ControllerOption {
	return func(c *Controller) {
		c.observer = o
	}
}

// WithLogger sets the structured logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) ControllerOption {
	return func(c *Controller) {
		c.logger = l
	}
}

// WithPopTimeout overrides the frontier-drain detection timeout.
func WithPopTimeout(d time.Duration) ControllerOption {
	return func(c *Controller) {
		c.popTimeout = d
	}
}

// WithStatsInterval overrides the stats push interval.
func WithStatsInterval(d time.Duration) ControllerOption {
	return func(c *Controller) {
		c.statsInterval = d
	}
}

// NewController creates a Controller that persists records to sink.
func NewController(sink storage.Sink, opts ...ControllerOption) *Controller {
	c := &Controller{
		fetcher:       NewHTTPFetcher(),
		extractor:     NewExtractor(),
		sink:          sink,
		observer:      NopObserver{},
		logger:        slog.Default(),
		visited:       NewVisitedSet(),
		frontier:      NewFrontier(),
		popTimeout:    DefaultPopTimeout,
		statsInterval: DefaultStatsInterval,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Start begins a crawl session. It validates opts, pre-seeds the
// visited set from previously stored records so known URLs are not
// re-fetched, re-seeds the frontier with the seed URL, and spawns
// opts.Workers workers. It returns as soon as the pool is running;
// use Wait to block until the crawl drains.
func (c *Controller) Start(ctx context.Context, opts Options) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.running {
		return ErrAlreadyRunning
	}
	if err := opts.validate(); err != nil {
		return err
	}

	baseDomain := ""
	if opts.RestrictDomain {
		u, err := url.Parse(opts.Seed)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidSeed, err)
		}
		baseDomain = u.Host
	}

	// Resume: URLs crawled by earlier sessions are never re-fetched.
	// A sink read failure is logged and the crawl starts cold.
	if records, err := c.sink.LoadAll(ctx); err != nil {
		c.logger.Warn("failed to load stored records", "error", err)
		c.observer.OnLog(fmt.Sprintf("Error loading URLs: %v", err))
	} else if len(records) > 0 {
		for _, r := range records {
			c.visited.CheckAndAdd(r.URL)
		}
		c.observer.OnLog(fmt.Sprintf("Loaded %d URLs from storage", c.visited.Size()))
	}

	c.frontier.Clear()
	c.frontier.Push(opts.Seed)

	stopCtx, stopCancel := context.WithCancel(ctx)
	sess := &session{
		opts:       opts,
		baseDomain: baseDomain,
		ctx:        ctx,
		stopCtx:    stopCtx,
		stopCancel: stopCancel,
		done:       make(chan struct{}),
	}

	c.sess = sess
	c.running = true
	c.status = model.StatusRunning

	g := &errgroup.Group{}
	for i := 0; i < opts.Workers; i++ {
		id := i
		g.Go(func() error {
			c.runWorker(sess, id)
			return nil
		})
	}

	go c.statsLoop(sess)
	go func() {
		// Workers exit when the frontier drains or the session stops;
		// either way the session is finalized exactly once.
		_ = g.Wait()
		c.finalize(sess)
	}()

	c.logger.Info("crawler started",
		"seed", opts.Seed,
		"workers", opts.Workers,
		"delay", opts.Delay,
		"restrictDomain", opts.RestrictDomain,
	)
	c.observer.OnLog("Crawler started successfully")

	return nil
}

// Stop requests a graceful stop of the running session. It is
// idempotent and returns immediately: workers observe the stop at
// their next idle transition, so full quiescence takes up to one fetch
// timeout plus one politeness delay. In-flight fetches are not
// interrupted.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.running {
		return
	}

	c.running = false
	c.status = model.StatusStopped
	c.sess.stopCancel()

	c.logger.Info("crawler stopping")
	c.observer.OnLog("Crawler stopping...")
}

// Wait blocks until the current session has fully quiesced: every
// worker exited and the final stats snapshot was delivered. It returns
// immediately when no session was started.
func (c *Controller) Wait() {
	c.mu.Lock()
	sess := c.sess
	c.mu.Unlock()

	if sess == nil {
		return
	}
	<-sess.done
}

// Reset clears all crawl state: the visited set, the frontier, and the
// persistence sink's stored records. It fails with ErrCrawlRunning
// while a session is active.
func (c *Controller) Reset(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.running {
		return ErrCrawlRunning
	}

	c.visited.Clear()
	c.frontier.Clear()
	if err := c.sink.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear storage: %w", err)
	}

	c.status = model.StatusIdle
	c.logger.Info("crawl state cleared")
	c.observer.OnLog("Storage cleared successfully")

	return nil
}

// Stats returns a point-in-time snapshot of the session.
func (c *Controller) Stats() model.Stats {
	c.mu.Lock()
	status := c.status
	c.mu.Unlock()

	return model.Stats{
		Queued:  c.frontier.Size(),
		Visited: c.visited.Size(),
		Status:  status,
	}
}

// statsLoop pushes session snapshots to the observer on a fixed
// interval until the session stops. The final snapshot after quiescence
// is pushed by finalize.
func (c *Controller) statsLoop(sess *session) {
	ticker := time.NewTicker(c.statsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-sess.stopCtx.Done():
			return
		case <-sess.done:
			return
		case <-ticker.C:
			c.observer.OnStats(c.Stats())
		}
	}
}

// finalize marks the session over after the last worker exits. It is
// called exactly once per session, whether the crawl drained naturally
// or was stopped.
//
// A stopped session's workers can outlive a restart: Stop returns while
// in-flight fetches finish, and a new session may start meanwhile. Only
// the current session may touch controller state; a stale finalize just
// cancels its own contexts and releases its waiters. The final stats
// snapshot is pushed before done is closed, so Wait returning means the
// observer has seen it.
func (c *Controller) finalize(sess *session) {
	c.mu.Lock()
	current := c.sess == sess
	if current {
		c.running = false
		c.status = model.StatusStopped
	}
	c.mu.Unlock()

	sess.stopCancel()

	if current {
		c.observer.OnStats(c.Stats())
		c.logger.Info("crawler stopped",
			"visited", c.visited.Size(),
			"queued", c.frontier.Size(),
		)
	}
	close(sess.done)
}
