package crawler

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/net/html/charset"
)

// Fetch behavior defaults. The timeout is deliberately short: a polite
// crawler should give up on a slow page rather than hold a worker.
const (
	// DefaultUserAgent identifies SpiderBot in HTTP requests so that
	// site operators can recognize crawler traffic in their logs.
	DefaultUserAgent = "SpiderBot/2.0"

	// DefaultFetchTimeout bounds a single page fetch end to end.
	DefaultFetchTimeout = 5 * time.Second

	// DefaultMaxBodySize caps how much of a response body is read.
	// Pages larger than this are truncated, which is acceptable for
	// link extraction and prevents memory exhaustion.
	DefaultMaxBodySize = 5 * 1024 * 1024 // 5MB
)

// FetchError is a transport-level fetch failure: connection refused,
// DNS failure, or timeout. The worker maps it to a crawl record with
// status 0; it is never fatal to the session.
type FetchError struct {
	// URL is the URL whose fetch failed.
	URL string

	// Err is the underlying transport error.
	Err error
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

// Unwrap returns the underlying transport error.
func (e *FetchError) Unwrap() error {
	return e.Err
}

// Fetcher fetches a single page. Implementations return the response
// body and HTTP status code, or an error only when no response was
// received at all. A non-2xx status is a valid result, not an error.
type Fetcher interface {
	Fetch(ctx context.Context, pageURL string) (body string, status int, err error)
}

// HTTPFetcher fetches pages over plain HTTP(S) with a fixed timeout and
// identifying User-Agent. It performs exactly one GET per call and
// never retries.
type HTTPFetcher struct {
	// client is the underlying HTTP client. Its Timeout bounds the
	// whole request including body read.
	client *http.Client

	// userAgent is sent with every request.
	userAgent string

	// maxBodySize limits how many bytes of the body are read.
	maxBodySize int64
}

// HTTPFetcherOption configures an HTTPFetcher.
type HTTPFetcherOption func(*HTTPFetcher)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) HTTPFetcherOption {
	return func(f *HTTPFetcher) {
		f.client.Timeout = d
	}
}

// WithUserAgent sets a custom User-Agent header.
func WithUserAgent(ua string) HTTPFetcherOption {
	return func(f *HTTPFetcher) {
		f.userAgent = ua
	}
}

// WithMaxBodySize sets the maximum response body size to read.
func WithMaxBodySize(size int64) HTTPFetcherOption {
	return func(f *HTTPFetcher) {
		f.maxBodySize = size
	}
}

// NewHTTPFetcher creates an HTTPFetcher with default timeout,
// User-Agent, and body size limit.
func NewHTTPFetcher(opts ...HTTPFetcherOption) *HTTPFetcher {
	f := &HTTPFetcher{
		client:      &http.Client{Timeout: DefaultFetchTimeout},
		userAgent:   DefaultUserAgent,
		maxBodySize: DefaultMaxBodySize,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// Fetch performs one GET against pageURL. The body is decoded to UTF-8
// based on the Content-Type header, so link extraction works on pages
// served in legacy encodings. A body read error after the response
// arrived returns whatever was read together with the status code; the
// status is the useful part of the result.
func (f *HTTPFetcher) Fetch(ctx context.Context, pageURL string) (string, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", 0, &FetchError{URL: pageURL, Err: err}
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", 0, &FetchError{URL: pageURL, Err: err}
	}
	defer resp.Body.Close()

	limited := io.LimitReader(resp.Body, f.maxBodySize)
	decoded, err := charset.NewReader(limited, resp.Header.Get("Content-Type"))
	if err != nil {
		// Undetectable encoding; fall back to the raw bytes.
		decoded = limited
	}

	body, err := io.ReadAll(decoded)
	if err != nil {
		return string(body), resp.StatusCode, nil
	}

	return string(body), resp.StatusCode, nil
}
