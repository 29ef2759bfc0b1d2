package model

import "time"

// TimestampLayout is the time format used when persisting and displaying
// crawl records. It matches the storage file format, so records written
// by one session can be re-read by the next.
const TimestampLayout = "2006-01-02 15:04:05"

// StatusFetchFailed is the status recorded when a page could not be
// fetched at all (connection refused, DNS failure, timeout). It is
// distinct from every valid HTTP status code.
const StatusFetchFailed = 0

// CrawlRecord is the immutable result of processing a single URL.
// Exactly one record is produced per URL per session; it is appended to
// the persistence sink and handed to the observer.
type CrawlRecord struct {
	// URL is the absolute, normalized URL that was fetched.
	URL string

	// Timestamp is when the fetch completed.
	Timestamp time.Time

	// Status is the HTTP status code of the response, or
	// StatusFetchFailed when the request never produced a response.
	Status int
}

// IsSuccess reports whether the record represents a 2xx response.
// Only successful responses have their links extracted.
func (r CrawlRecord) IsSuccess() bool {
	return r.Status >= 200 && r.Status < 300
}

// StatusClass returns a coarse label for the record's status, used as a
// metrics dimension and in report breakdowns.
func (r CrawlRecord) StatusClass() string {
	switch {
	case r.Status == StatusFetchFailed:
		return "failed"
	case r.Status < 300:
		return "success"
	case r.Status < 400:
		return "redirect"
	case r.Status < 500:
		return "client_error"
	default:
		return "server_error"
	}
}

// FormatTimestamp returns the record's timestamp in TimestampLayout.
func (r CrawlRecord) FormatTimestamp() string {
	return r.Timestamp.Format(TimestampLayout)
}
