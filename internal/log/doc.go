// Package log provides slog integration for the crawl observer.
//
// ObserverHandler wraps any slog.Handler and mirrors each record, as a
// formatted line, to a crawl observer's log callback. This keeps the
// engine free of any output concern: workers log through slog, and
// whatever observer is attached (console, metrics, a future UI) sees
// the same stream the log file does.
package log
