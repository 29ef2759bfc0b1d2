// Package report renders stored crawl records for humans and tools.
//
// A Writer takes a CrawlSummary and produces output in one format:
// SimpleWriter for terminal text, JSONWriter for programmatic
// consumption, MarkdownWriter for documentation and sharing.
// MultiWriter fans one summary out to several destinations.
package report
