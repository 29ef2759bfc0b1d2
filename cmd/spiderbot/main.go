// Package main provides the entry point for the SpiderBot CLI.
//
// SpiderBot is a polite, domain-scoped breadth-first web crawler. Given
// a seed URL it fetches pages concurrently, extracts outbound links,
// deduplicates visited URLs, and persists each visit with its fetch
// status.
//
// Usage:
//
//	spiderbot crawl https://example.com
//	spiderbot report --storage crawled_urls.csv
//
// See --help for all available options.
package main

// main is the entry point for SpiderBot.
func main() {
	Execute()
}
