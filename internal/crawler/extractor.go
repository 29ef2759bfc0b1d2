package crawler

import (
	"net/url"
	"strings"

	"golang.org/x/net/html"
)

// Extractor pulls candidate crawl URLs out of HTML documents.
//
// Only anchor href attributes are considered: no srcset, no script
// sources, no JavaScript-driven navigation. Links are returned in
// document order and may contain duplicates; deduplication belongs to
// the visited set, not the extractor.
type Extractor struct{}

// NewExtractor creates an Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract parses htmlBody, resolves every anchor href against base, and
// returns the absolute URLs that pass the scheme and domain filters.
// baseDomain is empty when the crawl is not domain-restricted.
//
// html.Parse never fails on malformed input; it builds a tree from
// whatever it can make sense of, so a broken page yields the parseable
// subset of its links rather than an error.
func (e *Extractor) Extract(htmlBody string, base *url.URL, baseDomain string) []string {
	doc, err := html.Parse(strings.NewReader(htmlBody))
	if err != nil {
		return nil
	}

	var links []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			if href := getAttr(n, "href"); href != "" {
				if resolved, ok := Resolve(base, href); ok && Accept(resolved, baseDomain) {
					links = append(links, resolved)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return links
}

// getAttr retrieves an attribute value from an HTML node.
func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}
