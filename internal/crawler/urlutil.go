package crawler

import (
	"net/url"
	"strings"
)

// Resolve joins href against base following standard relative URL
// resolution (absolute URLs pass through, protocol-relative and
// path-relative references resolve against base, fragment-only
// references resolve to the base page). It returns false when href is
// unparseable or the resolved URL is not http or https.
//
// Schemes that can never be crawled (javascript:, mailto:, tel:,
// data:) are rejected before parsing; browsers tolerate whitespace
// around href values, so it is trimmed first.
func Resolve(base *url.URL, href string) (string, bool) {
	href = strings.TrimSpace(href)
	if href == "" || href == "#" {
		return "", false
	}
	if strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:") {
		return "", false
	}

	ref, err := url.Parse(href)
	if err != nil {
		return "", false
	}

	resolved := base.ResolveReference(ref)
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return "", false
	}

	return resolved.String(), true
}

// Accept reports whether candidate passes the domain restriction.
// An empty baseDomain accepts everything; otherwise the candidate's
// host must equal baseDomain exactly. Subdomains do not match:
// a crawl of a.com does not follow links to www.a.com.
func Accept(candidate, baseDomain string) bool {
	if baseDomain == "" {
		return true
	}

	u, err := url.Parse(candidate)
	if err != nil {
		return false
	}

	return strings.EqualFold(u.Host, baseDomain)
}

// Normalize canonicalizes a URL for deduplication. The fragment is
// dropped, scheme and host are lowercased, and an empty path becomes
// "/" so that http://example.com and http://example.com/#top dedup to
// the same visited-set key. Unparseable input is returned unchanged.
func Normalize(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}

	u.Fragment = ""
	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	if u.Path == "" {
		u.Path = "/"
	}

	return u.String()
}

// HasHTTPScheme reports whether rawURL starts with http:// or https://.
// Used for seed validation before a session starts.
func HasHTTPScheme(rawURL string) bool {
	return strings.HasPrefix(rawURL, "http://") || strings.HasPrefix(rawURL, "https://")
}
