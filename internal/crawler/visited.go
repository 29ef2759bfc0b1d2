package crawler

import "sync"

// VisitedSet is the single deduplication authority for a crawl: a URL
// is processed at most once per session exactly because membership is
// checked and inserted under one lock. All methods are safe for
// concurrent use and none can be observed half-applied.
//
// URLs are normalized (see Normalize) before every operation, so
// representations that differ only by fragment or host case share one
// entry.
type VisitedSet struct {
	mu   sync.Mutex
	urls map[string]struct{}
}

// NewVisitedSet creates an empty VisitedSet.
func NewVisitedSet() *VisitedSet {
	return &VisitedSet{urls: make(map[string]struct{})}
}

// CheckAndAdd atomically checks membership and inserts on absence.
// It returns true when the URL was newly added (the caller should
// process it) and false when it was already present (skip it).
func (v *VisitedSet) CheckAndAdd(rawURL string) bool {
	key := Normalize(rawURL)

	v.mu.Lock()
	defer v.mu.Unlock()

	if _, ok := v.urls[key]; ok {
		return false
	}
	v.urls[key] = struct{}{}
	return true
}

// Contains reports membership without mutating the set. Workers use it
// to pre-filter extracted links before pushing them to the frontier;
// the authoritative check still happens in CheckAndAdd at pop time.
func (v *VisitedSet) Contains(rawURL string) bool {
	key := Normalize(rawURL)

	v.mu.Lock()
	defer v.mu.Unlock()

	_, ok := v.urls[key]
	return ok
}

// Clear empties the set. It must only be called while no crawl session
// is running; the Controller enforces this.
func (v *VisitedSet) Clear() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.urls = make(map[string]struct{})
}

// Size returns the number of unique URLs in the set.
func (v *VisitedSet) Size() int {
	v.mu.Lock()
	defer v.mu.Unlock()

	return len(v.urls)
}
