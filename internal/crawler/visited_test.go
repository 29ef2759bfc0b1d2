package crawler

import (
	"fmt"
	"sync"
	"testing"
)

// TestVisitedSetCheckAndAdd tests the atomic check-and-insert contract.
func TestVisitedSetCheckAndAdd(t *testing.T) {
	t.Parallel()

	t.Run("first add returns true, second false", func(t *testing.T) {
		t.Parallel()

		v := NewVisitedSet()
		if !v.CheckAndAdd("https://a.com/page") {
			t.Error("expected first CheckAndAdd to return true")
		}
		if v.CheckAndAdd("https://a.com/page") {
			t.Error("expected second CheckAndAdd to return false")
		}
		if v.Size() != 1 {
			t.Errorf("expected size 1, got %d", v.Size())
		}
	})

	t.Run("normalized variants share one entry", func(t *testing.T) {
		t.Parallel()

		v := NewVisitedSet()
		if !v.CheckAndAdd("http://a.com") {
			t.Error("expected first CheckAndAdd to return true")
		}
		if v.CheckAndAdd("http://a.com/#top") {
			t.Error("expected fragment variant to be a duplicate")
		}
		if v.CheckAndAdd("http://A.COM/") {
			t.Error("expected host-case variant to be a duplicate")
		}
		if v.Size() != 1 {
			t.Errorf("expected size 1, got %d", v.Size())
		}
	})

	t.Run("exactly one winner under contention", func(t *testing.T) {
		t.Parallel()

		v := NewVisitedSet()
		const goroutines = 32

		var wg sync.WaitGroup
		wins := make(chan struct{}, goroutines)
		for i := 0; i < goroutines; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if v.CheckAndAdd("https://a.com/contended") {
					wins <- struct{}{}
				}
			}()
		}
		wg.Wait()
		close(wins)

		winners := 0
		for range wins {
			winners++
		}
		if winners != 1 {
			t.Errorf("expected exactly 1 winner, got %d", winners)
		}
	})
}

// TestVisitedSetContains tests the non-mutating membership check.
func TestVisitedSetContains(t *testing.T) {
	t.Parallel()

	v := NewVisitedSet()
	if v.Contains("https://a.com/page") {
		t.Error("expected Contains to be false before add")
	}

	v.CheckAndAdd("https://a.com/page")

	if !v.Contains("https://a.com/page") {
		t.Error("expected Contains to be true after add")
	}
	if !v.Contains("https://a.com/page#frag") {
		t.Error("expected Contains to normalize before lookup")
	}
	if v.Size() != 1 {
		t.Errorf("Contains must not mutate; expected size 1, got %d", v.Size())
	}
}

// TestVisitedSetClear tests emptying the set.
func TestVisitedSetClear(t *testing.T) {
	t.Parallel()

	v := NewVisitedSet()
	for i := 0; i < 10; i++ {
		v.CheckAndAdd(fmt.Sprintf("https://a.com/page/%d", i))
	}
	if v.Size() != 10 {
		t.Fatalf("expected size 10, got %d", v.Size())
	}

	v.Clear()

	if v.Size() != 0 {
		t.Errorf("expected size 0 after clear, got %d", v.Size())
	}
	if !v.CheckAndAdd("https://a.com/page/0") {
		t.Error("expected cleared URL to be addable again")
	}
}
