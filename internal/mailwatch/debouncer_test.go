package mailwatch

import (
	"sync"
	"testing"
	"time"
)

func TestDebouncerCoalescesBurstsPerPath(t *testing.T) {
	var mu sync.Mutex
	var flushes []eventKind

	d := newDebouncer(20*time.Millisecond, func(path string, kind eventKind) {
		mu.Lock()
		defer mu.Unlock()
		flushes = append(flushes, kind)
	})

	d.add("/mail/new/1", eventUpsert)
	d.add("/mail/new/1", eventUpsert)
	d.add("/mail/new/1", eventRemove)

	time.Sleep(60 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if len(flushes) != 1 {
		t.Fatalf("expected exactly one flush for repeated events on the same path, got %d", len(flushes))
	}
	if flushes[0] != eventRemove {
		t.Errorf("expected the latest event kind (remove) to win, got %v", flushes[0])
	}
}

func TestDebouncerFlushesDistinctPathsTogether(t *testing.T) {
	var mu sync.Mutex
	seen := make(map[string]bool)

	d := newDebouncer(20*time.Millisecond, func(path string, kind eventKind) {
		mu.Lock()
		defer mu.Unlock()
		seen[path] = true
	})

	d.add("/mail/new/1", eventUpsert)
	d.add("/mail/new/2", eventUpsert)

	time.Sleep(60 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if len(seen) != 2 {
		t.Fatalf("expected both distinct paths to flush, got %v", seen)
	}
}
