package mailwatch

import (
	"context"
	"sync"
	"time"
)

// eventKind distinguishes a file appearing/changing from disappearing.
type eventKind int

const (
	eventUpsert eventKind = iota
	eventRemove
)

// debouncer coalesces bursts of filesystem events per path, keeping only
// the latest kind seen for each path and flushing once no new event has
// arrived for the debounce window.
type debouncer struct {
	mu      sync.Mutex
	pending map[string]eventKind
	window  time.Duration
	timer   *time.Timer
	onFlush func(path string, kind eventKind)
}

func newDebouncer(window time.Duration, onFlush func(path string, kind eventKind)) *debouncer {
	return &debouncer{
		pending: make(map[string]eventKind),
		window:  window,
		onFlush: onFlush,
	}
}

func (d *debouncer) add(path string, kind eventKind) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.pending[path] = kind
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, d.flush)
}

// run blocks until ctx is canceled. Pending events at shutdown are
// dropped rather than flushed, since flush may race a caller tearing down
// the Indexer's store concurrently.
func (d *debouncer) run(ctx context.Context, wg *sync.WaitGroup) {
	defer wg.Done()
	<-ctx.Done()

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.pending = make(map[string]eventKind)
}

func (d *debouncer) flush() {
	d.mu.Lock()
	events := d.pending
	d.pending = make(map[string]eventKind)
	d.mu.Unlock()

	for path, kind := range events {
		d.onFlush(path, kind)
	}
}
