// Package mailwatch drives fts_index/fts_remove from filesystem events
// over one or more maildir-style directories.
package mailwatch

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
)

// MessageLoader turns a message file on disk into an IndexRequest the
// watcher runs when the file is created or modified.
type MessageLoader interface {
	// Load returns the index request for the message at path.
	Load(path string) (*IndexRequest, error)
}

// IndexRequest describes one message to index: the ids it is scoped to and
// the Index func the watcher calls. The watcher itself only calls Index;
// removals go to the WithRemoveFunc callback, keyed by path.
type IndexRequest struct {
	AccountID  uint32
	Collection uint8
	DocumentID uint32
	Index      func(ctx context.Context) error
}

// Watcher watches every directory under its roots (except excluded ones),
// debounces bursts of events, and runs the loader's IndexRequest for
// created/modified files and the remove callback for removed ones.
type Watcher struct {
	roots    []string
	exclude  []string
	loader   MessageLoader
	debounce time.Duration

	onRemove func(ctx context.Context, path string) error

	fsw    *fsnotify.Watcher
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	deb *debouncer
}

// Option configures a Watcher at construction time.
type Option func(*Watcher)

// WithDebounce overrides the default 200ms debounce window.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) { w.debounce = d }
}

// WithExclude sets doublestar glob patterns (matched against paths
// relative to each watch root) that are never indexed or watched.
func WithExclude(patterns []string) Option {
	return func(w *Watcher) { w.exclude = patterns }
}

// WithRemoveFunc installs the callback run when a message file disappears.
func WithRemoveFunc(fn func(ctx context.Context, path string) error) Option {
	return func(w *Watcher) { w.onRemove = fn }
}

// New builds a Watcher over roots, using loader to turn created/modified
// files into index requests.
func New(roots []string, loader MessageLoader, opts ...Option) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("mailwatch: %w", err)
	}

	w := &Watcher{
		roots:    roots,
		loader:   loader,
		debounce: 200 * time.Millisecond,
		fsw:      fsw,
	}
	for _, opt := range opts {
		opt(w)
	}
	w.deb = newDebouncer(w.debounce, w.flushOne)

	return w, nil
}

// Run adds watches for every configured root, then blocks processing
// filesystem events until ctx is canceled.
func (w *Watcher) Run(ctx context.Context) error {
	w.ctx, w.cancel = context.WithCancel(ctx)

	for _, root := range w.roots {
		if err := w.addWatches(root); err != nil {
			return fmt.Errorf("mailwatch: watching %s: %w", root, err)
		}
	}

	w.wg.Add(1)
	go w.deb.run(w.ctx, &w.wg)

	for {
		select {
		case <-w.ctx.Done():
			w.wg.Wait()
			return nil
		case event, ok := <-w.fsw.Events:
			if !ok {
				w.wg.Wait()
				return nil
			}
			w.handleEvent(event)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				continue
			}
			log.Printf("mailwatch: watcher error: %v", err)
		}
	}
}

// Close stops the watcher and releases its fsnotify handles.
func (w *Watcher) Close() error {
	if w.cancel != nil {
		w.cancel()
	}
	return w.fsw.Close()
}

func (w *Watcher) addWatches(root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if w.shouldExclude(root, path) {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			log.Printf("mailwatch: failed to watch %s: %v", path, err)
		}
		return nil
	})
}

func (w *Watcher) shouldExclude(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	for _, pattern := range w.exclude {
		if matched, _ := doublestar.Match(pattern, rel); matched {
			return true
		}
	}
	return false
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	for _, root := range w.roots {
		if w.shouldExclude(root, event.Name) {
			return
		}
	}

	info, err := os.Stat(event.Name)
	if err != nil {
		if event.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
			w.deb.add(event.Name, eventRemove)
		}
		return
	}
	if info.IsDir() {
		if event.Op&fsnotify.Create != 0 {
			if err := w.fsw.Add(event.Name); err != nil {
				log.Printf("mailwatch: failed to watch new directory %s: %v", event.Name, err)
			}
		}
		return
	}

	switch {
	case event.Op&(fsnotify.Create|fsnotify.Write) != 0:
		w.deb.add(event.Name, eventUpsert)
	case event.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
		w.deb.add(event.Name, eventRemove)
	}
}

func (w *Watcher) flushOne(path string, kind eventKind) {
	switch kind {
	case eventUpsert:
		req, err := w.loader.Load(path)
		if err != nil {
			log.Printf("mailwatch: failed to load %s: %v", path, err)
			return
		}
		if err := req.Index(w.ctx); err != nil {
			log.Printf("mailwatch: failed to index %s: %v", path, err)
		}
	case eventRemove:
		if w.onRemove == nil {
			return
		}
		if err := w.onRemove(w.ctx, path); err != nil {
			log.Printf("mailwatch: failed to remove %s: %v", path, err)
		}
	}
}
