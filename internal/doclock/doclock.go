// Package doclock provides per-document-id locking so concurrent callers
// indexing or removing the same document serialize against each other,
// the caller-side discipline internal/fts's Indexer requires but does not
// enforce itself.
package doclock

import "sync"

// locked documents share one mutex, looked up by composite key so the
// same lock set can be used across accounts/collections without
// collisions between distinct documents that happen to share a raw id.
type key struct {
	accountID  uint32
	collection uint8
	documentID uint32
}

// Set is a sync.Map-backed collection of per-document mutexes, created
// lazily on first use and never removed (a mail server's live document
// count is bounded by its storage, not by memory pressure from idle
// mutexes).
type Set struct {
	locks sync.Map // map[key]*sync.Mutex
}

// NewSet returns an empty Set.
func NewSet() *Set {
	return &Set{}
}

// Lock acquires the mutex for (accountID, collection, documentID),
// blocking until any concurrent holder releases it. The caller must call
// the returned func to release.
func (s *Set) Lock(accountID uint32, collection uint8, documentID uint32) func() {
	k := key{accountID: accountID, collection: collection, documentID: documentID}
	actual, _ := s.locks.LoadOrStore(k, &sync.Mutex{})
	mu := actual.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}
