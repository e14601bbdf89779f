package fts

import (
	"iter"
	"sync/atomic"
)

// DocumentSet is the caller-supplied capability used by fts_remove to
// select which documents' postings to clear during the account-wide range
// scan: a membership predicate, plus an iterator over the member ids for
// callers that need to enumerate the set (the scanner itself only tests
// membership).
type DocumentSet interface {
	Contains(documentID uint32) bool
	All() iter.Seq[uint32]
}

// documentIDSet adapts an explicit id list to DocumentSet.
type documentIDSet struct {
	ids map[uint32]struct{}
}

// NewDocumentSet builds a DocumentSet from an explicit list of document
// ids, the common case when a caller already knows exactly which
// documents it is deleting.
func NewDocumentSet(ids ...uint32) DocumentSet {
	set := make(map[uint32]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return &documentIDSet{ids: set}
}

func (d *documentIDSet) Contains(documentID uint32) bool {
	_, ok := d.ids[documentID]
	return ok
}

func (d *documentIDSet) All() iter.Seq[uint32] {
	return func(yield func(uint32) bool) {
		for id := range d.ids {
			if !yield(id) {
				return
			}
		}
	}
}

// documentIDSnapshot is an immutable set of document ids, used by
// PendingDeletions below for lock-free reads.
type documentIDSnapshot struct {
	ids map[uint32]struct{}
}

func (s *documentIDSnapshot) contains(id uint32) bool {
	_, ok := s.ids[id]
	return ok
}

// PendingDeletions is a lock-free, copy-on-write DocumentSet that accrues
// document ids to delete between explicit removal calls (e.g. while a
// mail store batches up deletions before flushing the index). Reads never
// block behind a writer; each mutation builds a fresh snapshot and swaps
// it in rather than locking the read path.
type PendingDeletions struct {
	snapshot atomic.Pointer[documentIDSnapshot]
}

// NewPendingDeletions returns an empty PendingDeletions set.
func NewPendingDeletions() *PendingDeletions {
	d := &PendingDeletions{}
	d.snapshot.Store(&documentIDSnapshot{ids: map[uint32]struct{}{}})
	return d
}

// Mark adds documentID to the set using copy-on-write, retrying the
// atomic swap if another goroutine raced it.
func (d *PendingDeletions) Mark(documentID uint32) {
	for {
		old := d.snapshot.Load()
		if _, ok := old.ids[documentID]; ok {
			return
		}
		next := &documentIDSnapshot{ids: make(map[uint32]struct{}, len(old.ids)+1)}
		for id := range old.ids {
			next.ids[id] = struct{}{}
		}
		next.ids[documentID] = struct{}{}
		if d.snapshot.CompareAndSwap(old, next) {
			return
		}
	}
}

// Contains reports whether documentID is marked, without locking.
func (d *PendingDeletions) Contains(documentID uint32) bool {
	return d.snapshot.Load().contains(documentID)
}

// All iterates the marked ids over the snapshot current at call time;
// concurrent Mark calls do not affect an iteration already underway.
func (d *PendingDeletions) All() iter.Seq[uint32] {
	snap := d.snapshot.Load()
	return func(yield func(uint32) bool) {
		for id := range snap.ids {
			if !yield(id) {
				return
			}
		}
	}
}

// Clear resets the set to empty, typically once its contents have been
// passed to fts_remove successfully.
func (d *PendingDeletions) Clear() {
	d.snapshot.Store(&documentIDSnapshot{ids: map[uint32]struct{}{}})
}

// Len reports the number of marked document ids.
func (d *PendingDeletions) Len() int {
	return len(d.snapshot.Load().ids)
}
