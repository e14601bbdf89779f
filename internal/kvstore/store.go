// Package kvstore provides an in-memory fts.Store: a single-writer update
// goroutine serializing mutations, backed by a copy-on-write snapshot so
// Iterate never blocks behind a writer.
package kvstore

import (
	"context"
	"errors"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/standardbeagle/mailfts/internal/fts"
)

// snapshot is an immutable view of the keyspace. Writers build a new one
// and swap it in; readers load the current one once and iterate it without
// any lock.
type snapshot struct {
	entries map[string][]byte
}

// request is one queued mutation, processed by the single writer goroutine.
type request struct {
	batch    fts.Batch
	response chan error
}

// Store is an in-memory, process-local implementation of fts.Store.
// Mutations are serialized through a single goroutine; reads are
// lock-free against the most recently published snapshot.
type Store struct {
	current atomic.Pointer[snapshot]

	requests  chan request
	closeCh   chan struct{}
	doneCh    chan struct{}
	closeOnce sync.Once
}

// New returns a ready-to-use, empty Store. Call Close when done to stop the
// writer goroutine.
func New() *Store {
	s := &Store{
		requests: make(chan request, 64),
		closeCh:  make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
	s.current.Store(&snapshot{entries: map[string][]byte{}})
	go s.run()
	return s
}

func (s *Store) run() {
	defer close(s.doneCh)
	for {
		select {
		case req := <-s.requests:
			req.response <- s.apply(req.batch)
		case <-s.closeCh:
			for {
				select {
				case req := <-s.requests:
					req.response <- errors.New("kvstore: store is closed")
				default:
					return
				}
			}
		}
	}
}

// apply runs on the writer goroutine only: it builds a new snapshot from
// the current one plus batch, then publishes it.
func (s *Store) apply(batch fts.Batch) error {
	old := s.current.Load()
	next := make(map[string][]byte, len(old.entries)+len(batch.Ops))
	for k, v := range old.entries {
		next[k] = v
	}

	for _, op := range batch.Ops {
		key := string(op.Key())
		switch op.Op {
		case fts.OpSet:
			next[key] = append([]byte{}, op.Value...)
		case fts.OpClear:
			delete(next, key)
		}
	}

	s.current.Store(&snapshot{entries: next})
	return nil
}

// Write implements fts.Store.
func (s *Store) Write(ctx context.Context, batch fts.Batch) error {
	if batch.IsEmpty() {
		return nil
	}

	req := request{batch: batch, response: make(chan error, 1)}
	select {
	case s.requests <- req:
	case <-ctx.Done():
		return ctx.Err()
	case <-s.closeCh:
		return errors.New("kvstore: store is closed")
	}

	select {
	case err := <-req.response:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Iterate implements fts.Store. It walks a lock-free snapshot taken at call
// time, filtering to params.AccountID (and, if set, params.Collection) by
// decoding each key, and yields keys in sorted order for deterministic test
// behavior. Since the keyspace is in memory, KeysOnly only controls whether
// the value slice passed to visit is populated; it is always nil-safe
// either way.
func (s *Store) Iterate(ctx context.Context, params fts.IterateParams, visit func(key, value []byte) (bool, error)) error {
	snap := s.current.Load()

	keys := make([]string, 0, len(snap.entries))
	for k := range snap.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		keyBytes := []byte(k)
		accountID, _, collection, _, err := fts.DecodeKey(keyBytes)
		if err != nil || accountID != params.AccountID {
			continue
		}
		if params.Collection != nil && collection != *params.Collection {
			continue
		}

		var value []byte
		if !params.KeysOnly {
			value = snap.entries[k]
		}

		cont, err := visit(keyBytes, value)
		if err != nil {
			return err
		}
		if !cont {
			return nil
		}
	}

	return nil
}

// Len reports the number of keys currently stored, for tests and stats.
func (s *Store) Len() int {
	return len(s.current.Load().entries)
}

// Get returns the raw value stored at key, for tests.
func (s *Store) Get(key []byte) ([]byte, bool) {
	v, ok := s.current.Load().entries[string(key)]
	if !ok {
		return nil, false
	}
	return append([]byte{}, v...), true
}

// Close stops the writer goroutine. Safe to call multiple times.
func (s *Store) Close() {
	s.closeOnce.Do(func() {
		close(s.closeCh)
		<-s.doneCh
	})
}
