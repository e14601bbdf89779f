package kvstore

import (
	"context"
	"sync/atomic"

	"github.com/standardbeagle/mailfts/internal/fts"
)

// Stats holds simple atomic operation counters for a Store: atomic.Int64
// fields, no locks.
type Stats struct {
	writes         atomic.Int64
	batchesFlushed atomic.Int64
	clears         atomic.Int64
	iterations     atomic.Int64
}

// InstrumentedStore wraps a Store, recording operation counts without
// changing its behavior.
type InstrumentedStore struct {
	*Store
	Stats Stats
}

// NewInstrumented wraps a freshly created Store with counters attached.
func NewInstrumented() *InstrumentedStore {
	return &InstrumentedStore{Store: New()}
}

// Write delegates to the wrapped Store, then records per-operation counts.
func (is *InstrumentedStore) Write(ctx context.Context, batch fts.Batch) error {
	if err := is.Store.Write(ctx, batch); err != nil {
		return err
	}
	is.Stats.writes.Add(int64(len(batch.Ops)))
	is.Stats.batchesFlushed.Add(1)
	for _, op := range batch.Ops {
		if op.Op == fts.OpClear {
			is.Stats.clears.Add(1)
		}
	}
	return nil
}

// Iterate delegates to the wrapped Store, then records one iteration.
func (is *InstrumentedStore) Iterate(ctx context.Context, params fts.IterateParams, visit func(key, value []byte) (bool, error)) error {
	is.Stats.iterations.Add(1)
	return is.Store.Iterate(ctx, params, visit)
}

// Snapshot is a point-in-time copy of Stats suitable for reporting.
type Snapshot struct {
	Writes         int64
	BatchesFlushed int64
	Clears         int64
	Iterations     int64
}

// Snapshot reads all counters atomically. Each counter is read
// individually; the group is not a consistent point-in-time transaction.
func (s *Stats) Snapshot() Snapshot {
	return Snapshot{
		Writes:         s.writes.Load(),
		BatchesFlushed: s.batchesFlushed.Load(),
		Clears:         s.clears.Load(),
		Iterations:     s.iterations.Load(),
	}
}
