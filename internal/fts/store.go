package fts

import "context"

// ValueOp is the kind of mutation an Operation applies to a key.
type ValueOp uint8

const (
	// OpSet writes Value at the operation's key.
	OpSet ValueOp = iota
	// OpClear removes whatever is stored at the operation's key.
	OpClear
)

// Operation is one write against the FtsIndex namespace: set a token's
// serialized Postings, or clear it outright.
type Operation struct {
	AccountID  uint32
	Collection uint8
	DocumentID uint32
	Hash       BitmapHash
	Op         ValueOp
	Value      []byte
}

// Key returns the persisted key this operation applies to.
func (o Operation) Key() []byte {
	return EncodeKey(o.AccountID, o.Hash, o.Collection, o.DocumentID)
}

// Batch is a bounded group of operations flushed atomically by the store.
// Write ordering within a batch is unspecified; atomicity is per-batch.
type Batch struct {
	Ops []Operation
}

// IsEmpty reports whether the batch has no operations.
func (b Batch) IsEmpty() bool { return len(b.Ops) == 0 }

// IterateParams scopes a range scan to one account's FtsIndex keys,
// optionally narrowed to a single collection. KeysOnly is a hint the store
// may use to skip loading values, mirroring the "no_values" key-only scan
// hint consumed by the removal scanner.
type IterateParams struct {
	AccountID uint32
	// Collection, when non-nil, restricts the scan to keys carrying this
	// collection byte. Left nil, the scan covers every collection under
	// AccountID.
	Collection *uint8
	KeysOnly   bool
}

// Store is the black-box key-value collaborator the pipeline writes
// through and scans. Implementations suspend the caller at write and
// iterate; ordering within one caller's batch sequence must be preserved,
// but there is no cross-caller ordering guarantee.
type Store interface {
	// Write commits batch. Ordering of operations within the batch is
	// unspecified; the whole batch is atomic.
	Write(ctx context.Context, batch Batch) error
	// Iterate scans keys (and, unless params.KeysOnly, values) matching
	// params, calling visit for each. Iterate stops early if visit
	// returns false or a non-nil error.
	Iterate(ctx context.Context, params IterateParams, visit func(key, value []byte) (bool, error)) error
}
