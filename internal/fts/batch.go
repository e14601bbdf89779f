package fts

// BatchFlushThreshold is the number of buffered operations at which the
// pipeline flushes a batch to the store and starts a fresh one, rather
// than growing a single write without bound.
const BatchFlushThreshold = 1000

// BatchBuilder accumulates Operations scoped by (account_id, collection,
// document_id), the same "header then operations" shape the pipeline and
// the removal scanner both use to build writes incrementally.
type BatchBuilder struct {
	accountID  uint32
	collection uint8
	documentID uint32
	ops        []Operation
}

// NewBatchBuilder returns an empty builder.
func NewBatchBuilder() *BatchBuilder {
	return &BatchBuilder{}
}

// WithAccountID scopes subsequent operations to accountID.
func (b *BatchBuilder) WithAccountID(accountID uint32) *BatchBuilder {
	b.accountID = accountID
	return b
}

// WithCollection scopes subsequent operations to collection.
func (b *BatchBuilder) WithCollection(collection uint8) *BatchBuilder {
	b.collection = collection
	return b
}

// UpdateDocument scopes subsequent operations to documentID.
func (b *BatchBuilder) UpdateDocument(documentID uint32) *BatchBuilder {
	b.documentID = documentID
	return b
}

// SetValue appends a Set operation for hash under the builder's current
// scope.
func (b *BatchBuilder) SetValue(hash BitmapHash, value []byte) {
	b.ops = append(b.ops, Operation{
		AccountID:  b.accountID,
		Collection: b.collection,
		DocumentID: b.documentID,
		Hash:       hash,
		Op:         OpSet,
		Value:      value,
	})
}

// Clear appends a Clear operation for hash under the builder's current
// scope.
func (b *BatchBuilder) Clear(hash BitmapHash) {
	b.ops = append(b.ops, Operation{
		AccountID:  b.accountID,
		Collection: b.collection,
		DocumentID: b.documentID,
		Hash:       hash,
		Op:         OpClear,
	})
}

// Len returns the number of buffered operations.
func (b *BatchBuilder) Len() int { return len(b.ops) }

// IsEmpty reports whether the builder has no buffered operations.
func (b *BatchBuilder) IsEmpty() bool { return len(b.ops) == 0 }

// Build returns the accumulated operations as a Batch, ready for
// Store.Write.
func (b *BatchBuilder) Build() Batch {
	return Batch{Ops: b.ops}
}
