package fts

import (
	"context"

	"github.com/standardbeagle/mailfts/internal/ftserr"
)

// Remove runs fts_remove: it scans every FtsIndex key belonging to
// (accountID, collection), reconstructs each key's BitmapHash, and clears
// the ones whose document id is in docs. Unlike Index, Remove never has to
// decode values since the scan is key-only; it only needs to classify and
// filter keys. Scoping to collection matters because document ids are only
// unique within a collection: the same id can denote, say, an Email in one
// collection and a Contact in another under the same account.
func (ix *Indexer) Remove(ctx context.Context, accountID uint32, collection uint8, docs DocumentSet) error {
	builder := NewBatchBuilder().WithAccountID(accountID).WithCollection(collection)
	currentDocument := uint32(0)
	haveScope := false

	flushIfFull := func() error {
		if builder.Len() < BatchFlushThreshold {
			return nil
		}
		if err := ix.flush(ctx, builder); err != nil {
			return err
		}
		builder = NewBatchBuilder().WithAccountID(accountID).WithCollection(collection)
		if haveScope {
			builder.UpdateDocument(currentDocument)
		}
		return nil
	}

	var scanErr error
	err := ix.store.Iterate(ctx, IterateParams{AccountID: accountID, Collection: &collection, KeysOnly: true}, func(key, _ []byte) (bool, error) {
		keyAccount, hash, keyCollection, documentID, derr := DecodeKey(key)
		if derr != nil {
			// Every key in the scanned range belongs to the FtsIndex
			// namespace, so one that fails length classification means
			// corruption or a layout-version skew. Not recovered here.
			scanErr = derr
			return false, derr
		}
		if keyAccount != accountID || keyCollection != collection || !docs.Contains(documentID) {
			return true, nil
		}

		if !haveScope || documentID != currentDocument {
			if err := flushIfFull(); err != nil {
				scanErr = err
				return false, err
			}
			currentDocument = documentID
			haveScope = true
			builder.UpdateDocument(documentID)
		}

		builder.Clear(hash)
		if err := flushIfFull(); err != nil {
			scanErr = err
			return false, err
		}
		return true, nil
	})
	if err != nil {
		if scanErr != nil {
			return scanErr
		}
		return ftserr.NewStoreError("iterate", err)
	}

	if !builder.IsEmpty() {
		return ix.flush(ctx, builder)
	}
	return nil
}

// RemoveAll is a no-op: it returns nil and leaves every FtsIndex key under
// accountID in place. Postings are cleared only through Remove, for the
// documents in its DocumentSet.
func (ix *Indexer) RemoveAll(ctx context.Context, accountID uint32) error {
	return nil
}
