package fts

import (
	"context"
	"errors"

	"github.com/standardbeagle/mailfts/internal/ftserr"
)

// Verify scans every posting stored under accountID and checks that each
// value parses under the current term index version and carries at least
// one bitmap entry. It returns the number of postings checked. A value
// that fails to parse stops the scan with a ftserr.DeserializeError
// naming the offending key; like the removal scanner's malformed-key
// case, this signals corruption or a format-version skew rather than a
// condition the core recovers from.
func (ix *Indexer) Verify(ctx context.Context, accountID uint32) (int, error) {
	checked := 0
	err := ix.store.Iterate(ctx, IterateParams{AccountID: accountID}, func(key, value []byte) (bool, error) {
		postings, derr := DeserializePostings(value)
		if derr != nil {
			return false, ftserr.NewDeserializeError(key, derr)
		}
		if postings.Len() == 0 {
			return false, ftserr.NewDeserializeError(key, errors.New("postings carry no bitmap entries"))
		}
		checked++
		return true, nil
	})
	if err != nil {
		var de *ftserr.DeserializeError
		if errors.As(err, &de) {
			return checked, err
		}
		return checked, ftserr.NewStoreError("iterate", err)
	}
	return checked, nil
}
