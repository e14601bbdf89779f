package kvstore

import (
	"context"
	"testing"

	"github.com/standardbeagle/mailfts/internal/fts"
)

func TestWriteAndIterateRoundTrip(t *testing.T) {
	store := New()
	defer store.Close()
	ctx := context.Background()

	hash := fts.NewBitmapHash([]byte("hello"))
	builder := fts.NewBatchBuilder().WithAccountID(1).WithCollection(1).UpdateDocument(1)
	builder.SetValue(hash, []byte("postings-bytes"))

	if err := store.Write(ctx, builder.Build()); err != nil {
		t.Fatalf("Write: %v", err)
	}

	var seen int
	err := store.Iterate(ctx, fts.IterateParams{AccountID: 1}, func(key, value []byte) (bool, error) {
		seen++
		if string(value) != "postings-bytes" {
			t.Errorf("value = %q, want %q", value, "postings-bytes")
		}
		return true, nil
	})
	if err != nil {
		t.Fatalf("Iterate: %v", err)
	}
	if seen != 1 {
		t.Fatalf("seen = %d, want 1", seen)
	}
}

func TestIterateScopesToAccount(t *testing.T) {
	store := New()
	defer store.Close()
	ctx := context.Background()

	for _, account := range []uint32{1, 2} {
		builder := fts.NewBatchBuilder().WithAccountID(account).WithCollection(1).UpdateDocument(1)
		builder.SetValue(fts.NewBitmapHash([]byte("x")), []byte("v"))
		if err := store.Write(ctx, builder.Build()); err != nil {
			t.Fatalf("Write(account %d): %v", account, err)
		}
	}

	var seen int
	err := store.Iterate(ctx, fts.IterateParams{AccountID: 1}, func(key, value []byte) (bool, error) {
		seen++
		accountID, _, _, _, derr := fts.DecodeKey(key)
		if derr != nil {
			t.Fatalf("DecodeKey: %v", derr)
		}
		if accountID != 1 {
			t.Errorf("leaked key from account %d", accountID)
		}
		return true, nil
	})
	if err != nil {
		t.Fatalf("Iterate: %v", err)
	}
	if seen != 1 {
		t.Fatalf("seen = %d, want 1", seen)
	}
}

func TestClearRemovesKey(t *testing.T) {
	store := New()
	defer store.Close()
	ctx := context.Background()

	hash := fts.NewBitmapHash([]byte("x"))
	builder := fts.NewBatchBuilder().WithAccountID(1).WithCollection(1).UpdateDocument(1)
	builder.SetValue(hash, []byte("v"))
	if err := store.Write(ctx, builder.Build()); err != nil {
		t.Fatalf("Write: %v", err)
	}

	clearBuilder := fts.NewBatchBuilder().WithAccountID(1).WithCollection(1).UpdateDocument(1)
	clearBuilder.Clear(hash)
	if err := store.Write(ctx, clearBuilder.Build()); err != nil {
		t.Fatalf("Write(clear): %v", err)
	}

	if store.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", store.Len())
	}
}

func TestInstrumentedStoreCountsOperations(t *testing.T) {
	store := NewInstrumented()
	defer store.Close()
	ctx := context.Background()

	hash := fts.NewBitmapHash([]byte("x"))
	builder := fts.NewBatchBuilder().WithAccountID(1).WithCollection(1).UpdateDocument(1)
	builder.SetValue(hash, []byte("v"))
	if err := store.Write(ctx, builder.Build()); err != nil {
		t.Fatalf("Write: %v", err)
	}
	_ = store.Iterate(ctx, fts.IterateParams{AccountID: 1}, func(key, value []byte) (bool, error) {
		return true, nil
	})

	snap := store.Stats.Snapshot()
	if snap.Writes != 1 {
		t.Errorf("Writes = %d, want 1", snap.Writes)
	}
	if snap.BatchesFlushed != 1 {
		t.Errorf("BatchesFlushed = %d, want 1", snap.BatchesFlushed)
	}
	if snap.Iterations != 1 {
		t.Errorf("Iterations = %d, want 1", snap.Iterations)
	}
}
