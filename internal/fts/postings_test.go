package fts

import (
	"reflect"
	"testing"
)

func TestPostingsSerializeRoundTrip(t *testing.T) {
	p := NewPostings()
	p.Insert(WordToken(FieldBody.Byte()), 0)
	p.Insert(WordToken(FieldBody.Byte()), 5)
	p.Insert(WordToken(FieldAttachment.Byte()), 2)
	p.InsertKeyword(StemmedToken(FieldBody.Byte()))

	data := p.Serialize()
	got, err := DeserializePostings(data)
	if err != nil {
		t.Fatalf("DeserializePostings: %v", err)
	}

	if got.Len() != p.Len() {
		t.Fatalf("Len() = %d, want %d", got.Len(), p.Len())
	}
	if !got.Has(WordToken(FieldBody.Byte())) {
		t.Errorf("expected WordToken(Body) bit set")
	}
	if !got.Has(StemmedToken(FieldBody.Byte())) {
		t.Errorf("expected StemmedToken(Body) bit set")
	}
	if !reflect.DeepEqual(got.Positions(FieldBody.Byte()), p.Positions(FieldBody.Byte())) {
		t.Errorf("Positions(Body) = %v, want %v", got.Positions(FieldBody.Byte()), p.Positions(FieldBody.Byte()))
	}
	if !reflect.DeepEqual(got.Positions(FieldAttachment.Byte()), p.Positions(FieldAttachment.Byte())) {
		t.Errorf("Positions(Attachment) = %v, want %v", got.Positions(FieldAttachment.Byte()), p.Positions(FieldAttachment.Byte()))
	}
}

func TestPostingsKeywordOnly(t *testing.T) {
	p := NewPostings()
	p.InsertKeyword(WordToken(FieldKeyword.Byte()))

	data := p.Serialize()
	got, err := DeserializePostings(data)
	if err != nil {
		t.Fatalf("DeserializePostings: %v", err)
	}
	if !got.Has(WordToken(FieldKeyword.Byte())) {
		t.Errorf("expected keyword bit set")
	}
	if len(got.Positions(FieldKeyword.Byte())) != 0 {
		t.Errorf("keyword-only postings must carry no positions, got %v", got.Positions(FieldKeyword.Byte()))
	}
}

func TestDeserializePostingsRejectsBadVersion(t *testing.T) {
	data := []byte{TermIndexVersion + 1, 0}
	if _, err := DeserializePostings(data); err == nil {
		t.Fatalf("expected error for mismatched version byte")
	}
}

func TestDeserializePostingsRejectsTruncatedData(t *testing.T) {
	p := NewPostings()
	p.Insert(WordToken(FieldBody.Byte()), 3)
	data := p.Serialize()

	if _, err := DeserializePostings(data[:len(data)-1]); err == nil {
		t.Fatalf("expected error for truncated postings data")
	}
}
