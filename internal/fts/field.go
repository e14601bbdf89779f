// Package fts implements the full-text indexing core: per-field tokenization,
// stemming, postings accumulation, and the keyed write/delete protocol
// against a key-value store.
package fts

import "fmt"

// Field tags where in a document a token came from. It collapses to a
// single byte for storage: Body=0, Attachment=1, Keyword=2, Header(h)=3+h.
// Callers must guarantee h < 253.
type Field struct {
	kind   fieldKind
	header uint8
}

type fieldKind uint8

const (
	fieldBody fieldKind = iota
	fieldAttachment
	fieldKeyword
	fieldHeader
)

// FieldBody, FieldAttachment and FieldKeyword are the fixed field variants.
var (
	FieldBody       = Field{kind: fieldBody}
	FieldAttachment = Field{kind: fieldAttachment}
	FieldKeyword    = Field{kind: fieldKeyword}
)

// FieldHeader builds a Field for a caller-supplied header id. h must be
// less than 253; the core does not defend against larger values, and a
// larger value silently aliases another field's byte id.
func FieldHeader(h uint8) Field {
	return Field{kind: fieldHeader, header: h}
}

// Byte returns the one-byte identifier used in the on-disk layout.
func (f Field) Byte() uint8 {
	switch f.kind {
	case fieldBody:
		return 0
	case fieldAttachment:
		return 1
	case fieldKeyword:
		return 2
	default:
		return 3 + f.header
	}
}

func (f Field) String() string {
	switch f.kind {
	case fieldBody:
		return "Body"
	case fieldAttachment:
		return "Attachment"
	case fieldKeyword:
		return "Keyword"
	default:
		return fmt.Sprintf("Header(%d)", f.header)
	}
}

// TokenKind distinguishes the positional word form from the set-only
// stemmed root form.
type TokenKind uint8

const (
	// KindWord marks a token produced directly by tokenization; it carries
	// a position in the document's position stream.
	KindWord TokenKind = iota
	// KindStemmed marks the canonicalized root of a word; it is recorded
	// in the bitmap only, never positionally.
	KindStemmed
)

// TokenType packs a field id and a token kind into the single byte stored
// in a Postings bitmap entry. The bit layout (kind in the low bit, field id
// shifted left by one) is an implementation detail but must stay stable:
// changing it requires bumping TermIndexVersion.
type TokenType uint8

// WordToken builds a TokenType for the word form of the given field.
func WordToken(field uint8) TokenType {
	return TokenType(field)<<1 | TokenType(KindWord)
}

// StemmedToken builds a TokenType for the stemmed form of the given field.
func StemmedToken(field uint8) TokenType {
	return TokenType(field)<<1 | TokenType(KindStemmed)
}

// Field returns the field id encoded in t.
func (t TokenType) Field() uint8 {
	return uint8(t >> 1)
}

// Kind returns the token kind encoded in t.
func (t TokenType) Kind() TokenKind {
	return TokenKind(t & 1)
}
