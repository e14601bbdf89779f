package fts

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// digestSentinel is the Len value meaning "hash is an 8-byte digest of a
// token longer than 8 bytes" rather than a literal token.
const digestSentinel = 9

// BitmapHash is the compact key form for a token: literal bytes for short
// tokens (len <= 8, exact matches), or an 8-byte digest for longer ones
// (len == digestSentinel). Equality and hashing use (Hash, Len) together.
type BitmapHash struct {
	Hash [8]byte
	Len  uint8
}

// NewBitmapHash builds the key for token. Tokens of 8 bytes or fewer are
// stored literally so short-token matches stay exact; longer tokens are
// reduced to a 64-bit xxhash digest, which the surrounding query planner is
// expected to tolerate rare collisions on.
func NewBitmapHash(token []byte) BitmapHash {
	if len(token) <= 8 {
		var h BitmapHash
		copy(h.Hash[:], token)
		h.Len = uint8(len(token))
		return h
	}
	var h BitmapHash
	binary.BigEndian.PutUint64(h.Hash[:], xxhash.Sum64(token))
	h.Len = digestSentinel
	return h
}

// IsDigest reports whether h stores a collision-prone digest rather than a
// literal token.
func (h BitmapHash) IsDigest() bool {
	return h.Len == digestSentinel
}

// literalBytes returns the meaningful prefix of Hash for a literal-form key
// (undefined for digest-form keys).
func (h BitmapHash) literalBytes() []byte {
	return h.Hash[:h.Len]
}
