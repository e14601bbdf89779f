package fts

import (
	"encoding/binary"
	"fmt"

	"github.com/standardbeagle/mailfts/internal/ftserr"
)

// u32Len is the width of the account_id and document_id key fields.
const u32Len = 4

// EncodeKey composes the persisted key for (accountID, hash, collection,
// documentID). The hash region is exactly Len bytes when Len is in [1,7]
// (the key's own length then uniquely identifies the literal token size),
// or 8 hash bytes followed by an explicit length byte when Len is 8 or 9
// (a literal 8-byte token and a digest are otherwise indistinguishable by
// length alone). This dual-width scheme is what lets the removal scanner
// in remove.go reconstruct a BitmapHash from key bytes without any other
// context.
func EncodeKey(accountID uint32, hash BitmapHash, collection uint8, documentID uint32) []byte {
	var hashRegion []byte
	switch {
	case hash.Len >= 1 && hash.Len <= 7:
		hashRegion = hash.literalBytes()
	case hash.Len == 8 || hash.Len == digestSentinel:
		hashRegion = append(append([]byte{}, hash.Hash[:8]...), hash.Len)
	default:
		panic(fmt.Sprintf("fts: invalid BitmapHash length %d", hash.Len))
	}

	key := make([]byte, 0, u32Len+len(hashRegion)+1+u32Len)
	key = binary.BigEndian.AppendUint32(key, accountID)
	key = append(key, hashRegion...)
	key = append(key, collection)
	key = binary.BigEndian.AppendUint32(key, documentID)
	return key
}

// DecodeKey reverses EncodeKey. It returns a ftserr.MalformedKeyError
// when the key's middle region cannot be classified as either a short
// literal token or an 8-byte hash (with explicit length byte).
func DecodeKey(key []byte) (accountID uint32, hash BitmapHash, collection uint8, documentID uint32, err error) {
	if len(key) < 2*u32Len+2 {
		return 0, BitmapHash{}, 0, 0, fmt.Errorf("fts: key too short (%d bytes)", len(key))
	}

	accountID = binary.BigEndian.Uint32(key[:u32Len])
	documentID = binary.BigEndian.Uint32(key[len(key)-u32Len:])

	// L mirrors the removal scanner's classification formula exactly:
	// key length minus the two u32 fields minus one.
	l := len(key) - (u32Len * 2) - 1

	switch {
	case l >= 1 && l <= 7:
		var h BitmapHash
		copy(h.Hash[:], key[u32Len:u32Len+l])
		h.Len = uint8(l)
		collection = key[u32Len+l]
		hash = h
	case l == 9:
		var h BitmapHash
		copy(h.Hash[:], key[u32Len:u32Len+8])
		h.Len = key[u32Len+8]
		collection = key[u32Len+9]
		hash = h
	default:
		return 0, BitmapHash{}, 0, 0, ftserr.NewMalformedKeyError(l)
	}

	return accountID, hash, collection, documentID, nil
}
