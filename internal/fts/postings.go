package fts

import (
	"encoding/binary"
	"fmt"
	"sort"
)

// TermIndexVersion gates the on-disk Postings format. Any change to the
// encoding below must bump this constant.
const TermIndexVersion uint8 = 1

// Postings is the per-token aggregate persisted at one BitmapHash key: a
// bitmap of (field, kind) occurrences, plus an ordered position stream for
// word-kind occurrences. Positions are keyword- and stem-exempt: a keyword
// or stemmed entry lives in the bitmap only.
type Postings struct {
	bitmap    map[TokenType]struct{}
	positions map[uint8][]int32
}

// NewPostings returns an empty Postings container.
func NewPostings() *Postings {
	return &Postings{
		bitmap:    make(map[TokenType]struct{}),
		positions: make(map[uint8][]int32),
	}
}

// Insert records a positional occurrence: it adds position to the stream
// for tt's field and adds tt to the bitmap. Callers must insert positions
// for a given field in non-decreasing order; the pipeline's single
// monotonically increasing position counter guarantees this.
func (p *Postings) Insert(tt TokenType, position int) {
	p.bitmap[tt] = struct{}{}
	p.positions[tt.Field()] = append(p.positions[tt.Field()], int32(position))
}

// InsertKeyword records a set-only occurrence: tt is added to the bitmap
// with no accompanying position.
func (p *Postings) InsertKeyword(tt TokenType) {
	p.bitmap[tt] = struct{}{}
}

// Has reports whether tt is present in the bitmap.
func (p *Postings) Has(tt TokenType) bool {
	_, ok := p.bitmap[tt]
	return ok
}

// Positions returns the recorded positions for field, in insertion order.
func (p *Postings) Positions(field uint8) []int32 {
	return p.positions[field]
}

// Len reports the number of distinct (field, kind) bitmap entries.
func (p *Postings) Len() int {
	return len(p.bitmap)
}

// Serialize produces the stable on-disk byte form:
// [version:1][bitmap count:uvarint][bitmap entries: 1 byte each, sorted]
// [field-group count:uvarint]
//
//	per group: [field:1][position count:uvarint][delta-encoded positions:uvarint...]
func (p *Postings) Serialize() []byte {
	entries := make([]TokenType, 0, len(p.bitmap))
	for tt := range p.bitmap {
		entries = append(entries, tt)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i] < entries[j] })

	fields := make([]uint8, 0, len(p.positions))
	for field, positions := range p.positions {
		if len(positions) > 0 {
			fields = append(fields, field)
		}
	}
	sort.Slice(fields, func(i, j int) bool { return fields[i] < fields[j] })

	buf := make([]byte, 0, 16+len(entries)+len(fields)*4)
	buf = append(buf, TermIndexVersion)

	buf = binary.AppendUvarint(buf, uint64(len(entries)))
	for _, tt := range entries {
		buf = append(buf, byte(tt))
	}

	buf = binary.AppendUvarint(buf, uint64(len(fields)))
	for _, field := range fields {
		positions := p.positions[field]
		buf = append(buf, field)
		buf = binary.AppendUvarint(buf, uint64(len(positions)))
		var prev int32
		for _, pos := range positions {
			buf = binary.AppendUvarint(buf, uint64(pos-prev))
			prev = pos
		}
	}

	return buf
}

// DeserializePostings parses the byte form produced by Serialize. It
// rejects data with an unrecognized version byte and never panics on
// malformed input.
func DeserializePostings(data []byte) (*Postings, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("fts: empty postings value")
	}
	if data[0] != TermIndexVersion {
		return nil, fmt.Errorf("fts: unsupported postings version %d", data[0])
	}
	rest := data[1:]

	p := NewPostings()

	entryCount, n, err := readUvarint(rest)
	if err != nil {
		return nil, fmt.Errorf("fts: malformed bitmap header: %w", err)
	}
	rest = rest[n:]

	for i := uint64(0); i < entryCount; i++ {
		if len(rest) < 1 {
			return nil, fmt.Errorf("fts: truncated bitmap entry")
		}
		p.bitmap[TokenType(rest[0])] = struct{}{}
		rest = rest[1:]
	}

	groupCount, n, err := readUvarint(rest)
	if err != nil {
		return nil, fmt.Errorf("fts: malformed position group header: %w", err)
	}
	rest = rest[n:]

	for i := uint64(0); i < groupCount; i++ {
		if len(rest) < 1 {
			return nil, fmt.Errorf("fts: truncated position group")
		}
		field := rest[0]
		rest = rest[1:]

		count, n, err := readUvarint(rest)
		if err != nil {
			return nil, fmt.Errorf("fts: malformed position count: %w", err)
		}
		rest = rest[n:]

		positions := make([]int32, 0, count)
		var prev int32
		for j := uint64(0); j < count; j++ {
			delta, n, err := readUvarint(rest)
			if err != nil {
				return nil, fmt.Errorf("fts: malformed position delta: %w", err)
			}
			rest = rest[n:]
			prev += int32(delta)
			positions = append(positions, prev)
		}
		if len(positions) > 0 {
			p.positions[field] = positions
		}
	}

	return p, nil
}

func readUvarint(buf []byte) (uint64, int, error) {
	v, n := binary.Uvarint(buf)
	if n <= 0 {
		return 0, 0, fmt.Errorf("invalid uvarint")
	}
	return v, n, nil
}
