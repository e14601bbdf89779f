package fts

import "testing"

func TestNewBitmapHashLiteral(t *testing.T) {
	cases := []string{"a", "ab", "abc", "12345678"}
	for _, token := range cases {
		h := NewBitmapHash([]byte(token))
		if h.IsDigest() {
			t.Fatalf("token %q: expected literal form, got digest", token)
		}
		if int(h.Len) != len(token) {
			t.Fatalf("token %q: Len = %d, want %d", token, h.Len, len(token))
		}
		if string(h.literalBytes()) != token {
			t.Fatalf("token %q: literalBytes() = %q", token, h.literalBytes())
		}
	}
}

func TestNewBitmapHashDigest(t *testing.T) {
	token := []byte("a very long token that exceeds eight bytes")
	h := NewBitmapHash(token)
	if !h.IsDigest() {
		t.Fatalf("expected digest form for long token")
	}
	if h.Len != digestSentinel {
		t.Fatalf("Len = %d, want %d", h.Len, digestSentinel)
	}

	h2 := NewBitmapHash(token)
	if h != h2 {
		t.Fatalf("digest hashing is not deterministic: %v != %v", h, h2)
	}
}

func TestNewBitmapHashEightByteBoundary(t *testing.T) {
	token := []byte("exactly8")
	if len(token) != 8 {
		t.Fatalf("test setup: token must be exactly 8 bytes, got %d", len(token))
	}
	h := NewBitmapHash(token)
	if h.IsDigest() {
		t.Fatalf("8-byte token must stay literal, not become a digest")
	}
	if h.Len != 8 {
		t.Fatalf("Len = %d, want 8", h.Len)
	}
}
