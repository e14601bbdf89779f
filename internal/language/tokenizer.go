// Package language provides the concrete LanguageDetector, WordTokenizer,
// and Stemmer collaborators consumed by internal/fts.
package language

import (
	"strings"
	"unicode"
)

// Tokenizer splits text into lowercase runs of letters and digits, the
// simplest word boundary rule that still handles punctuation-heavy mail
// bodies (headers, signatures, quoted replies) without a full language
// model.
type Tokenizer struct{}

// NewTokenizer returns a Tokenizer. It holds no state and is safe to share.
func NewTokenizer() *Tokenizer {
	return &Tokenizer{}
}

// Tokenize splits text on any rune that is not a letter or digit, lowercases
// the result, and drops runs longer than maxTokenLength rather than
// truncating them (a truncated token would silently collide with unrelated
// short words).
func (t *Tokenizer) Tokenize(text string, maxTokenLength int) []string {
	var tokens []string
	var b strings.Builder

	flush := func() {
		if b.Len() == 0 {
			return
		}
		if b.Len() <= maxTokenLength {
			tokens = append(tokens, b.String())
		}
		b.Reset()
	}

	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToLower(r))
		} else {
			flush()
		}
	}
	flush()

	return tokens
}
