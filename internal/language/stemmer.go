package language

import (
	"strings"

	"github.com/surgebase/porter2"

	"github.com/standardbeagle/mailfts/internal/fts"
)

// minStemLength is the shortest word porter2 is applied to; shorter words
// are returned unchanged.
const minStemLength = 3

// PorterStemmer tokenizes and stems English text with porter2, word by
// word. It satisfies fts.Stemmer.
type PorterStemmer struct {
	tokenizer  *Tokenizer
	exclusions map[string]struct{}
}

// NewPorterStemmer returns a PorterStemmer. exclusions are words (matched
// case-insensitively) that are tokenized but never stemmed, e.g. product
// names that porter2 would otherwise mangle.
func NewPorterStemmer(exclusions ...string) *PorterStemmer {
	excl := make(map[string]struct{}, len(exclusions))
	for _, w := range exclusions {
		excl[strings.ToLower(w)] = struct{}{}
	}
	return &PorterStemmer{tokenizer: NewTokenizer(), exclusions: excl}
}

// Stem tokenizes text and returns one StemmedWord per token, bounded by
// maxTokenLength. porter2 only models English, so stemming is applied only
// when lang is LangEnglish; text in any other language is still split into
// words, just never stemmed.
func (s *PorterStemmer) Stem(text string, lang fts.Language, maxTokenLength int) []fts.StemmedWord {
	words := s.tokenizer.Tokenize(text, maxTokenLength)
	out := make([]fts.StemmedWord, 0, len(words))

	for _, word := range words {
		if lang != fts.LangEnglish || len(word) < minStemLength {
			out = append(out, fts.StemmedWord{Word: word})
			continue
		}
		if _, excluded := s.exclusions[word]; excluded {
			out = append(out, fts.StemmedWord{Word: word})
			continue
		}

		stemmed := porter2.Stem(word)
		out = append(out, fts.StemmedWord{
			Word:    word,
			Stemmed: stemmed,
			Changed: stemmed != word,
		})
	}

	return out
}
