package fts

import (
	"context"
	"strings"
)

// memStore is a minimal in-process Store used only by this package's own
// tests, so fts stays free of a dependency on internal/kvstore.
type memStore struct {
	data map[string][]byte
}

func newMemStore() *memStore {
	return &memStore{data: make(map[string][]byte)}
}

func (s *memStore) Write(_ context.Context, batch Batch) error {
	for _, op := range batch.Ops {
		key := string(op.Key())
		switch op.Op {
		case OpSet:
			s.data[key] = append([]byte{}, op.Value...)
		case OpClear:
			delete(s.data, key)
		}
	}
	return nil
}

func (s *memStore) Iterate(_ context.Context, params IterateParams, visit func(key, value []byte) (bool, error)) error {
	for k, v := range s.data {
		keyBytes := []byte(k)
		accountID, _, collection, _, err := DecodeKey(keyBytes)
		if err != nil || accountID != params.AccountID {
			continue
		}
		if params.Collection != nil && collection != *params.Collection {
			continue
		}
		var value []byte
		if !params.KeysOnly {
			value = v
		}
		cont, err := visit(keyBytes, value)
		if err != nil {
			return err
		}
		if !cont {
			return nil
		}
	}
	return nil
}

// stubTokenizer splits on whitespace only, enough for deterministic tests.
type stubTokenizer struct{}

func (stubTokenizer) Tokenize(text string, maxTokenLength int) []string {
	var out []string
	for _, word := range strings.Fields(text) {
		word = strings.ToLower(word)
		if len(word) <= maxTokenLength {
			out = append(out, word)
		}
	}
	return out
}

// stubStemmer "stems" by dropping the last byte of words longer than 4 bytes, so tests
// can assert on Changed deterministically without depending on porter2's
// real English rules.
type stubStemmer struct{}

func (stubStemmer) Stem(text string, lang Language, maxTokenLength int) []StemmedWord {
	var out []StemmedWord
	for _, word := range strings.Fields(text) {
		word = strings.ToLower(word)
		if len(word) > maxTokenLength {
			continue
		}
		if len(word) > 4 {
			stem := word[:len(word)-1]
			out = append(out, StemmedWord{Word: word, Stemmed: stem, Changed: true})
		} else {
			out = append(out, StemmedWord{Word: word})
		}
	}
	return out
}

// stubDetector reports LangEnglish for any non-blank text and LangUnknown
// for blank text, ignoring minScore. It only counts calls: once Detect has
// been called, MostFrequentLanguage reports LangEnglish.
type stubDetector struct {
	count int
}

func (d *stubDetector) Detect(text string, minScore float64) Language {
	d.count++
	if len(strings.TrimSpace(text)) == 0 {
		return LangUnknown
	}
	return LangEnglish
}

func (d *stubDetector) MostFrequentLanguage() (Language, bool) {
	if d.count == 0 {
		return LangUnknown, false
	}
	return LangEnglish, true
}

func newStubDetector() LanguageDetector {
	return &stubDetector{}
}
