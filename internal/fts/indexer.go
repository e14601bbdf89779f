package fts

import (
	"context"

	"github.com/standardbeagle/mailfts/internal/ftserr"
)

// DetectorFactory builds a fresh LanguageDetector instance for one
// fts_index call. A detector accumulates state across the Text parts of a
// single document and must not be shared across documents.
type DetectorFactory func() LanguageDetector

// Indexer orchestrates language detection, tokenization, stemming, and
// posting accumulation into keyed writes against a Store. It holds no
// per-document state between calls; Index and Remove are safe to call
// concurrently for distinct documents. Concurrent calls for the same
// document are not synchronized here and must be serialized by the caller.
type Indexer struct {
	store            Store
	newDetector      DetectorFactory
	tokenizer        WordTokenizer
	stemmer          Stemmer
	maxTokenLength   int
	minLanguageScore float64
}

// Option configures an Indexer at construction time.
type Option func(*Indexer)

// WithMaxTokenLength overrides DefaultMaxTokenLength.
func WithMaxTokenLength(n int) Option {
	return func(ix *Indexer) { ix.maxTokenLength = n }
}

// WithMinLanguageScore overrides DefaultMinLanguageScore.
func WithMinLanguageScore(score float64) Option {
	return func(ix *Indexer) { ix.minLanguageScore = score }
}

// NewIndexer builds an Indexer over store, using newDetector to create a
// fresh detector per document, tokenizer for Tokenize parts, and stemmer
// for Text parts.
func NewIndexer(store Store, newDetector DetectorFactory, tokenizer WordTokenizer, stemmer Stemmer, opts ...Option) *Indexer {
	ix := &Indexer{
		store:            store,
		newDetector:      newDetector,
		tokenizer:        tokenizer,
		stemmer:          stemmer,
		maxTokenLength:   DefaultMaxTokenLength,
		minLanguageScore: DefaultMinLanguageScore,
	}
	for _, opt := range opts {
		opt(ix)
	}
	return ix
}

// stashedPart holds a Text part whose final language has been resolved by
// the language pass, waiting for the stemming pass.
type stashedPart struct {
	field Field
	lang  Language
	text  string
}

// Index runs fts_index: language detection, tokenization/keyword
// accumulation, document-level language reconciliation, stemming, and a
// batched flush of the resulting postings. On success every token's
// postings for (account, collection, document) are visible in the store.
// An empty document (no parts, or parts that produce no tokens) performs
// zero writes.
func (ix *Indexer) Index(ctx context.Context, doc *FtsDocument) error {
	detector := ix.newDetector()
	tokens := make(map[BitmapHash]*Postings)
	var stashed []stashedPart
	position := 0

	get := func(token string) *Postings {
		h := NewBitmapHash([]byte(token))
		p, ok := tokens[h]
		if !ok {
			p = NewPostings()
			tokens[h] = p
		}
		return p
	}

	// Pass 1: resolve language for Text parts (stashing them for the
	// stemming pass); tokenize Tokenize/Keyword parts immediately, since
	// neither needs a resolved language.
	for _, pt := range doc.parts {
		switch pt.typ {
		case partText:
			lang := pt.lang
			if lang == LangUnknown {
				lang = detector.Detect(pt.text, ix.minLanguageScore)
			}
			stashed = append(stashed, stashedPart{field: pt.field, lang: lang, text: pt.text})

		case partTokenize:
			field := pt.field.Byte()
			for _, word := range ix.tokenizer.Tokenize(pt.text, ix.maxTokenLength) {
				get(word).Insert(WordToken(field), position)
				position++
			}
			position += PositionGap

		case partKeyword:
			if pt.text == "" {
				continue
			}
			field := pt.field.Byte()
			get(pt.text).InsertKeyword(WordToken(field))
		}
	}

	// Step 3: document-level language reconciliation.
	docLang, ok := detector.MostFrequentLanguage()
	if !ok || docLang == LangUnknown {
		docLang = doc.defaultLanguage
	}

	// Pass 2 (stemming) over the stashed Text parts, in original order.
	for _, sp := range stashed {
		lang := sp.lang
		if lang == LangUnknown {
			lang = docLang
		}
		field := sp.field.Byte()

		for _, tok := range ix.stemmer.Stem(sp.text, lang, ix.maxTokenLength) {
			get(tok.Word).Insert(WordToken(field), position)
			if tok.Changed {
				get(tok.Stemmed).InsertKeyword(StemmedToken(field))
			}
			position++
		}
		position += PositionGap
	}

	if len(tokens) == 0 {
		return nil
	}

	builder := NewBatchBuilder().
		WithAccountID(doc.accountID).
		WithCollection(doc.collection).
		UpdateDocument(doc.documentID)

	for hash, postings := range tokens {
		if builder.Len() >= BatchFlushThreshold {
			if err := ix.flush(ctx, builder); err != nil {
				return err
			}
			builder = NewBatchBuilder().
				WithAccountID(doc.accountID).
				WithCollection(doc.collection).
				UpdateDocument(doc.documentID)
		}
		builder.SetValue(hash, postings.Serialize())
	}

	if !builder.IsEmpty() {
		return ix.flush(ctx, builder)
	}
	return nil
}

func (ix *Indexer) flush(ctx context.Context, b *BatchBuilder) error {
	if err := ix.store.Write(ctx, b.Build()); err != nil {
		return ftserr.NewStoreError("write", err)
	}
	return nil
}
