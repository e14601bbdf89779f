package fts

// partType distinguishes how a part's text reaches the postings map.
type partType uint8

const (
	partText partType = iota
	partTokenize
	partKeyword
)

type part struct {
	field Field
	text  string
	typ   partType
	lang  Language // only meaningful for partText
}

// FtsDocument is a transient, caller-owned document under construction: a
// sequence of parts tagged Text(lang), Tokenize, or Keyword, plus the
// scoping ids the indexer writes under. It is built then consumed by a
// single Indexer.Index call; it must not be mutated concurrently.
type FtsDocument struct {
	parts           []part
	defaultLanguage Language
	accountID       uint32
	collection      uint8
	documentID      uint32
}

// WithDefaultLanguage starts a new document builder with the language
// used when per-part language detection fails or is skipped.
func WithDefaultLanguage(defaultLanguage Language) *FtsDocument {
	return &FtsDocument{defaultLanguage: defaultLanguage}
}

// WithAccountID sets the owning account id.
func (d *FtsDocument) WithAccountID(accountID uint32) *FtsDocument {
	d.accountID = accountID
	return d
}

// WithDocumentID sets the document id within the account/collection.
func (d *FtsDocument) WithDocumentID(documentID uint32) *FtsDocument {
	d.documentID = documentID
	return d
}

// WithCollection sets the collection byte the document belongs to.
func (d *FtsDocument) WithCollection(collection uint8) *FtsDocument {
	d.collection = collection
	return d
}

// Index appends a natural-language part. If lang is LangUnknown the
// pipeline runs language detection on it.
func (d *FtsDocument) Index(field Field, text string, lang Language) *FtsDocument {
	d.parts = append(d.parts, part{field: field, text: text, typ: partText, lang: lang})
	return d
}

// IndexTokenized appends a part that is word-tokenized without stemming or
// language detection (e.g. machine-generated identifiers).
func (d *FtsDocument) IndexTokenized(field Field, text string) *FtsDocument {
	d.parts = append(d.parts, part{field: field, text: text, typ: partTokenize})
	return d
}

// IndexKeyword appends a part indexed verbatim as a single token, with no
// position assigned (e.g. a flag or label field).
func (d *FtsDocument) IndexKeyword(field Field, text string) *FtsDocument {
	d.parts = append(d.parts, part{field: field, text: text, typ: partKeyword})
	return d
}
