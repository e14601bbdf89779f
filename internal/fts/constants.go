package fts

// DefaultMaxTokenLength bounds how long a token may be before the
// tokenizer/stemmer drops it outright (not an error condition).
const DefaultMaxTokenLength = 40

// DefaultMinLanguageScore is the confidence floor below which language
// detection falls back to Unknown.
const DefaultMinLanguageScore = 0.5

// PositionGap is added to the running position counter between parts, and
// between the Text and Tokenize sections, so that phrase queries spanning
// two parts can never falsely match.
const PositionGap = 10
