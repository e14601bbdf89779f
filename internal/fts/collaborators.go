package fts

// Language is a detected or caller-declared natural language tag.
type Language uint8

const (
	LangUnknown Language = iota
	LangEnglish
	LangGerman
	LangFrench
	LangSpanish
)

func (l Language) String() string {
	switch l {
	case LangEnglish:
		return "en"
	case LangGerman:
		return "de"
	case LangFrench:
		return "fr"
	case LangSpanish:
		return "es"
	default:
		return "unknown"
	}
}

// LanguageDetector is the external collaborator that guesses a document's
// dominant language from sampled text parts. A single instance is owned by
// one fts_index invocation; it is not shared across documents.
type LanguageDetector interface {
	// Detect returns a best-guess language for text that meets minScore,
	// or LangUnknown otherwise. Implementations may accumulate running
	// statistics across calls on the same instance.
	Detect(text string, minScore float64) Language
	// MostFrequentLanguage returns the language most often returned by
	// Detect on this instance, if any Detect call has happened.
	MostFrequentLanguage() (Language, bool)
}

// WordTokenizer is the external collaborator that splits text into words,
// bounded by maxTokenLength (tokens longer than this are dropped, not an
// error).
type WordTokenizer interface {
	Tokenize(text string, maxTokenLength int) []string
}

// StemmedWord is one token produced by a Stemmer: the original word form
// plus, if stemming changed it, the canonicalized root.
type StemmedWord struct {
	Word    string
	Stemmed string
	Changed bool
}

// Stemmer is the external collaborator that tokenizes and stems text for a
// given language, bounded by maxTokenLength.
type Stemmer interface {
	Stem(text string, lang Language, maxTokenLength int) []StemmedWord
}
