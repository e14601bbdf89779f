package language

import (
	"strings"
	"unicode"

	"github.com/standardbeagle/mailfts/internal/fts"
)

// profile is a ranked set of the most frequent character trigrams for one
// language, derived offline from representative corpora. Only presence
// within the top set is scored; this is accurate enough to disambiguate a
// handful of European languages on a paragraph of text, not a general
// language-ID model.
type profile struct {
	lang     fts.Language
	trigrams map[string]struct{}
}

var profiles = []profile{
	{lang: fts.LangEnglish, trigrams: trigramSet(
		"the", "and", "ing", "ion", "ent", "for", "tio", "hat", "ter", "era",
		"ati", "his", "nce", "all", "ver", "his", "oul", "ith", "con", "rea",
	)},
	{lang: fts.LangGerman, trigrams: trigramSet(
		"der", "ich", "sch", "ein", "die", "und", "nde", "gen", "cht", "end",
		"ung", "erd", "nen", "che", "den", "ens", "lic", "eit", "ste", "hen",
	)},
	{lang: fts.LangFrench, trigrams: trigramSet(
		"les", "ent", "que", "des", "ion", "tio", "our", "ait", "ans", "res",
		"men", "ess", "ell", "ett", "eme", "aux", "ous", "eur", "con", "est",
	)},
	{lang: fts.LangSpanish, trigrams: trigramSet(
		"que", "ado", "los", "ent", "ion", "est", "ien", "con", "par", "las",
		"aci", "nte", "ica", "dos", "tra", "era", "ado", "res", "des", "cia",
	)},
}

func trigramSet(grams ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(grams))
	for _, g := range grams {
		set[g] = struct{}{}
	}
	return set
}

// Detector is a stateful trigram-frequency language guesser: each instance
// accumulates the languages it has returned across successive Detect calls
// so a caller can ask for the document's overall dominant language once
// all of its parts have been scored.
type Detector struct {
	counts map[fts.Language]int
}

// NewDetector returns a fresh Detector for one document. It satisfies
// fts.DetectorFactory when passed as `language.NewDetector`.
func NewDetector() fts.LanguageDetector {
	return &Detector{counts: make(map[fts.Language]int)}
}

// Detect scores text against each language profile by the fraction of its
// trigrams found in that profile's set, returning the best match if its
// score is at least minScore, or LangUnknown otherwise. The result is
// tallied for a later MostFrequentLanguage call.
func (d *Detector) Detect(text string, minScore float64) fts.Language {
	grams := trigramsOf(text)
	lang := fts.LangUnknown

	if len(grams) > 0 {
		bestScore := 0.0
		for _, p := range profiles {
			hits := 0
			for _, g := range grams {
				if _, ok := p.trigrams[g]; ok {
					hits++
				}
			}
			score := float64(hits) / float64(len(grams))
			if score > bestScore {
				bestScore = score
				lang = p.lang
			}
		}
		if bestScore < minScore {
			lang = fts.LangUnknown
		}
	}

	d.counts[lang]++
	return lang
}

// MostFrequentLanguage returns the language most often returned by Detect
// on this instance. It returns false if Detect has never been called.
func (d *Detector) MostFrequentLanguage() (fts.Language, bool) {
	if len(d.counts) == 0 {
		return fts.LangUnknown, false
	}

	best := fts.LangUnknown
	bestCount := -1
	for lang, count := range d.counts {
		// Prefer a known language over Unknown on ties, since Unknown is
		// never informative as a document-level default.
		if count > bestCount || (count == bestCount && best == fts.LangUnknown && lang != fts.LangUnknown) {
			best, bestCount = lang, count
		}
	}
	return best, true
}

// trigramsOf lowercases text, collapses runs of non-letters to a single
// space, and returns every overlapping 3-letter window.
func trigramsOf(text string) []string {
	var b strings.Builder
	lastWasSpace := false
	for _, r := range text {
		if unicode.IsLetter(r) {
			b.WriteRune(unicode.ToLower(r))
			lastWasSpace = false
		} else if !lastWasSpace {
			b.WriteByte(' ')
			lastWasSpace = true
		}
	}

	clean := strings.TrimSpace(b.String())
	if len(clean) < 3 {
		return nil
	}

	grams := make([]string, 0, len(clean)-2)
	runes := []rune(clean)
	for i := 0; i+3 <= len(runes); i++ {
		grams = append(grams, string(runes[i:i+3]))
	}
	return grams
}
