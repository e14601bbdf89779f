package language

import (
	"testing"

	"github.com/standardbeagle/mailfts/internal/fts"
)

func TestStemEnglishChangesLongWords(t *testing.T) {
	s := NewPorterStemmer()
	got := s.Stem("running quickly", fts.LangEnglish, 40)
	if len(got) != 2 {
		t.Fatalf("got %d tokens, want 2", len(got))
	}
	if !got[0].Changed {
		t.Errorf("expected %q to stem to something different", got[0].Word)
	}
}

func TestStemShortWordsUnchanged(t *testing.T) {
	s := NewPorterStemmer()
	got := s.Stem("to be", fts.LangEnglish, 40)
	for _, tok := range got {
		if tok.Changed {
			t.Errorf("word %q shorter than minStemLength should not be stemmed", tok.Word)
		}
	}
}

func TestStemNonEnglishLeavesWordsAsIs(t *testing.T) {
	s := NewPorterStemmer()
	got := s.Stem("laufen schnell", fts.LangGerman, 40)
	for _, tok := range got {
		if tok.Changed {
			t.Errorf("non-English text must not be run through the English stemmer, got Changed for %q", tok.Word)
		}
	}
}

func TestStemRespectsExclusions(t *testing.T) {
	s := NewPorterStemmer("running")
	got := s.Stem("running", fts.LangEnglish, 40)
	if len(got) != 1 || got[0].Changed {
		t.Fatalf("excluded word must not be stemmed, got %+v", got)
	}
}
