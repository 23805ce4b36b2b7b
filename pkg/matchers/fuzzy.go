package matchers

import (
	"unicode"

	"github.com/walteh/tokscan/pkg/tokenizer"
)

var (
	_ tokenizer.Completer = (*Fuzzy)(nil)
	_ tokenizer.Resetter  = (*Fuzzy)(nil)
)

// Fuzzy matches a literal target while skipping ignorable scalars between
// its characters, e.g. "#YF 1942-b" for the target "#YF1942B" when spaces and
// punctuation are ignored. Letters match either case. Ignorable scalars are
// never taken before the first target scalar or after the last one.
type Fuzzy struct {
	target []rune
	ignore *CharSet
	pos    int
}

func NewFuzzy(target string, ignoring *CharSet) *Fuzzy {
	return &Fuzzy{target: []rune(target), ignore: ignoring}
}

func (f *Fuzzy) CanTake(r rune) bool {
	if f.pos >= len(f.target) {
		return false
	}

	if sameLetter(r, f.target[f.pos]) {
		f.pos++
		return true
	}

	return f.pos > 0 && f.ignore != nil && f.ignore.Contains(r)
}

func (f *Fuzzy) IsComplete() bool {
	return f.pos == len(f.target)
}

func (f *Fuzzy) Reset() {
	f.pos = 0
}

func (f *Fuzzy) Name() string { return "fuzzy" }

// sameLetter reports whether r and want are equal, or are the upper and
// lower case forms of one letter.
func sameLetter(r, want rune) bool {
	if r == want {
		return true
	}
	return unicode.IsLetter(r) && unicode.IsLetter(want) && unicode.ToLower(r) == unicode.ToLower(want)
}
