package matchers

import (
	"unicode"

	"github.com/walteh/tokscan/pkg/tokenizer"
)

var (
	_ tokenizer.Completer   = (*Words)(nil)
	_ tokenizer.Invalidator = (*Words)(nil)
	_ tokenizer.Resetter    = (*Words)(nil)
	_ tokenizer.Advancer    = (*Words)(nil)
)

// Words matches words of exactly n letters that are followed by whitespace
// or the end of the input.
type Words struct {
	n       int
	count   int
	advance bool
}

func NewWords(n int) *Words {
	return &Words{n: n}
}

// WithAdvance makes a failed match resume the scan at the scalar that stopped
// it. The letters before that scalar are not offered to any other tokenizer.
func (w *Words) WithAdvance() *Words {
	w.advance = true
	return w
}

func (w *Words) CanTake(r rune) bool {
	if !unicode.Is(lettersTable, r) {
		return false
	}
	w.count++
	return w.count <= w.n
}

func (w *Words) IsComplete() bool {
	return w.count == w.n
}

func (w *Words) InvalidBefore(next rune) bool {
	return next != tokenizer.EOF && !unicode.IsSpace(next)
}

func (w *Words) Reset() {
	w.count = 0
}

func (w *Words) AdvanceIfInvalid() bool {
	return w.advance
}

func (w *Words) Name() string { return "words" }
