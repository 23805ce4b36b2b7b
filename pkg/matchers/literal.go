package matchers

import (
	"unicode"

	"github.com/walteh/tokscan/pkg/tokenizer"
)

var (
	_ tokenizer.Completer   = (*Literal)(nil)
	_ tokenizer.Invalidator = (*Literal)(nil)
	_ tokenizer.Resetter    = (*Literal)(nil)
)

// Literal matches an exact sequence of scalars as a whole word: a complete
// match followed directly by a letter is rejected, so "cat" does not match
// inside "catastrophe".
type Literal struct {
	target []rune
	pos    int
}

func NewLiteral(target string) *Literal {
	return &Literal{target: []rune(target)}
}

func (l *Literal) CanTake(r rune) bool {
	if l.pos >= len(l.target) {
		return false
	}
	if r != l.target[l.pos] {
		return false
	}
	l.pos++
	return true
}

func (l *Literal) IsComplete() bool {
	return l.pos == len(l.target)
}

func (l *Literal) InvalidBefore(next rune) bool {
	return next != tokenizer.EOF && unicode.Is(lettersTable, next)
}

func (l *Literal) Reset() {
	l.pos = 0
}

func (l *Literal) Name() string { return "literal" }

// Target returns the scalars the literal matches.
func (l *Literal) Target() string {
	return string(l.target)
}

