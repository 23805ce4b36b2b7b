package matchers

import (
	"unicode"

	"github.com/walteh/tokscan/pkg/tokenizer"
)

var (
	_ tokenizer.Completer = (*Template)(nil)
	_ tokenizer.Resetter  = (*Template)(nil)
)

// DigitPlaceholder in a Template pattern matches any decimal digit.
const DigitPlaceholder = '0'

// Template matches text shaped like a pattern such as "00/00/00": each
// DigitPlaceholder matches a decimal digit and every other scalar matches
// itself. A match is complete once the whole pattern is consumed.
type Template struct {
	pattern []rune
	pos     int
}

func NewTemplate(pattern string) *Template {
	return &Template{pattern: []rune(pattern)}
}

func (t *Template) CanTake(r rune) bool {
	if t.pos >= len(t.pattern) {
		return false
	}

	want := t.pattern[t.pos]
	if r != want && !(want == DigitPlaceholder && unicode.IsDigit(r)) {
		return false
	}

	t.pos++
	return true
}

func (t *Template) IsComplete() bool {
	return t.pos == len(t.pattern)
}

func (t *Template) Reset() {
	t.pos = 0
}

func (t *Template) Name() string { return "template" }

// Pattern returns the template pattern.
func (t *Template) Pattern() string {
	return string(t.pattern)
}
