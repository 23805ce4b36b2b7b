package matchers

import (
	"unicode"
)

// Number matches a decimal number: a digit followed by any digits and dots.
type Number struct{}

func NewNumber() Number { return Number{} }

func (Number) CanStart(r rune) bool {
	return unicode.IsDigit(r)
}

func (Number) CanTake(r rune) bool {
	return unicode.IsDigit(r) || r == '.'
}

func (Number) Name() string { return "number" }
