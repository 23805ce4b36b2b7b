// Package matchers is a library of ready-made tokenizers.
package matchers

import (
	"sort"
	"unicode"

	"golang.org/x/text/unicode/rangetable"

	"github.com/walteh/tokscan/pkg/tokenizer"
)

var (
	lettersTable     = rangetable.Merge(unicode.L, unicode.M)
	punctuationTable = unicode.P
)

var _ tokenizer.Namer = (*CharSet)(nil)

// CharSet matches runs of scalars belonging to a Unicode range table. It is
// stateless and safe to share between scans.
type CharSet struct {
	name  string
	table *unicode.RangeTable
}

func NewCharSet(name string, table *unicode.RangeTable) *CharSet {
	return &CharSet{name: name, table: table}
}

// Digits matches decimal digits (Unicode category Nd).
func Digits() *CharSet { return NewCharSet("digits", unicode.Nd) }

// Letters matches letters and combining marks.
func Letters() *CharSet { return NewCharSet("letters", lettersTable) }

func Whitespace() *CharSet { return NewCharSet("whitespace", unicode.White_Space) }

func Punctuation() *CharSet { return NewCharSet("punctuation", punctuationTable) }

func Symbols() *CharSet { return NewCharSet("symbols", unicode.S) }

// OneOf matches any of the scalars in chars.
func OneOf(name, chars string) *CharSet {
	runes := []rune(chars)
	sort.Slice(runes, func(i, j int) bool { return runes[i] < runes[j] })
	return NewCharSet(name, rangetable.New(runes...))
}

// Union matches any scalar matched by one of sets.
func Union(name string, sets ...*CharSet) *CharSet {
	tables := make([]*unicode.RangeTable, 0, len(sets))
	for _, s := range sets {
		tables = append(tables, s.table)
	}
	return NewCharSet(name, rangetable.Merge(tables...))
}

var classes = map[string]func() *CharSet{
	"digits":      Digits,
	"letters":     Letters,
	"whitespace":  Whitespace,
	"punctuation": Punctuation,
	"symbols":     Symbols,
}

// Class returns the named predefined set.
func Class(name string) (*CharSet, bool) {
	fn, ok := classes[name]
	if !ok {
		return nil, false
	}
	return fn(), true
}

// ClassNames lists the predefined set names in sorted order.
func ClassNames() []string {
	names := make([]string, 0, len(classes))
	for name := range classes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (c *CharSet) Contains(r rune) bool {
	return r >= 0 && unicode.Is(c.table, r)
}

func (c *CharSet) CanTake(r rune) bool {
	return c.Contains(r)
}

func (c *CharSet) Name() string {
	return c.name
}
