package position

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/apparentlymart/go-textseg/v13/textseg"
)

// Pos is a cursor into a Sequence. Scalar is the index of the scalar the
// cursor points at and Offset is its byte offset in the source text.
type Pos struct {
	Scalar int
	Offset int
}

func (p Pos) String() string {
	return fmt.Sprintf("%d@%d", p.Scalar, p.Offset)
}

// Range is a half-open [Start, End) span of scalars.
type Range struct {
	Start Pos
	End   Pos
}

// Len returns the number of scalars in the range.
func (r Range) Len() int {
	return r.End.Scalar - r.Start.Scalar
}

// ByteLen returns the number of bytes the range covers in the source text.
func (r Range) ByteLen() int {
	return r.End.Offset - r.Start.Offset
}

func (r Range) IsEmpty() bool {
	return r.Len() <= 0
}

// Contains reports whether p falls inside the range.
func (r Range) Contains(p Pos) bool {
	return p.Scalar >= r.Start.Scalar && p.Scalar < r.End.Scalar
}

// Overlaps reports whether the two ranges share at least one scalar.
func (r Range) Overlaps(other Range) bool {
	// Handle zero-length ranges
	if r.IsEmpty() {
		return other.Contains(r.Start)
	}
	if other.IsEmpty() {
		return r.Contains(other.Start)
	}

	return other.Start.Scalar < r.End.Scalar && other.End.Scalar > r.Start.Scalar
}

func (r Range) String() string {
	return fmt.Sprintf("[%s,%s)", r.Start, r.End)
}

// Sequence is a read-only, randomly addressable view of a string as Unicode
// scalars. Invalid UTF-8 bytes decode as utf8.RuneError and occupy one byte
// each, so every byte of the text belongs to exactly one scalar.
type Sequence struct {
	text  string
	count int
}

func NewSequence(text string) *Sequence {
	return &Sequence{text: text, count: utf8.RuneCountInString(text)}
}

// Len returns the number of scalars in the sequence.
func (s *Sequence) Len() int {
	return s.count
}

func (s *Sequence) Start() Pos {
	return Pos{}
}

func (s *Sequence) End() Pos {
	return Pos{Scalar: s.count, Offset: len(s.text)}
}

// IsEnd reports whether p is at (or past) the end of the sequence.
func (s *Sequence) IsEnd(p Pos) bool {
	return p.Offset >= len(s.text)
}

// At returns the scalar at p. It must not be called with the end position.
func (s *Sequence) At(p Pos) rune {
	r, _ := utf8.DecodeRuneInString(s.text[p.Offset:])
	return r
}

// Next returns the successor of p. The successor of the end position is the
// end position.
func (s *Sequence) Next(p Pos) Pos {
	if s.IsEnd(p) {
		return p
	}
	_, size := utf8.DecodeRuneInString(s.text[p.Offset:])
	return Pos{Scalar: p.Scalar + 1, Offset: p.Offset + size}
}

// Slice returns the text covered by r.
func (s *Sequence) Slice(r Range) string {
	return s.text[r.Start.Offset:r.End.Offset]
}

// Place is a zero-based line and a one-based column.
type Place struct {
	Line      int
	Character int
}

// LineAndColumn returns the zero-based line of p and its one-based column,
// counted in grapheme clusters so that an emoji sequence occupies one column.
func (s *Sequence) LineAndColumn(p Pos) Place {
	prefix := s.text[:p.Offset]
	line := strings.Count(prefix, "\n")
	lineStart := strings.LastIndexByte(prefix, '\n') + 1

	col, err := textseg.TokenCount([]byte(prefix[lineStart:]), textseg.ScanGraphemeClusters)
	if err != nil {
		// fall back to scalars; the segmenter only fails on malformed input
		col = utf8.RuneCountInString(prefix[lineStart:])
	}

	return Place{Line: line, Character: col + 1}
}
