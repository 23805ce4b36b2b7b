// Package tokenizer defines the capability interface a matcher implements to
// take part in a scan, the Handle that erases a concrete matcher behind one
// dispatch table, and the Token record a scan produces.
//
// Only CanTake is required. Every other capability is an optional
// single-method interface; a Handle supplies the default for any a matcher
// leaves out.
package tokenizer

import (
	"fmt"
	"strings"

	"github.com/walteh/tokscan/pkg/position"
)

// EOF is passed to InvalidBefore when a match reaches the end of the input.
const EOF rune = -1

// Tokenizer decides, scalar by scalar, whether a match can be extended.
//
// CanTake is called with scalars in left-to-right order, starting with the
// scalar right after the one accepted by CanStart. It must return false at
// exactly the first scalar it cannot take and it must never revoke a scalar it
// already took.
type Tokenizer interface {
	CanTake(r rune) bool
}

// Starter is implemented by tokenizers with their own criteria for the first
// scalar of a match. Without it, CanTake is used.
type Starter interface {
	CanStart(r rune) bool
}

// Completer reports whether the scalars taken so far form a complete match.
// It is only asked once CanTake refused a scalar or the input ended. Without
// it, any run of taken scalars is complete.
type Completer interface {
	IsComplete() bool
}

// Invalidator vetoes an otherwise complete match given the scalar that
// immediately follows it, or EOF.
type Invalidator interface {
	InvalidBefore(next rune) bool
}

// Resetter clears any progress so the same instance can attempt a fresh match.
type Resetter interface {
	Reset()
}

// Maker builds the Token for a confirmed match. The returned Token must not
// alias mutable tokenizer state.
type Maker interface {
	MakeToken(text string, r position.Range) Token
}

// Advancer opts into giving up the whole start position when a match fails:
// no other tokenizer is tried there and the scan resumes after the scalars
// this tokenizer examined.
type Advancer interface {
	AdvanceIfInvalid() bool
}

// Namer gives a tokenizer the identity tag used for Token.Kind.
type Namer interface {
	Name() string
}

// Token is an immutable record of one match.
type Token struct {
	// Text is the matched substring.
	Text string
	// Range locates Text in the scanned input.
	Range position.Range
	// Kind identifies the tokenizer that produced the match.
	Kind string
	// Value is an optional payload snapshot, e.g. a parsed date.
	Value any
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)%s", t.Kind, t.Text, t.Range)
}

// KindOf returns the identity tag of t: its Name when it implements Namer,
// otherwise its lower-cased Go type name.
func KindOf(t any) string {
	if n, ok := t.(Namer); ok {
		return n.Name()
	}

	name := fmt.Sprintf("%T", t)
	name = strings.TrimLeft(name, "*")
	if i := strings.IndexByte(name, '['); i >= 0 {
		name = name[:i]
	}
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}

	return strings.ToLower(name)
}

// NewToken builds the default token for a match.
func NewToken(kind, text string, r position.Range) Token {
	return Token{Text: text, Range: r, Kind: kind}
}
