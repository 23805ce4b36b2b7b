package tokenizer

import (
	"github.com/walteh/tokscan/pkg/position"
)

var (
	_ Tokenizer   = (*Handle)(nil)
	_ Starter     = (*Handle)(nil)
	_ Completer   = (*Handle)(nil)
	_ Invalidator = (*Handle)(nil)
	_ Resetter    = (*Handle)(nil)
	_ Maker       = (*Handle)(nil)
	_ Advancer    = (*Handle)(nil)
	_ Namer       = (*Handle)(nil)
)

// Handle is a uniform wrapper around one concrete tokenizer. The optional
// capabilities are resolved once, when the handle is built, into a table of
// functions bound to that tokenizer; missing ones get their defaults.
//
// A handle is not a snapshot: every call observes and mutates the same
// underlying state.
type Handle struct {
	kind string

	canStart         func(rune) bool
	canTake          func(rune) bool
	isComplete       func() bool
	invalidBefore    func(rune) bool
	reset            func()
	makeToken        func(string, position.Range) Token
	advanceIfInvalid func() bool
	unwrap           func() any
}

// Wrap builds a handle for t. A *Handle is returned unchanged and a nil
// tokenizer yields a nil handle.
func Wrap(t Tokenizer) *Handle {
	if t == nil {
		return nil
	}
	if h, ok := t.(*Handle); ok {
		return h
	}

	h := &Handle{
		kind:    KindOf(t),
		canTake: t.CanTake,
		unwrap:  func() any { return t },
	}

	if s, ok := t.(Starter); ok {
		h.canStart = s.CanStart
	} else {
		h.canStart = t.CanTake
	}

	if c, ok := t.(Completer); ok {
		h.isComplete = c.IsComplete
	} else {
		h.isComplete = alwaysTrue
	}

	if v, ok := t.(Invalidator); ok {
		h.invalidBefore = v.InvalidBefore
	} else {
		h.invalidBefore = neverInvalid
	}

	if r, ok := t.(Resetter); ok {
		h.reset = r.Reset
	} else {
		h.reset = func() {}
	}

	if m, ok := t.(Maker); ok {
		h.makeToken = m.MakeToken
	} else {
		kind := h.kind
		h.makeToken = func(text string, r position.Range) Token {
			return NewToken(kind, text, r)
		}
	}

	if a, ok := t.(Advancer); ok {
		h.advanceIfInvalid = a.AdvanceIfInvalid
	} else {
		h.advanceIfInvalid = alwaysFalse
	}

	return h
}

// WrapAll wraps every tokenizer in order, dropping nil entries.
func WrapAll(toks ...Tokenizer) []*Handle {
	handles := make([]*Handle, 0, len(toks))
	for _, t := range toks {
		if h := Wrap(t); h != nil {
			handles = append(handles, h)
		}
	}
	return handles
}

func (h *Handle) CanStart(r rune) bool { return h.canStart(r) }

func (h *Handle) CanTake(r rune) bool { return h.canTake(r) }

func (h *Handle) IsComplete() bool { return h.isComplete() }

func (h *Handle) InvalidBefore(next rune) bool { return h.invalidBefore(next) }

func (h *Handle) Reset() { h.reset() }

func (h *Handle) MakeToken(text string, r position.Range) Token { return h.makeToken(text, r) }

func (h *Handle) AdvanceIfInvalid() bool { return h.advanceIfInvalid() }

// Name returns the identity tag of the wrapped tokenizer.
func (h *Handle) Name() string { return h.kind }

// Unwrap returns the wrapped tokenizer. For handles built by WrapValue it is
// the current state value.
func (h *Handle) Unwrap() any { return h.unwrap() }

func alwaysTrue() bool { return true }

func alwaysFalse() bool { return false }

func neverInvalid(rune) bool { return false }

// Named wraps t so that its tokens carry kind instead of its own tag.
func Named(kind string, t Tokenizer) *Handle {
	inner := Wrap(t)
	if inner == nil {
		return nil
	}

	h := *inner
	h.kind = kind
	h.makeToken = func(text string, r position.Range) Token {
		tok := inner.makeToken(text, r)
		tok.Kind = kind
		return tok
	}

	return &h
}
