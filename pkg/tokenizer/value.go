package tokenizer

import (
	"github.com/walteh/tokscan/pkg/position"
)

// ValueTokenizer is a tokenizer whose state is an immutable value. Take
// returns the successor state after accepting r, or false when r cannot
// extend the match.
type ValueTokenizer[T any] interface {
	Take(r rune) (T, bool)
}

// ValueStarter gives a ValueTokenizer its own criteria for the first scalar.
type ValueStarter[T any] interface {
	Start(r rune) (T, bool)
}

// WrapValue builds a handle around a value-typed tokenizer. The handle keeps
// the latest state after every accepted scalar and answers IsComplete,
// InvalidBefore, AdvanceIfInvalid and MakeToken from that state when it
// implements the matching interface. Reset restores initial.
func WrapValue[T ValueTokenizer[T]](initial T) *Handle {
	cur := initial

	h := &Handle{
		kind:   KindOf(initial),
		unwrap: func() any { return cur },
		reset:  func() { cur = initial },
	}

	h.canTake = func(r rune) bool {
		next, ok := cur.Take(r)
		if ok {
			cur = next
		}
		return ok
	}

	h.canStart = func(r rune) bool {
		s, ok := any(cur).(ValueStarter[T])
		if !ok {
			return h.canTake(r)
		}
		next, ok := s.Start(r)
		if ok {
			cur = next
		}
		return ok
	}

	h.isComplete = func() bool {
		if c, ok := any(cur).(Completer); ok {
			return c.IsComplete()
		}
		return true
	}

	h.invalidBefore = func(next rune) bool {
		if v, ok := any(cur).(Invalidator); ok {
			return v.InvalidBefore(next)
		}
		return false
	}

	h.advanceIfInvalid = func() bool {
		if a, ok := any(cur).(Advancer); ok {
			return a.AdvanceIfInvalid()
		}
		return false
	}

	h.makeToken = func(text string, r position.Range) Token {
		if m, ok := any(cur).(Maker); ok {
			return m.MakeToken(text, r)
		}
		return NewToken(KindOf(cur), text, r)
	}

	return h
}
