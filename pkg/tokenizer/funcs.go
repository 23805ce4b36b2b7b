package tokenizer

import (
	"github.com/walteh/tokscan/pkg/position"
)

// Funcs is a tokenizer assembled from closures. Nil fields fall back to the
// defaults of the corresponding capability; a nil Take never accepts.
type Funcs struct {
	Kind     string
	Start    func(r rune) bool
	Take     func(r rune) bool
	Complete func() bool
	Invalid  func(next rune) bool
	Clear    func()
	Make     func(text string, r position.Range) Token
	Advance  bool
}

func (f Funcs) CanTake(r rune) bool {
	if f.Take == nil {
		return false
	}
	return f.Take(r)
}

func (f Funcs) CanStart(r rune) bool {
	if f.Start == nil {
		return f.CanTake(r)
	}
	return f.Start(r)
}

func (f Funcs) IsComplete() bool {
	if f.Complete == nil {
		return true
	}
	return f.Complete()
}

func (f Funcs) InvalidBefore(next rune) bool {
	if f.Invalid == nil {
		return false
	}
	return f.Invalid(next)
}

func (f Funcs) Reset() {
	if f.Clear != nil {
		f.Clear()
	}
}

func (f Funcs) MakeToken(text string, r position.Range) Token {
	if f.Make == nil {
		return NewToken(f.Name(), text, r)
	}
	return f.Make(text, r)
}

func (f Funcs) AdvanceIfInvalid() bool {
	return f.Advance
}

func (f Funcs) Name() string {
	if f.Kind == "" {
		return "funcs"
	}
	return f.Kind
}
