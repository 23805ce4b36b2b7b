// Package scan runs an ordered list of tokenizers over a text and collects
// the tokens they match.
//
// The scan is greedy with ordered fallback. At each start position every
// tokenizer is reset and asked whether it can start with the scalar there.
// The ones that can are tried in registration order, each extended as far as
// it will go; the first whose match is complete and not vetoed by the scalar
// that follows wins, and the scan resumes right after it. When nothing
// matches, the scalar is skipped.
package scan

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/walteh/tokscan/pkg/position"
	"github.com/walteh/tokscan/pkg/tokenizer"
)

// Scanner holds an ordered tokenizer list. The tokenizers are owned by the
// Scanner while a scan runs, so a Scanner must not be used by two scans at
// once; build one Scanner per goroutine from fresh tokenizers instead.
type Scanner struct {
	handles    []*tokenizer.Handle
	candidates []*tokenizer.Handle
}

// New builds a Scanner. Earlier tokenizers win ties, so register specific
// tokenizers before general ones.
func New(toks ...tokenizer.Tokenizer) *Scanner {
	handles := tokenizer.WrapAll(toks...)
	return &Scanner{
		handles:    handles,
		candidates: make([]*tokenizer.Handle, 0, len(handles)),
	}
}

// Len returns the number of registered tokenizers.
func (s *Scanner) Len() int {
	return len(s.handles)
}

// Scan returns the tokens matched in text, ordered by position. The context
// only carries the logger; a scan cannot be cancelled.
func (s *Scanner) Scan(ctx context.Context, text string) []tokenizer.Token {
	tokens := []tokenizer.Token{}
	if len(s.handles) == 0 || text == "" {
		return tokens
	}

	logger := zerolog.Ctx(ctx)
	seq := position.NewSequence(text)

	start := seq.Start()
	for !seq.IsEnd(start) {
		next, tok := s.attempt(logger, seq, start)
		if tok != nil {
			tokens = append(tokens, *tok)
		}
		start = next
	}

	logger.Trace().Int("tokens", len(tokens)).Int("scalars", seq.Len()).Msg("scan complete")

	return tokens
}

// attempt tries to match a token at start. It returns the position the scan
// resumes from, which is always after start, and the token if one matched.
func (s *Scanner) attempt(logger *zerolog.Logger, seq *position.Sequence, start position.Pos) (position.Pos, *tokenizer.Token) {
	scalar := seq.At(start)

	s.candidates = s.candidates[:0]
	for _, h := range s.handles {
		h.Reset()
		if h.CanStart(scalar) {
			s.candidates = append(s.candidates, h)
		}
	}

	if len(s.candidates) == 0 {
		logger.Trace().Stringer("start", start).Msg("no tokenizer can start here, skipping scalar")
		return seq.Next(start), nil
	}

	for i, h := range s.candidates {
		// the same instance may be registered more than once, and a failed
		// attempt leaves residue, so every later candidate starts over
		if i > 0 {
			h.Reset()
			if !h.CanStart(scalar) {
				continue
			}
		}

		end, next := extend(seq, start, h)

		if h.IsComplete() && !h.InvalidBefore(next) {
			r := position.Range{Start: start, End: end}
			tok := h.MakeToken(seq.Slice(r), r)

			logger.Trace().Str("kind", h.Name()).Stringer("range", r).Msg("token matched")

			return end, &tok
		}

		if h.AdvanceIfInvalid() {
			logger.Trace().Str("kind", h.Name()).Stringer("start", start).Stringer("resume", end).Msg("match failed, advancing past examined scalars")
			return end, nil
		}

		logger.Trace().Str("kind", h.Name()).Stringer("start", start).Msg("match failed, falling back")
	}

	return seq.Next(start), nil
}

// extend grows the match of h that already holds the scalar at start. It
// returns the end of the match and the scalar that stopped it, or
// tokenizer.EOF when the input ran out. Reaching the end of the input always
// stops the match, whatever h would do with more scalars.
func extend(seq *position.Sequence, start position.Pos, h *tokenizer.Handle) (position.Pos, rune) {
	end := seq.Next(start)
	for !seq.IsEnd(end) {
		r := seq.At(end)
		if !h.CanTake(r) {
			return end, r
		}
		end = seq.Next(end)
	}
	return end, tokenizer.EOF
}
