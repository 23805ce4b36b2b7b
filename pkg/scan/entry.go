package scan

import (
	"context"

	"github.com/walteh/tokscan/pkg/tokenizer"
)

// Tokens scans text with toks and returns every matched token. Empty text or
// an empty tokenizer list yields an empty slice.
func Tokens(text string, toks ...tokenizer.Tokenizer) []tokenizer.Token {
	return TokensContext(context.Background(), text, toks...)
}

// TokensContext is Tokens with trace logging through zerolog.Ctx(ctx).
func TokensContext(ctx context.Context, text string, toks ...tokenizer.Tokenizer) []tokenizer.Token {
	return New(toks...).Scan(ctx, text)
}

// Substrings returns only the matched text of each token.
func Substrings(text string, toks ...tokenizer.Tokenizer) []string {
	tokens := Tokens(text, toks...)
	out := make([]string, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Text
	}
	return out
}

// Values collects the payloads of type T, skipping tokens without one.
func Values[T any](tokens []tokenizer.Token) []T {
	var out []T
	for _, tok := range tokens {
		if v, ok := tok.Value.(T); ok {
			out = append(out, v)
		}
	}
	return out
}

// OfKind returns the tokens produced by tokenizers with the given kind.
func OfKind(tokens []tokenizer.Token, kind string) []tokenizer.Token {
	var out []tokenizer.Token
	for _, tok := range tokens {
		if tok.Kind == kind {
			out = append(out, tok)
		}
	}
	return out
}
