package matchers

import (
	"unicode"
)

const zeroWidthJoiner = '\u200D'

var emojiTable = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x2600, Hi: 0x26FF, Stride: 1}, // misc symbols
		{Lo: 0x2700, Hi: 0x27BF, Stride: 1}, // dingbats
		{Lo: 0xFE00, Hi: 0xFE0F, Stride: 1}, // variation selectors
	},
	R32: []unicode.Range32{
		{Lo: 0x1F1E6, Hi: 0x1F1FF, Stride: 1}, // regional indicators
		{Lo: 0x1F300, Hi: 0x1F5FF, Stride: 1}, // pictographs, skin tones
		{Lo: 0x1F600, Hi: 0x1F64F, Stride: 1}, // emoticons
		{Lo: 0x1F680, Hi: 0x1F6FF, Stride: 1}, // transport and map
		{Lo: 0x1F900, Hi: 0x1F9FF, Stride: 1}, // supplemental symbols
	},
}

// Emoji matches emoji sequences: runs of emoji scalars, modifiers and
// zero-width joiners, so "👩‍👩‍👦‍👦" and "🇳🇿" are single tokens.
type Emoji struct{}

func NewEmoji() Emoji { return Emoji{} }

func IsEmoji(r rune) bool {
	return r >= 0 && unicode.Is(emojiTable, r)
}

func (Emoji) CanStart(r rune) bool {
	return IsEmoji(r)
}

func (Emoji) CanTake(r rune) bool {
	return IsEmoji(r) || r == zeroWidthJoiner
}

func (Emoji) Name() string { return "emoji" }
