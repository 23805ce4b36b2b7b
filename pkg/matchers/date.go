package matchers

import (
	"time"

	"github.com/walteh/tokscan/pkg/position"
	"github.com/walteh/tokscan/pkg/tokenizer"
)

var (
	_ tokenizer.Completer = (*Date)(nil)
	_ tokenizer.Resetter  = (*Date)(nil)
	_ tokenizer.Maker     = (*Date)(nil)
)

// Layouts usable with NewDate, keyed by a short name.
var Layouts = map[string]string{
	"us_short": "01/02/06",
	"eu_short": "02/01/06",
	"iso":      "2006-01-02",
	"us_long":  "01/02/2006",
}

// Date matches text shaped like a Template that also parses as a calendar
// date with a time layout, so "99/99/99" fits "00/00/00" but is rejected.
// The parsed date is carried in Token.Value as a time.Time.
type Date struct {
	tmpl   *Template
	layout string

	text   []rune
	parsed bool
	valid  bool
	date   time.Time
}

// NewDate builds a date matcher from a template pattern and a time layout,
// e.g. NewDate("00/00/00", "01/02/06").
func NewDate(pattern, layout string) *Date {
	return &Date{tmpl: NewTemplate(pattern), layout: layout}
}

func (d *Date) CanTake(r rune) bool {
	if !d.tmpl.CanTake(r) {
		return false
	}
	d.text = append(d.text, r)
	return true
}

// IsComplete parses the text at most once per attempt.
func (d *Date) IsComplete() bool {
	if !d.tmpl.IsComplete() {
		return false
	}

	if !d.parsed {
		d.parsed = true
		date, err := time.Parse(d.layout, string(d.text))
		d.valid = err == nil
		d.date = date
	}

	return d.valid
}

func (d *Date) Reset() {
	d.tmpl.Reset()
	d.text = d.text[:0]
	d.parsed = false
	d.valid = false
	d.date = time.Time{}
}

func (d *Date) MakeToken(text string, r position.Range) tokenizer.Token {
	tok := tokenizer.NewToken(d.Name(), text, r)
	tok.Value = d.date
	return tok
}

func (d *Date) Name() string { return "date" }
