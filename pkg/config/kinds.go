package config

import (
	"gitlab.com/tozd/go/errors"
	"go.uber.org/multierr"

	"github.com/walteh/tokscan/pkg/matchers"
	"github.com/walteh/tokscan/pkg/tokenizer"
)

const (
	KindNumber   = "number"
	KindLiteral  = "literal"
	KindFuzzy    = "fuzzy"
	KindCharSet  = "charset"
	KindTemplate = "template"
	KindDate     = "date"
	KindEmoji    = "emoji"
	KindWords    = "words"
	KindChunk    = "chunk"
)

type builder struct {
	description string
	validate    func(e *Entry) error
	build       func(e *Entry) (tokenizer.Tokenizer, error)
}

var builders = map[string]builder{
	KindNumber: {
		description: "a digit followed by digits and dots",
		build: func(*Entry) (tokenizer.Tokenizer, error) {
			return matchers.NewNumber(), nil
		},
	},
	KindLiteral: {
		description: "the exact text in value, as a whole word",
		validate: func(e *Entry) error {
			return required("value", e.Value)
		},
		build: func(e *Entry) (tokenizer.Tokenizer, error) {
			return matchers.NewLiteral(e.Value), nil
		},
	},
	KindFuzzy: {
		description: "the text in value, skipping characters of the ignore classes",
		validate: func(e *Entry) error {
			return multierr.Append(required("value", e.Value), checkClasses(e.Ignore...))
		},
		build: func(e *Entry) (tokenizer.Tokenizer, error) {
			sets := make([]*matchers.CharSet, 0, len(e.Ignore))
			for _, name := range e.Ignore {
				set, _ := matchers.Class(name)
				sets = append(sets, set)
			}
			return matchers.NewFuzzy(e.Value, matchers.Union("ignored", sets...)), nil
		},
	},
	KindCharSet: {
		description: "runs of characters from a predefined class or from chars",
		validate: func(e *Entry) error {
			if e.Class == "" && e.Chars == "" {
				return errors.Errorf("%w: class or chars", ErrMissingField)
			}
			if e.Class != "" {
				return checkClasses(e.Class)
			}
			return nil
		},
		build: func(e *Entry) (tokenizer.Tokenizer, error) {
			if e.Chars != "" {
				name := e.Class
				if name == "" {
					name = "charset"
				}
				set := matchers.OneOf(name, e.Chars)
				if e.Class != "" {
					class, _ := matchers.Class(e.Class)
					set = matchers.Union(name, class, set)
				}
				return set, nil
			}
			set, _ := matchers.Class(e.Class)
			return set, nil
		},
	},
	KindTemplate: {
		description: "text shaped like template, where 0 is any digit",
		validate: func(e *Entry) error {
			return required("template", e.Template)
		},
		build: func(e *Entry) (tokenizer.Tokenizer, error) {
			return matchers.NewTemplate(e.Template), nil
		},
	},
	KindDate: {
		description: "text shaped like template that parses with the Go time layout",
		validate: func(e *Entry) error {
			return multierr.Append(required("template", e.Template), required("layout", e.Layout))
		},
		build: func(e *Entry) (tokenizer.Tokenizer, error) {
			return matchers.NewDate(e.Template, e.Layout), nil
		},
	},
	KindEmoji: {
		description: "emoji sequences joined by zero-width joiners",
		build: func(*Entry) (tokenizer.Tokenizer, error) {
			return matchers.NewEmoji(), nil
		},
	},
	KindWords: {
		description: "words of exactly count letters followed by whitespace",
		validate: positiveCount,
		build: func(e *Entry) (tokenizer.Tokenizer, error) {
			w := matchers.NewWords(e.Count)
			if e.Advance {
				w = w.WithAdvance()
			}
			return w, nil
		},
	},
	KindChunk: {
		description: "groups of count characters of any kind",
		validate:    positiveCount,
		build: func(e *Entry) (tokenizer.Tokenizer, error) {
			return matchers.NewChunk(e.Count), nil
		},
	},
}

func (e *Entry) validate() error {
	b, ok := builders[e.Kind]
	if !ok {
		return errors.Errorf("%w: %q", ErrUnknownKind, e.Kind)
	}
	if b.validate == nil {
		return nil
	}
	return b.validate(e)
}

func (e *Entry) build() (tokenizer.Tokenizer, error) {
	b, ok := builders[e.Kind]
	if !ok {
		return nil, errors.Errorf("%w: %q", ErrUnknownKind, e.Kind)
	}
	return b.build(e)
}

func required(field, value string) error {
	if value == "" {
		return errors.Errorf("%w: %s", ErrMissingField, field)
	}
	return nil
}

func positiveCount(e *Entry) error {
	if e.Count <= 0 {
		return errors.Errorf("%w: count must be positive", ErrMissingField)
	}
	return nil
}

func checkClasses(names ...string) error {
	var errs error
	for _, name := range names {
		if _, ok := matchers.Class(name); !ok {
			errs = multierr.Append(errs, errors.Errorf("%w: %q", ErrUnknownClass, name))
		}
	}
	return errs
}
