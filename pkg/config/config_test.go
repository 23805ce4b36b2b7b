package config_test

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/tokscan/pkg/config"
	"github.com/walteh/tokscan/pkg/scan"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		filename    string
		config      string
		expectError bool
		validate    func(t *testing.T, cfg *config.Config)
	}{
		{
			name:     "hcl",
			filename: "tokscan.hcl",
			config: `
tokenizer "number" {}

tokenizer "literal" {
  value = "cat"
}

tokenizer "charset" {
  class = "letters"
}

tokenizer "date" {
  template = "00/00/00"
  layout   = layouts.us_short
  name     = "when"
}
`,
			validate: func(t *testing.T, cfg *config.Config) {
				require.Len(t, cfg.Tokenizers, 4)
				assert.Equal(t, "number", cfg.Tokenizers[0].Kind)
				assert.Equal(t, "cat", cfg.Tokenizers[1].Value)
				assert.Equal(t, "letters", cfg.Tokenizers[2].Class)
				assert.Equal(t, "01/02/06", cfg.Tokenizers[3].Layout)
				assert.Equal(t, "when", cfg.Tokenizers[3].Name)
			},
		},
		{
			name:     "yaml",
			filename: "tokscan.yaml",
			config: `
tokenizers:
  - kind: words
    count: 3
    advance: true
  - kind: fuzzy
    value: "#YF1942B"
    ignore: [whitespace, punctuation]
`,
			validate: func(t *testing.T, cfg *config.Config) {
				require.Len(t, cfg.Tokenizers, 2)
				assert.Equal(t, 3, cfg.Tokenizers[0].Count)
				assert.True(t, cfg.Tokenizers[0].Advance)
				assert.Equal(t, []string{"whitespace", "punctuation"}, cfg.Tokenizers[1].Ignore)
			},
		},
		{
			name:     "hcl json",
			filename: "tokscan.json",
			config:   `{"tokenizer": {"emoji": {}, "number": {}}}`,
			validate: func(t *testing.T, cfg *config.Config) {
				require.Len(t, cfg.Tokenizers, 2)
			},
		},
		{
			name:        "yaml unknown field",
			filename:    "tokscan.yml",
			config:      "tokenizers:\n  - kind: number\n    colour: red\n",
			expectError: true,
		},
		{
			name:        "hcl syntax error",
			filename:    "tokscan.hcl",
			config:      `tokenizer "number" {`,
			expectError: true,
		},
		{
			name:        "hcl unknown attribute",
			filename:    "tokscan.hcl",
			config:      `tokenizer "number" { colour = "red" }`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			require.NoError(t, afero.WriteFile(fs, "/cfg/"+tt.filename, []byte(tt.config), 0o644))

			cfg, err := config.Load(fs, "/cfg/"+tt.filename)
			if tt.expectError {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, cfg)
			if tt.validate != nil {
				tt.validate(t, cfg)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(afero.NewMemMapFs(), "/nope.hcl")
	require.Error(t, err)
}

func TestValidate_ReportsEveryEntry(t *testing.T) {
	cfg := &config.Config{
		Tokenizers: []*config.Entry{
			{Kind: "number"},
			{Kind: "regex"},
			{Kind: "literal"},
			{Kind: "charset", Class: "glyphs"},
			{Kind: "date", Template: "00/00/00"},
			{Kind: "words"},
		},
	}

	err := cfg.Validate()
	require.Error(t, err)

	msg := err.Error()
	assert.Contains(t, msg, "tokenizer 1 (regex)")
	assert.Contains(t, msg, "tokenizer 2 (literal)")
	assert.Contains(t, msg, "tokenizer 3 (charset)")
	assert.Contains(t, msg, "tokenizer 4 (date)")
	assert.Contains(t, msg, "tokenizer 5 (words)")
	assert.NotContains(t, msg, "tokenizer 0")

	assert.True(t, errors.Is(err, config.ErrUnknownKind))
	assert.True(t, errors.Is(err, config.ErrMissingField))
	assert.True(t, errors.Is(err, config.ErrUnknownClass))
}

func TestValidate_Empty(t *testing.T) {
	err := (&config.Config{}).Validate()
	assert.True(t, errors.Is(err, config.ErrNoTokenizers))
}

func TestBuild_Scans(t *testing.T) {
	cfg, err := config.Parse([]byte(`
tokenizer "number" {}
tokenizer "literal" { value = "cat" }
tokenizer "charset" { class = "letters" }
`), "fallback.hcl")
	require.NoError(t, err)

	toks, err := cfg.Build()
	require.NoError(t, err)

	got := scan.Substrings("1.2 34 abc catastrophe cat 0.5", toks...)
	assert.Equal(t, []string{"1.2", "34", "abc", "catastrophe", "cat", "0.5"}, got)
}

func TestBuild_FreshInstances(t *testing.T) {
	cfg := &config.Config{Tokenizers: []*config.Entry{{Kind: "literal", Value: "cat"}}}

	first, err := cfg.Build()
	require.NoError(t, err)
	second, err := cfg.Build()
	require.NoError(t, err)

	assert.NotSame(t, first[0], second[0])
}

func TestBuild_Names(t *testing.T) {
	cfg := &config.Config{Tokenizers: []*config.Entry{
		{Kind: "date", Template: "00/00/00", Layout: "01/02/06", Name: "when"},
		{Kind: "charset", Chars: "xyz"},
		{Kind: "charset", Class: "digits", Chars: "+-"},
	}}

	toks, err := cfg.Build()
	require.NoError(t, err)

	tokens := scan.Tokens("on 12/01/27 zyx +12", toks...)
	require.Len(t, tokens, 3)
	assert.Equal(t, "when", tokens[0].Kind)
	assert.NotNil(t, tokens[0].Value, "renaming keeps the payload")
	assert.Equal(t, "charset", tokens[1].Kind)
	assert.Equal(t, "zyx", tokens[1].Text)
	assert.Equal(t, "digits", tokens[2].Kind)
	assert.Equal(t, "+12", tokens[2].Text)
}

func TestBuild_Chunk(t *testing.T) {
	cfg, err := config.Parse([]byte(`
tokenizers:
  - kind: chunk
    count: 4
`), "chunks.yaml")
	require.NoError(t, err)

	toks, err := cfg.Build()
	require.NoError(t, err)
	assert.Equal(t, []string{"abcd", "efgh", "ij"}, scan.Substrings("abcdefghij", toks...))

	err = (&config.Config{Tokenizers: []*config.Entry{{Kind: "chunk"}}}).Validate()
	assert.True(t, errors.Is(err, config.ErrMissingField))
}

func TestDefault(t *testing.T) {
	toks, err := config.Default().Build()
	require.NoError(t, err)

	tokens := scan.Tokens("on 12/01/27 I saw 👶 and 3.5 cats", toks...)
	kinds := make([]string, len(tokens))
	for i, tok := range tokens {
		kinds[i] = tok.Kind
	}

	assert.Equal(t, []string{"letters", "date", "letters", "letters", "emoji", "letters", "number", "letters"}, kinds)
}

func TestKinds(t *testing.T) {
	kinds := config.Kinds()
	assert.Contains(t, kinds, config.KindDate)
	assert.Len(t, kinds, 9)
	for _, kind := range kinds {
		assert.NotEmpty(t, config.Describe(kind), kind)
	}
}
