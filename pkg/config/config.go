// Package config declares tokenizer lists in HCL, HCL-JSON or YAML files and
// builds fresh tokenizers from them.
package config

import (
	"bytes"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/spf13/afero"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/walteh/tokscan/pkg/matchers"
	"github.com/walteh/tokscan/pkg/tokenizer"
)

var (
	ErrUnknownKind  = errors.New("unknown tokenizer kind")
	ErrMissingField = errors.New("missing required field")
	ErrUnknownClass = errors.New("unknown character class")
	ErrNoTokenizers = errors.New("no tokenizers configured")
)

// Config is an ordered list of tokenizer declarations. Order is preference
// order: earlier entries win ties.
type Config struct {
	Tokenizers []*Entry `json:"tokenizers" hcl:"tokenizer,block" yaml:"tokenizers"`
}

// Entry declares one tokenizer. Which fields apply depends on Kind.
type Entry struct {
	Kind string `json:"kind" hcl:"kind,label" yaml:"kind"`
	// Name overrides the kind tag carried by the tokens
	Name string `json:"name,omitempty" hcl:"name,optional" yaml:"name,omitempty"`

	Value    string   `json:"value,omitempty" hcl:"value,optional" yaml:"value,omitempty"`
	Class    string   `json:"class,omitempty" hcl:"class,optional" yaml:"class,omitempty"`
	Chars    string   `json:"chars,omitempty" hcl:"chars,optional" yaml:"chars,omitempty"`
	Ignore   []string `json:"ignore,omitempty" hcl:"ignore,optional" yaml:"ignore,omitempty"`
	Template string   `json:"template,omitempty" hcl:"template,optional" yaml:"template,omitempty"`
	Layout   string   `json:"layout,omitempty" hcl:"layout,optional" yaml:"layout,omitempty"`
	Count    int      `json:"count,omitempty" hcl:"count,optional" yaml:"count,omitempty"`
	Advance  bool     `json:"advance,omitempty" hcl:"advance,optional" yaml:"advance,omitempty"`
}

// Default is used when no config file is given.
func Default() *Config {
	return &Config{
		Tokenizers: []*Entry{
			{Kind: KindDate, Template: "00/00/00", Layout: matchers.Layouts["us_short"]},
			{Kind: KindNumber},
			{Kind: KindEmoji},
			{Kind: KindCharSet, Class: "letters"},
		},
	}
}

// Load reads a config file from fs. The format follows the extension:
// .yaml and .yml are YAML, .json is HCL's JSON syntax, anything else is HCL.
func Load(fs afero.Fs, path string) (*Config, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	cfg, err := Parse(data, path)
	if err != nil {
		return nil, errors.Errorf("loading %s: %w", path, err)
	}

	return cfg, nil
}

// Parse decodes a config; filename selects the format and names the source
// in diagnostics.
func Parse(data []byte, filename string) (*Config, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		var cfg Config
		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, errors.Errorf("parsing YAML: %w", err)
		}
		return &cfg, nil
	}

	parser := hclparse.NewParser()

	var file *hcl.File
	var diags hcl.Diagnostics
	if strings.EqualFold(filepath.Ext(filename), ".json") {
		file, diags = parser.ParseJSON(data, filename)
	} else {
		file, diags = parser.ParseHCL(data, filename)
	}
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	var cfg Config
	diags = gohcl.DecodeBody(file.Body, evalContext(), &cfg)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	return &cfg, nil
}

// evalContext exposes the predefined date layouts to HCL expressions, e.g.
// layout = layouts.us_short.
func evalContext() *hcl.EvalContext {
	layouts := make(map[string]cty.Value, len(matchers.Layouts))
	for name, layout := range matchers.Layouts {
		layouts[name] = cty.StringVal(layout)
	}

	classes := make([]cty.Value, 0)
	for _, name := range matchers.ClassNames() {
		classes = append(classes, cty.StringVal(name))
	}

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"layouts": cty.ObjectVal(layouts),
			"classes": cty.ListVal(classes),
		},
	}
}

// Validate reports every invalid entry at once.
func (cfg *Config) Validate() error {
	if len(cfg.Tokenizers) == 0 {
		return ErrNoTokenizers
	}

	var errs error
	for i, entry := range cfg.Tokenizers {
		if err := entry.validate(); err != nil {
			errs = multierr.Append(errs, errors.Errorf("tokenizer %d (%s): %w", i, entry.Kind, err))
		}
	}

	return errs
}

// Build validates the config and constructs a fresh tokenizer for every
// entry. Each call returns new instances, so the result of one call may be
// owned by one scan while another call feeds a concurrent scan.
func (cfg *Config) Build() ([]tokenizer.Tokenizer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	toks := make([]tokenizer.Tokenizer, 0, len(cfg.Tokenizers))
	for i, entry := range cfg.Tokenizers {
		tok, err := entry.build()
		if err != nil {
			return nil, errors.Errorf("building tokenizer %d (%s): %w", i, entry.Kind, err)
		}
		if entry.Name != "" {
			tok = tokenizer.Named(entry.Name, tok)
		}
		toks = append(toks, tok)
	}

	return toks, nil
}

// Kinds lists the supported tokenizer kinds in sorted order.
func Kinds() []string {
	kinds := make([]string, 0, len(builders))
	for kind := range builders {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	return kinds
}

// Describe returns a one-line description of a kind.
func Describe(kind string) string {
	if b, ok := builders[kind]; ok {
		return b.description
	}
	return ""
}
