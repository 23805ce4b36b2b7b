package scan_files

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/walteh/tokscan/pkg/config"
	"github.com/walteh/tokscan/pkg/debug"
	"github.com/walteh/tokscan/pkg/position"
	"github.com/walteh/tokscan/pkg/scan"
)

const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"

	// source names for input that does not come from a file
	SourceText  = "<text>"
	SourceStdin = "<stdin>"
)

type Handler struct {
	fs afero.Fs

	configPath string
	text       string
	format     string
	debug      bool
	jobs       int
}

// Token is the output record of one match.
type Token struct {
	Kind   string `json:"kind" yaml:"kind"`
	Text   string `json:"text" yaml:"text"`
	Line   int    `json:"line" yaml:"line"`
	Column int    `json:"column" yaml:"column"`
	Start  int    `json:"start" yaml:"start"`
	End    int    `json:"end" yaml:"end"`
	Value  any    `json:"value,omitempty" yaml:"value,omitempty"`
}

type Result struct {
	Source string  `json:"source" yaml:"source"`
	Tokens []Token `json:"tokens" yaml:"tokens"`
}

type input struct {
	source string
	// content is set for inline and stdin input; files are read by the worker
	content *string
	err     error
}

func NewScanCommand(fs afero.Fs) *cobra.Command {
	me := &Handler{fs: fs}

	cmd := &cobra.Command{
		Use:   "scan [paths-or-globs...]",
		Short: "scan files, inline text or stdin and print the tokens found",
	}

	cmd.Flags().StringVar(&me.configPath, "config", "", "tokenizer config file (.hcl, .json, .yaml)")
	cmd.Flags().StringVar(&me.text, "text", "", "scan this text instead of files")
	cmd.Flags().StringVar(&me.format, "format", FormatText, "output format: text, json or yaml")
	cmd.Flags().BoolVar(&me.debug, "debug", false, "enable trace logging of every match attempt")
	cmd.Flags().IntVar(&me.jobs, "jobs", 4, "number of files scanned at once")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		level := zerolog.WarnLevel
		if me.debug {
			level = zerolog.TraceLevel
		}

		zerolog.SetGlobalLevel(level)

		logger := debug.NewLogger(cmd.ErrOrStderr(), level, true).With().
			Str("run_id", uuid.NewString()).
			Logger()

		ctx := logger.WithContext(cmd.Context())

		return me.Run(ctx, cmd.InOrStdin(), cmd.OutOrStdout(), args)
	}

	return cmd
}

func (me *Handler) Run(ctx context.Context, stdin io.Reader, out io.Writer, args []string) error {
	switch me.format {
	case FormatText, FormatJSON, FormatYAML:
	default:
		return errors.Errorf("unknown format %q", me.format)
	}

	cfg := config.Default()
	if me.configPath != "" {
		loaded, err := config.Load(me.fs, me.configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	if err := cfg.Validate(); err != nil {
		return errors.Errorf("invalid config: %w", err)
	}

	inputs, err := me.inputs(stdin, args)
	if err != nil {
		return err
	}

	zerolog.Ctx(ctx).Debug().Int("inputs", len(inputs)).Int("tokenizers", len(cfg.Tokenizers)).Msg("starting scan")

	results := make([]*Result, len(inputs))
	errs := make([]error, len(inputs))

	jobs := me.jobs
	if jobs < 1 {
		jobs = 1
	}

	var group errgroup.Group
	group.SetLimit(jobs)

	for i, in := range inputs {
		group.Go(func() error {
			// failures are collected per input so that one bad file does not
			// cancel the others
			results[i], errs[i] = me.scanOne(ctx, cfg, in)
			return nil
		})
	}

	_ = group.Wait()

	var merr *multierror.Error
	done := make([]*Result, 0, len(results))
	for i, res := range results {
		if errs[i] != nil {
			merr = multierror.Append(merr, errs[i])
			continue
		}
		done = append(done, res)
	}

	if err := write(out, me.format, done); err != nil {
		return errors.Errorf("writing output: %w", err)
	}

	return merr.ErrorOrNil()
}

func (me *Handler) inputs(stdin io.Reader, args []string) ([]input, error) {
	if me.text != "" {
		if len(args) > 0 {
			return nil, errors.New("--text cannot be combined with paths")
		}
		text := me.text
		return []input{{source: SourceText, content: &text}}, nil
	}

	if len(args) == 0 {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, errors.Errorf("reading stdin: %w", err)
		}
		text := string(data)
		return []input{{source: SourceStdin, content: &text}}, nil
	}

	var inputs []input
	for _, arg := range args {
		matches, err := me.expand(arg)
		if err != nil {
			inputs = append(inputs, input{source: arg, err: err})
			continue
		}
		for _, m := range matches {
			inputs = append(inputs, input{source: m})
		}
	}

	return inputs, nil
}

// expand resolves a doublestar glob against the handler's filesystem. A
// pattern without meta characters is returned as is.
func (me *Handler) expand(pattern string) ([]string, error) {
	if !strings.ContainsAny(pattern, "*?[{") {
		return []string{pattern}, nil
	}

	if !doublestar.ValidatePattern(pattern) {
		return nil, errors.Errorf("invalid glob %q", pattern)
	}

	base, rel := doublestar.SplitPattern(pattern)

	fsys := me.fs
	if base != "." {
		fsys = afero.NewBasePathFs(me.fs, base)
	}

	matches, err := doublestar.Glob(afero.NewIOFS(fsys), rel, doublestar.WithFilesOnly())
	if err != nil {
		return nil, errors.Errorf("expanding %q: %w", pattern, err)
	}

	if len(matches) == 0 {
		return nil, errors.Errorf("no files match %q", pattern)
	}

	sort.Strings(matches)

	if base != "." {
		for i, m := range matches {
			matches[i] = path.Join(base, m)
		}
	}

	return matches, nil
}

func (me *Handler) scanOne(ctx context.Context, cfg *config.Config, in input) (*Result, error) {
	if in.err != nil {
		return nil, in.err
	}

	var text string
	if in.content != nil {
		text = *in.content
	} else {
		data, err := afero.ReadFile(me.fs, in.source)
		if err != nil {
			return nil, errors.Errorf("reading %s: %w", in.source, err)
		}
		text = string(data)
	}

	// every input owns its own tokenizer instances
	toks, err := cfg.Build()
	if err != nil {
		return nil, errors.Errorf("building tokenizers for %s: %w", in.source, err)
	}

	logger := zerolog.Ctx(ctx).With().Str("source", in.source).Logger()
	tokens := scan.TokensContext(logger.WithContext(ctx), text, toks...)

	seq := position.NewSequence(text)
	res := &Result{Source: in.source, Tokens: make([]Token, 0, len(tokens))}
	for _, tok := range tokens {
		place := seq.LineAndColumn(tok.Range.Start)
		res.Tokens = append(res.Tokens, Token{
			Kind:   tok.Kind,
			Text:   tok.Text,
			Line:   place.Line + 1,
			Column: place.Character,
			Start:  tok.Range.Start.Scalar,
			End:    tok.Range.End.Scalar,
			Value:  tok.Value,
		})
	}

	logger.Debug().Int("tokens", len(res.Tokens)).Msg("scanned")

	return res, nil
}

func write(out io.Writer, format string, results []*Result) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	case FormatYAML:
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(results); err != nil {
			return err
		}
		return enc.Close()
	}

	kindColor := color.New(color.FgCyan, color.Bold)
	faint := color.New(color.Faint)

	for _, res := range results {
		for _, tok := range res.Tokens {
			loc := faint.Sprintf("%s:%d:%d", res.Source, tok.Line, tok.Column)
			if _, err := fmt.Fprintf(out, "%s %s %q\n", loc, kindColor.Sprint(tok.Kind), tok.Text); err != nil {
				return err
			}
		}
	}

	return nil
}
