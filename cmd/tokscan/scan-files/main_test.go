package scan_files_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	scan_files "github.com/walteh/tokscan/cmd/tokscan/scan-files"
)

func setupFS(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()

	fs := afero.NewMemMapFs()
	for name, content := range files {
		require.NoError(t, afero.WriteFile(fs, name, []byte(content), 0o644))
	}
	return fs
}

func execute(t *testing.T, fs afero.Fs, stdin string, args ...string) (string, string, error) {
	t.Helper()

	prev := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = prev }()

	var stdout, stderr bytes.Buffer
	cmd := scan_files.NewScanCommand(fs)
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func decodeJSON(t *testing.T, out string) []scan_files.Result {
	t.Helper()

	var results []scan_files.Result
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	return results
}

func TestScan_InlineTextJSON(t *testing.T) {
	out, _, err := execute(t, afero.NewMemMapFs(), "", "--text", "on 12/01/27 I saw 3.5", "--format", "json")
	require.NoError(t, err)

	results := decodeJSON(t, out)
	require.Len(t, results, 1)
	assert.Equal(t, scan_files.SourceText, results[0].Source)

	toks := results[0].Tokens
	require.Len(t, toks, 5)

	kinds := make([]string, len(toks))
	for i, tok := range toks {
		kinds[i] = tok.Kind
	}
	assert.Equal(t, []string{"letters", "date", "letters", "letters", "number"}, kinds)

	date := toks[1]
	assert.Equal(t, "12/01/27", date.Text)
	assert.Equal(t, 1, date.Line)
	assert.Equal(t, 4, date.Column)
	assert.Equal(t, 3, date.Start)
	assert.Equal(t, 11, date.End)
	assert.Equal(t, "2027-12-01T00:00:00Z", date.Value)
}

func TestScan_GlobText(t *testing.T) {
	fs := setupFS(t, map[string]string{
		"/data/a.txt":     "cat 7",
		"/data/sub/b.txt": "dog\n8",
		"/data/c.md":      "ignored",
	})

	out, _, err := execute(t, fs, "", "/data/**/*.txt")
	require.NoError(t, err)

	assert.Equal(t, strings.Join([]string{
		`/data/a.txt:1:1 letters "cat"`,
		`/data/a.txt:1:5 number "7"`,
		`/data/sub/b.txt:1:1 letters "dog"`,
		`/data/sub/b.txt:2:1 number "8"`,
	}, "\n")+"\n", out)
}

func TestScan_PreservesArgumentOrder(t *testing.T) {
	fs := setupFS(t, map[string]string{
		"/z.txt": "1",
		"/a.txt": "2",
		"/m.txt": "3",
	})

	out, _, err := execute(t, fs, "", "--format", "json", "--jobs", "3", "/z.txt", "/a.txt", "/m.txt")
	require.NoError(t, err)

	results := decodeJSON(t, out)
	require.Len(t, results, 3)
	assert.Equal(t, "/z.txt", results[0].Source)
	assert.Equal(t, "/a.txt", results[1].Source)
	assert.Equal(t, "/m.txt", results[2].Source)
}

func TestScan_AggregatesFailures(t *testing.T) {
	fs := setupFS(t, map[string]string{
		"/data/a.txt": "cat",
	})

	out, _, err := execute(t, fs, "", "--format", "json", "/missing.txt", "/data/a.txt", "/data/*.csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "/missing.txt")
	assert.Contains(t, err.Error(), `no files match "/data/*.csv"`)
	assert.Contains(t, err.Error(), "2 errors occurred")

	results := decodeJSON(t, out)
	require.Len(t, results, 1)
	assert.Equal(t, "/data/a.txt", results[0].Source)
}

func TestScan_Config(t *testing.T) {
	fs := setupFS(t, map[string]string{
		"/cfg/tokscan.yaml": `
tokenizers:
  - kind: literal
    value: cat
    name: pet
`,
	})

	out, _, err := execute(t, fs, "", "--config", "/cfg/tokscan.yaml", "--format", "json", "--text", "cat catalog cat")
	require.NoError(t, err)

	results := decodeJSON(t, out)
	require.Len(t, results, 1)
	require.Len(t, results[0].Tokens, 2)
	assert.Equal(t, "pet", results[0].Tokens[0].Kind)
	assert.Equal(t, 12, results[0].Tokens[1].Start)
}

func TestScan_InvalidConfig(t *testing.T) {
	fs := setupFS(t, map[string]string{
		"/cfg/tokscan.hcl": `tokenizer "regex" {}`,
	})

	_, _, err := execute(t, fs, "", "--config", "/cfg/tokscan.hcl", "--text", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown tokenizer kind")
}

func TestScan_YAML(t *testing.T) {
	out, _, err := execute(t, afero.NewMemMapFs(), "", "--format", "yaml", "--text", "👶 42")
	require.NoError(t, err)

	var results []scan_files.Result
	require.NoError(t, yaml.Unmarshal([]byte(out), &results))
	require.Len(t, results, 1)
	require.Len(t, results[0].Tokens, 2)
	assert.Equal(t, "emoji", results[0].Tokens[0].Kind)
	assert.Equal(t, "number", results[0].Tokens[1].Kind)
	assert.Equal(t, 3, results[0].Tokens[1].Column)
}

func TestScan_Stdin(t *testing.T) {
	out, _, err := execute(t, afero.NewMemMapFs(), "hello 42", "--format", "json")
	require.NoError(t, err)

	results := decodeJSON(t, out)
	require.Len(t, results, 1)
	assert.Equal(t, scan_files.SourceStdin, results[0].Source)
	require.Len(t, results[0].Tokens, 2)
}

func TestScan_BadFlags(t *testing.T) {
	_, _, err := execute(t, afero.NewMemMapFs(), "", "--format", "xml", "--text", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format")

	_, _, err = execute(t, afero.NewMemMapFs(), "", "--text", "x", "/a.txt")
	require.Error(t, err)
}

func TestScan_DebugLogsRunID(t *testing.T) {
	prev := zerolog.GlobalLevel()
	defer zerolog.SetGlobalLevel(prev)

	_, stderr, err := execute(t, afero.NewMemMapFs(), "", "--debug", "--text", "42")
	require.NoError(t, err)

	assert.Equal(t, zerolog.TraceLevel, zerolog.GlobalLevel())

	assert.Contains(t, stderr, "run_id")
	assert.Contains(t, stderr, "token matched")
}
