package confgen

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestGenerator_Run(t *testing.T) {
	dir := t.TempDir()
	outDir := t.TempDir()
	source := writeSource(t, dir, "config.json", `{"ServerPort": "8080", "LogLevel": "info"}`)

	var triggers bytes.Buffer
	result, err := New(Options{
		ConfigPath:    source,
		OutDir:        outDir,
		GeneratorPath: "gen.go",
		TriggerPrefix: DefaultTriggerPrefix,
		Triggers:      &triggers,
		Depfile:       filepath.Join(outDir, "config.d"),
	}).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(outDir, DefaultFilename), result.OutputPath)
	assert.Equal(t, 2, result.Entries)

	src, err := os.ReadFile(result.OutputPath)
	require.NoError(t, err)
	assert.Equal(t, result.Bytes, len(src))

	out := parseOutput(t, src)
	assert.Equal(t, DefaultPackage, out.pkg)
	assert.Equal(t, map[string]string{
		"ServerPort": `json:"server_port"`,
		"LogLevel":   `json:"log_level"`,
	}, out.fields)
	assert.Equal(t, map[string]string{"ServerPort": "8080", "LogLevel": "info"}, out.consts)
	assert.Equal(t, []string{"ServerPort", "LogLevel"}, out.initOrder)

	assert.Equal(t,
		"confgen:rerun-if-changed="+source+"\nconfgen:rerun-if-changed=gen.go\n",
		triggers.String())

	depfile, err := os.ReadFile(filepath.Join(outDir, "config.d"))
	require.NoError(t, err)
	assert.Equal(t, string(Depfile(result.OutputPath, source, "gen.go")), string(depfile))
}

func TestGenerator_GeneratorNameIsHeaderOnly(t *testing.T) {
	dir := t.TempDir()
	outDir := t.TempDir()
	source := writeSource(t, dir, "config.yaml", "a: \"1\"\n")

	var triggers bytes.Buffer
	result, err := New(Options{
		ConfigPath:    source,
		OutDir:        outDir,
		GeneratorName: "example.com/tools/confgen",
		TriggerPrefix: DefaultTriggerPrefix,
		Triggers:      &triggers,
		Depfile:       filepath.Join(outDir, "config.d"),
	}).Run(context.Background())
	require.NoError(t, err)

	src, err := os.ReadFile(result.OutputPath)
	require.NoError(t, err)
	assert.Contains(t, string(src), "// Generated by example.com/tools/confgen.\n")

	assert.Equal(t, "confgen:rerun-if-changed="+source+"\n", triggers.String())

	depfile, err := os.ReadFile(filepath.Join(outDir, "config.d"))
	require.NoError(t, err)
	assert.Equal(t, string(Depfile(result.OutputPath, source)), string(depfile))
}

func TestGenerator_GeneratorPathWins(t *testing.T) {
	dir := t.TempDir()
	source := writeSource(t, dir, "config.yaml", "a: \"1\"\n")

	var triggers bytes.Buffer
	result, err := New(Options{
		ConfigPath:    source,
		OutDir:        t.TempDir(),
		GeneratorPath: "gen.go",
		GeneratorName: "example.com/tools/confgen",
		TriggerPrefix: DefaultTriggerPrefix,
		Triggers:      &triggers,
	}).Run(context.Background())
	require.NoError(t, err)

	src, err := os.ReadFile(result.OutputPath)
	require.NoError(t, err)
	assert.Contains(t, string(src), "// Generated by gen.go.\n")
	assert.NotContains(t, string(src), "example.com/tools/confgen")
	assert.Equal(t, "confgen:rerun-if-changed="+source+"\nconfgen:rerun-if-changed=gen.go\n", triggers.String())
}

func TestGenerator_RunIsRepeatable(t *testing.T) {
	dir := t.TempDir()
	source := writeSource(t, dir, "config.yaml", "b: \"2\"\na: \"1\"\n")

	run := func() []byte {
		outDir := t.TempDir()
		result, err := New(Options{ConfigPath: source, OutDir: outDir, Triggers: &bytes.Buffer{}}).Run(context.Background())
		require.NoError(t, err)
		src, err := os.ReadFile(result.OutputPath)
		require.NoError(t, err)

		return src
	}

	assert.Equal(t, run(), run())
}

func TestGenerator_FailuresLeaveOutputUntouched(t *testing.T) {
	tests := []struct {
		name    string
		source  func(dir string) string
		kind    error
		keyword string
	}{
		{
			name:    "duplicate identifier",
			source:  func(dir string) string { return writeSource(t, dir, "c.json", `{"a-b": "1", "a_b": "2"}`) },
			kind:    ErrDuplicateIdentifier,
			keyword: `key "a_b"`,
		},
		{
			name:   "missing source",
			source: func(dir string) string { return filepath.Join(dir, "missing.yaml") },
			kind:   ErrSourceUnavailable,
		},
		{
			name:    "non-mapping root",
			source:  func(dir string) string { return writeSource(t, dir, "c.yaml", "- a\n") },
			kind:    ErrUnexpectedShape,
			keyword: "c.yaml",
		},
		{
			name:    "non-string value",
			source:  func(dir string) string { return writeSource(t, dir, "c.yaml", "port: 8080\n") },
			kind:    ErrUnsupportedValueType,
			keyword: `key "port"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			outDir := t.TempDir()
			existing := writeSource(t, outDir, DefaultFilename, "// previous output\n")

			var triggers bytes.Buffer
			_, err := New(Options{ConfigPath: tt.source(dir), OutDir: outDir, Triggers: &triggers}).Run(context.Background())
			require.ErrorIs(t, err, tt.kind)
			if tt.keyword != "" {
				assert.Contains(t, err.Error(), tt.keyword)
			}

			got, err := os.ReadFile(existing)
			require.NoError(t, err)
			assert.Equal(t, "// previous output\n", string(got))
			assert.Empty(t, triggers.String(), "no triggers on failure")

			entries, err := os.ReadDir(outDir)
			require.NoError(t, err)
			assert.Len(t, entries, 1)
		})
	}
}

func TestGenerator_NoOutputFileOnFailure(t *testing.T) {
	dir := t.TempDir()
	outDir := t.TempDir()
	source := writeSource(t, dir, "c.json", `{"a-b": "1", "a_b": "2"}`)

	_, err := New(Options{ConfigPath: source, OutDir: outDir, Triggers: &bytes.Buffer{}}).Run(context.Background())
	require.ErrorIs(t, err, ErrDuplicateIdentifier)

	_, err = os.Stat(filepath.Join(outDir, DefaultFilename))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestGenerator_MissingOutDir(t *testing.T) {
	_, err := New(Options{ConfigPath: filepath.Join(t.TempDir(), "missing.yaml")}).Run(context.Background())
	require.ErrorIs(t, err, ErrMissingEnvironment)
	require.NotErrorIs(t, err, ErrSourceUnavailable, "checked before reading the source")
}

func TestGenerator_ExpandEnv(t *testing.T) {
	dir := t.TempDir()
	source := writeSource(t, dir, "c.yaml", "Host: ${HOST:-localhost}\nUrl: http://${HOST}:${PORT:-80}\n")

	gen := New(Options{
		ConfigPath: source,
		ExpandEnv:  true,
		Environ:    []string{"HOST=example.com"},
	})
	set, _, err := gen.Prepare(context.Background())
	require.NoError(t, err)

	host, _ := set.Lookup("host")
	url, _ := set.Lookup("url")
	assert.Equal(t, "example.com", host.Value)
	assert.Equal(t, "http://example.com:80", url.Value)

	noExpand, _, err := New(Options{ConfigPath: source}).Prepare(context.Background())
	require.NoError(t, err)
	host, _ = noExpand.Lookup("host")
	assert.Equal(t, "${HOST:-localhost}", host.Value)
}

func TestGenerator_ExpandEnvError(t *testing.T) {
	dir := t.TempDir()
	source := writeSource(t, dir, "c.yaml", "Token: ${TOKEN:?token is required}\n")

	_, _, err := New(Options{ConfigPath: source, ExpandEnv: true, Environ: []string{}}).Prepare(context.Background())
	require.ErrorIs(t, err, ErrMalformedDocument)
	assert.Contains(t, err.Error(), `key "Token"`)
	assert.Contains(t, err.Error(), "token is required")
}

func TestGenerator_ContextCanceled(t *testing.T) {
	dir := t.TempDir()
	source := writeSource(t, dir, "c.yaml", "a: b\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(Options{ConfigPath: source, OutDir: t.TempDir()}).Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestGenerator_ReservedNames(t *testing.T) {
	dir := t.TempDir()
	source := writeSource(t, dir, "c.yaml", "settings: x\n")

	_, _, err := New(Options{ConfigPath: source, TypeName: "Settings"}).Prepare(context.Background())
	require.ErrorIs(t, err, ErrReservedIdentifier)

	_, _, err = New(Options{ConfigPath: source}).Prepare(context.Background())
	require.NoError(t, err)
}
