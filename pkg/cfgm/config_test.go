package cfgm

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

type testOutput struct {
	Dir  string `json:"dir"`
	File string `json:"file"`
}

type testSettings struct {
	Package string        `json:"package"`
	Verbose bool          `json:"verbose"`
	Timeout time.Duration `json:"timeout"`
	Tags    []string      `json:"tags"`
	Output  testOutput    `json:"output"`
	Ignored string        `json:"-"`
}

func defaultTestSettings() testSettings {
	return testSettings{
		Package: "config",
		Timeout: time.Second,
		Output:  testOutput{File: "config_gen.go"},
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestCollectConfigKeys(t *testing.T) {
	keys := collectConfigKeys(defaultTestSettings())
	assert.Equal(t, []string{"package", "verbose", "timeout", "tags", "output.dir", "output.file"}, keys)
}

func TestGenerateEnvBindings(t *testing.T) {
	got := generateEnvBindings("CONFGEN_", []string{"out-dir", "output.file"})
	assert.Equal(t, map[string]string{
		"CONFGEN_OUT_DIR":     "out-dir",
		"CONFGEN_OUTPUT_FILE": "output.file",
	}, got)
}

func TestLoad_Layers(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".confgen.yaml", "package: fromfile\ntimeout: 5s\noutput:\n  dir: ${GEN_DIR:-gen}\n")

	cfg, err := Load(defaultTestSettings(),
		WithAppName("confgen"),
		WithBaseDir(dir),
		WithEnvPrefix("CONFGEN_"),
		WithEnviron([]string{"CONFGEN_VERBOSE=true"}),
	)
	require.NoError(t, err)

	assert.Equal(t, "fromfile", cfg.Package)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.True(t, cfg.Verbose)
	assert.Equal(t, "gen", cfg.Output.Dir)
	assert.Equal(t, "config_gen.go", cfg.Output.File, "defaults survive partial nested overrides")
}

func TestLoad_FirstFileWins(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".confgen.yaml", "package: first\n")
	writeFile(t, dir, "config/confgen.yaml", "package: second\n")

	cfg, err := Load(defaultTestSettings(), WithAppName("confgen"), WithBaseDir(dir))
	require.NoError(t, err)
	assert.Equal(t, "first", cfg.Package)
}

func TestLoad_WithoutTemplateExpansion(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "s.yaml", "package: ${PKG:-x}\n")

	cfg, err := Load(defaultTestSettings(), WithConfigPaths(path), WithoutTemplateExpansion())
	require.NoError(t, err)
	assert.Equal(t, "${PKG:-x}", cfg.Package)
}

func TestLoad_UnknownKeys(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "s.yaml", "package: p\nunknown: 1\n")

	_, err := Load(defaultTestSettings(), WithConfigPaths(path))
	require.NoError(t, err, "unknown keys only warn by default")

	_, err = Load(defaultTestSettings(), WithConfigPaths(path), WithStrictKeys())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown key "unknown"`)
}

func TestLoad_InvalidFile(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		file    string
		content string
		errMsg  string
	}{
		{name: "yaml list root", file: "s.yaml", content: "- a\n- b\n", errMsg: "config root must be object"},
		{name: "broken json", file: "s.json", content: `{"package": `, errMsg: "parse config file"},
		{name: "required template var", file: "t.yaml", content: "package: ${NOPE:?needed}\n", errMsg: "needed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, dir, tt.file, tt.content)
			_, err := Load(defaultTestSettings(), WithConfigPaths(path), WithEnviron([]string{}))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestLoadCmd_FlagsOverride(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "s.yaml", "package: fromfile\ntags: [a]\n")

	var got *testSettings
	cmd := &cli.Command{
		Name: "test",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "package"},
			&cli.BoolFlag{Name: "verbose"},
			&cli.StringFlag{Name: "output-dir"},
			&cli.StringSliceFlag{Name: "tags"},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			cfg, err := LoadCmd(cmd, defaultTestSettings(), "", WithConfigPaths(path))
			got = cfg

			return err
		},
	}

	err := cmd.Run(context.Background(), []string{"test", "--output-dir", "out", "--verbose"})
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, "fromfile", got.Package, "unset flags keep file values")
	assert.Equal(t, "out", got.Output.Dir)
	assert.True(t, got.Verbose)
	assert.Equal(t, []string{"a"}, got.Tags)
}

func TestFlattenMapKeys(t *testing.T) {
	keys := flattenMapKeys(map[string]any{
		"a": 1,
		"b": map[string]any{"c": 2},
		"d": map[string]any{},
	})
	assert.ElementsMatch(t, []string{"a", "b.c", "d"}, keys)
}

func TestLoad_UnreadableFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".confgen.yaml"), 0o755))

	_, err := Load(defaultTestSettings(), WithAppName("confgen"), WithBaseDir(dir))
	require.Error(t, err, "a settings path that exists but cannot be read is not skipped")
	assert.Contains(t, err.Error(), "read config file")
}

func TestLoad_ParentNotDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "config", "not a directory\n")

	cfg, err := Load(defaultTestSettings(), WithAppName("confgen"), WithBaseDir(dir))
	require.NoError(t, err)
	assert.Equal(t, "config", cfg.Package)
}
