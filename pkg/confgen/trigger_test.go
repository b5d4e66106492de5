package confgen

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmitRebuildTriggers(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EmitRebuildTriggers(&buf, DefaultTriggerPrefix, "config.yaml", "", "gen.go"))
	assert.Equal(t, "confgen:rerun-if-changed=config.yaml\nconfgen:rerun-if-changed=gen.go\n", buf.String())

	buf.Reset()
	require.NoError(t, EmitRebuildTriggers(&buf, "cargo:", "config.yaml"))
	assert.Equal(t, "cargo:rerun-if-changed=config.yaml\n", buf.String())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("closed pipe")
}

func TestEmitRebuildTriggers_WriteError(t *testing.T) {
	err := EmitRebuildTriggers(failingWriter{}, DefaultTriggerPrefix, "config.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "closed pipe")
}

func TestDepfile(t *testing.T) {
	got := Depfile("out/config_gen.go", "my config.yaml", "", "gen#1.go", "$HOME.yaml")
	assert.Equal(t, "out/config_gen.go: my\\ config.yaml gen\\#1.go $$HOME.yaml\n", string(got))
}

func TestWriteDepfile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.d")

	require.NoError(t, WriteDepfile(path, "config_gen.go", "config.yaml"))
	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "config_gen.go: config.yaml\n", string(got))

	err = WriteDepfile(filepath.Join(dir, "missing", "config.d"), "config_gen.go")
	require.ErrorIs(t, err, ErrWriteFailure)
}
