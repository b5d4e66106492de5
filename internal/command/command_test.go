package command

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLogger(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	require.NoError(t, SetupLogger(&buf, "warn"))

	slog.Info("hidden")
	slog.Warn("Shown message", "key", "value")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "Shown message")
	assert.Contains(t, buf.String(), "key=value")

	require.Error(t, SetupLogger(&buf, "loud"))
}

func TestDefaultGeneratorName(t *testing.T) {
	assert.NotEmpty(t, DefaultGeneratorName())
	assert.NotEmpty(t, Version())
}

func TestFlagsMatchSettingsKeys(t *testing.T) {
	names := map[string]bool{}
	for _, f := range append(SourceFlags(), RenderFlags()...) {
		names[f.Names()[0]] = true
	}

	for _, key := range []string{"config", "format", "package", "type", "constructor", "generator"} {
		assert.True(t, names[key], "flag --%s", key)
	}
}
