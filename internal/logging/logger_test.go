package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/faizmokh/metastring/internal/config"
)

func TestNewConsoleRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "warn", Format: "console", Output: &buf})
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("reserved key overwritten", "key", "date")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "key=date")
	assert.NotContains(t, out, "time=")
}

func TestNewJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "debug", Format: "JSON", Output: &buf})
	require.NoError(t, err)

	logger.Debug("parsed", "file", "run-2.tif")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "DEBUG", record["level"])
	assert.Equal(t, "run-2.tif", record["file"])
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	_, err := New(Options{Format: "logfmt"})
	assert.Error(t, err)
}

func TestNewFromConfig(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.Default()
	cfg.Logging.Level = "error"

	logger, err := NewFromConfig(&cfg, &buf)
	require.NoError(t, err)
	assert.False(t, logger.Enabled(t.Context(), slog.LevelWarn))
	assert.True(t, logger.Enabled(t.Context(), slog.LevelError))

	logger, err = NewFromConfig(nil, &buf)
	require.NoError(t, err)
	assert.True(t, logger.Enabled(t.Context(), slog.LevelWarn))
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, parseLevel("warning"))
	assert.Equal(t, slog.LevelError, parseLevel("error"))
	assert.Equal(t, slog.LevelInfo, parseLevel(""))
}

func TestDiscard(t *testing.T) {
	Discard().Error("nothing happens")
}
