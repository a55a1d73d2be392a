package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewLoggerOffWritesNothing(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger("off", &buf)
	require.NoError(t, err)

	logger.Error("should not appear", zap.String("key", "value"))
	assert.Empty(t, buf.String())
}

func TestNewLoggerWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger("info", &buf)
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.With(zap.String("run_id", "abc")).Info("visible", zap.Int("exit_code", 0))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "visible", entry["message"])
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "abc", entry["run_id"])
	assert.EqualValues(t, 0, entry["exit_code"])
	assert.Contains(t, entry, "timestamp")
}

func TestParseLogLevel(t *testing.T) {
	for _, level := range []string{"debug", "INFO", "warn", "warning", "error"} {
		_, err := parseLogLevel(level)
		assert.NoError(t, err, level)
	}

	_, err := parseLogLevel("verbose")
	assert.Error(t, err)

	_, err = NewLogger("verbose", &bytes.Buffer{})
	assert.Error(t, err)
}
