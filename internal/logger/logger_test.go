package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/mutker/vitalchart/internal/errors"
	"codeberg.org/mutker/vitalchart/internal/logger"
)

func capture(t *testing.T, level logger.LogLevel) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	logger.SetOutput(&buf)
	logger.SetLogLevel(level)
	t.Cleanup(func() { logger.SetLogLevel(logger.WarnLevel) })
	return &buf
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name string
		want logger.LogLevel
		ok   bool
	}{
		{"debug", logger.DebugLevel, true},
		{"info", logger.InfoLevel, true},
		{"warn", logger.WarnLevel, true},
		{"warning", logger.WarnLevel, true},
		{"error", logger.ErrorLevel, true},
		{"loud", logger.WarnLevel, false},
	}
	for _, tt := range tests {
		got, ok := logger.ParseLevel(tt.name)
		assert.Equal(t, tt.want, got, tt.name)
		assert.Equal(t, tt.ok, ok, tt.name)
	}
}

func TestLevelFiltering(t *testing.T) {
	buf := capture(t, logger.WarnLevel)

	logger.Info().Msg("hidden")
	logger.Warn().Str("metric", "intraday_spo2").Msg("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "intraday_spo2", entry["metric"])
	assert.Equal(t, "shown", entry["message"])
}

func TestErrorWithContext(t *testing.T) {
	buf := capture(t, logger.DebugLevel)

	err := errors.New().WithData(errors.ErrInvalidSample, "point 3")
	logger.New().ErrorWithContext(err, "store", "import").Msg("import failed")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "store", entry["component"])
	assert.Equal(t, "import", entry["operation"])
	assert.Equal(t, "invalid_sample", entry["error_code"])
	assert.Equal(t, "Invalid sample: point 3", entry["error_message"])
}
