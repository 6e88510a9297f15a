package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		level   LogLevel
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{"INFO", LevelInfo, false},
		{"", LevelInfo, false},
		{"warning", LevelWarn, false},
		{"error", LevelError, false},
		{"loud", LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			level, err := ParseLevel(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.level, level)
		})
	}
}

func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&LoggerConfig{Level: LevelWarn, Output: &buf})

	ctx := context.Background()
	logger.Debug(ctx, "hidden debug")
	logger.Info(ctx, "hidden info")
	logger.Warn(ctx, nil, "shown warning")
	logger.Error(ctx, errors.New("boom"), "shown error")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown warning")
	assert.Contains(t, out, "error=boom")
}

func TestLoggerDebugLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&LoggerConfig{Level: LevelDebug, Output: &buf})
	logger.Debug(context.Background(), "visible debug")
	assert.Contains(t, buf.String(), "visible debug")
}

func TestLoggerJSONFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&LoggerConfig{Level: LevelInfo, Format: "json", Output: &buf})

	logger.WithComponent("watcher").With("root", "/site").Info(context.Background(), "watching", "files", 3)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "watching", entry["msg"])
	assert.Equal(t, "watcher", entry["component"])
	assert.Equal(t, "/site", entry["root"])
	assert.Equal(t, float64(3), entry["files"])
}

func TestWithDoesNotLeakFields(t *testing.T) {
	var buf bytes.Buffer
	base := NewLogger(&LoggerConfig{Level: LevelInfo, Output: &buf})
	_ = base.With("scoped", true)

	base.Info(context.Background(), "plain")
	assert.NotContains(t, buf.String(), "scoped")
}

func TestNopAndPerfLogger(t *testing.T) {
	NewNop().Error(context.Background(), errors.New("x"), "discarded")

	var buf bytes.Buffer
	logger := NewLogger(&LoggerConfig{Level: LevelDebug, Output: &buf})
	duration := logger.StartOperation("template").End(context.Background())
	assert.GreaterOrEqual(t, int64(duration), int64(0))
	assert.True(t, strings.Contains(buf.String(), "operation=template"))
}
