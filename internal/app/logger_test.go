package app

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		level string
		want  slog.Level
	}{
		{level: "debug", want: slog.LevelDebug},
		{level: "info", want: slog.LevelInfo},
		{level: "warn", want: slog.LevelWarn},
		{level: "error", want: slog.LevelError},
		{level: "", want: slog.LevelInfo},
		{level: "chatty", want: slog.LevelInfo},
	}

	for _, tc := range testCases {
		t.Run(tc.level, func(t *testing.T) {
			logger := newLogger(tc.level, "text", &bytes.Buffer{})
			assert.True(t, logger.Enabled(context.Background(), tc.want))
			assert.False(t, logger.Enabled(context.Background(), tc.want-1))
		})
	}
}

func TestNewLogger_JSON(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	newLogger("info", "json", buf).Info("hello", "node", 3)

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "hello", record["msg"])
	assert.Equal(t, 3.0, record["node"])
}
