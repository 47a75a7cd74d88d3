package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayoisaiah/timeattack/internal/config"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warn"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("info"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("chatty"))
}

func TestNewWithWriterFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer

	l := NewWithWriter(&buf, "warn")
	l.Info("hidden")
	l.Warn("shown", slog.String("ticket_id", "T1"))

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "msg=shown")
	assert.Contains(t, out, "ticket_id=T1")
}

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log", "timeattack.log")

	l, closeFn, err := New(path, config.LogConfig{Level: "info", MaxSizeMB: 1, MaxBackups: 1})
	require.NoError(t, err)

	l.Info("session started", slog.String("session_id", "s1"))
	require.NoError(t, closeFn())

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "session_id=s1")
}
