package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"", zapcore.InfoLevel},
		{"debug", zapcore.DebugLevel},
		{"WARN", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestNew_NopWithoutSink(t *testing.T) {
	l, err := New(Options{})
	require.NoError(t, err)
	l.Info("dropped", "k", 1)
	l.Sync()
}

func TestNew_FileSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "radstar.log")
	l, err := New(Options{File: path, Level: "debug"})
	require.NoError(t, err)

	l.With("case", "trauma-gas").Debug("node selected", "node", "clinical")
	l.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.True(t, strings.Contains(out, "node selected"), out)
	assert.True(t, strings.Contains(out, `"case":"trauma-gas"`), out)
}

func TestNew_BadLevel(t *testing.T) {
	_, err := New(Options{Stderr: true, Level: "verbose"})
	assert.Error(t, err)
}
