package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewWithWriterJSON(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, Options{Level: "warn"})

	log.Info("hidden")
	log.Warn("shown", "k", "v")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	require.Equal(t, "shown", line["msg"])
	require.Equal(t, "faqbot", line["service"])
	require.Equal(t, "v", line["k"])
}

func TestNewWithWriterText(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, Options{Level: "debug", Format: "TEXT"})

	log.Debug("hello")
	require.Contains(t, buf.String(), "msg=hello")
	require.Contains(t, buf.String(), "service=faqbot")
}

func TestParseLevel(t *testing.T) {
	require.Equal(t, slog.LevelDebug, parseLevel("DEBUG"))
	require.Equal(t, slog.LevelError, parseLevel("error"))
	require.Equal(t, slog.LevelInfo, parseLevel("verbose"))
}
