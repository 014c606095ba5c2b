package logging

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogLevelString(t *testing.T) {
	assert.Equal(t, "DEBUG", LevelDebug.String())
	assert.Equal(t, "INFO", LevelInfo.String())
	assert.Equal(t, "WARN", LevelWarn.String())
	assert.Equal(t, "ERROR", LevelError.String())
	assert.Equal(t, "UNKNOWN", LogLevel(99).String())
}

func TestLogLevelSlogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, LevelDebug.SlogLevel())
	assert.Equal(t, slog.LevelInfo, LevelInfo.SlogLevel())
	assert.Equal(t, slog.LevelWarn, LevelWarn.SlogLevel())
	assert.Equal(t, slog.LevelError, LevelError.SlogLevel())
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	Init(LevelWarn, &buf)

	Debug("Client", "dropped")
	Info("Client", "dropped too")
	Warn("Checks", "kept %d", 1)

	out := buf.String()
	assert.NotContains(t, out, "dropped")
	assert.Contains(t, out, "kept 1")
	assert.Contains(t, out, "subsystem=Checks")
}

func TestErrorAttachesError(t *testing.T) {
	var buf bytes.Buffer
	Init(LevelDebug, &buf)

	Error("Client", errors.New("connection refused"), "request failed")

	out := buf.String()
	assert.Contains(t, out, "request failed")
	assert.Contains(t, out, "connection refused")
	assert.Contains(t, out, "subsystem=Client")
}

func TestFormatArgs(t *testing.T) {
	var buf bytes.Buffer
	Init(LevelDebug, &buf)

	Info("CLI", "checking %d resource types", 3)
	assert.Contains(t, buf.String(), "checking 3 resource types")

	// without args the format string passes through untouched
	buf.Reset()
	Info("CLI", "100%% done")
	assert.Contains(t, buf.String(), "100%% done")
}
