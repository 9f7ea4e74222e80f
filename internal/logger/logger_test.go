package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type logEntry map[string]any

func decodeSingle(t *testing.T, buf *bytes.Buffer) logEntry {
	t.Helper()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry logEntry
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	return entry
}

func TestLoggerInfoWithFields(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log, err := New(Options{Level: "info", Writer: buf, Component: "planner"})
	require.NoError(t, err)

	log = log.WithFields(map[string]any{"stage": 3, "operator": "expand"})
	log.Info("stage completed")

	entry := decodeSingle(t, buf)
	require.Equal(t, "stage completed", entry["message"])
	require.Equal(t, "expand", entry["operator"])
	require.EqualValues(t, 3, entry["stage"])
	require.Equal(t, "planner", entry["component"])
	require.Equal(t, "info", entry["level"])
}

func TestLoggerWithSingleField(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log, err := New(Options{Writer: buf})
	require.NoError(t, err)

	log.With("topology", "clicks.yaml").Warn("unreachable operators ignored")

	entry := decodeSingle(t, buf)
	require.Equal(t, "clicks.yaml", entry["topology"])
	require.Equal(t, "warn", entry["level"])
}

func TestLoggerDebugRespectsLevel(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log, err := New(Options{Level: "info", Writer: buf})
	require.NoError(t, err)

	log.Debug("this should not appear")
	require.False(t, log.DebugEnabled())
	require.Equal(t, "", strings.TrimSpace(buf.String()))

	verbose, err := New(Options{Level: "DEBUG", Writer: buf})
	require.NoError(t, err)
	require.True(t, verbose.DebugEnabled())
}

func TestLoggerErrorIncludesContext(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log, err := New(Options{Level: "debug", Writer: buf})
	require.NoError(t, err)

	log = log.WithFields(map[string]any{"operator": "both"})
	log.Error(errors.New("boom"), "planning failed")

	entry := decodeSingle(t, buf)
	require.Equal(t, "planning failed", entry["message"])
	require.Equal(t, "both", entry["operator"])
	require.Equal(t, "boom", entry["error"])
}

func TestLoggerRejectsUnknownLevel(t *testing.T) {
	t.Parallel()

	_, err := New(Options{Level: "chatty"})
	require.Error(t, err)
}

func TestNilAndNopLoggersAreSilent(t *testing.T) {
	t.Parallel()

	var nilLogger *Logger
	require.NotPanics(t, func() {
		nilLogger.Info("ignored")
		nilLogger.Debug("ignored")
		nilLogger.Warn("ignored")
		nilLogger.Error(errors.New("x"), "ignored")
	})
	require.Nil(t, nilLogger.WithFields(map[string]any{"a": 1}))
	require.Nil(t, nilLogger.With("a", "b"))
	require.False(t, nilLogger.DebugEnabled())

	require.False(t, Nop().DebugEnabled())
	require.NotPanics(t, func() { Nop().Info("ignored") })
}
