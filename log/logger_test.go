package log

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func newTestLogger(buf *bytes.Buffer) *logrusLogger {
	backend := logrus.New()
	backend.SetOutput(buf)
	backend.SetFormatter(&logrus.TextFormatter{
		DisableColors:    true,
		DisableTimestamp: true,
	})
	backend.SetLevel(logrus.TraceLevel)
	return &logrusLogger{backend: backend}
}

func TestLoggerLevels(t *testing.T) {
	prev := currLevel
	defer SetLevel(prev)

	var buf bytes.Buffer
	lgr := newTestLogger(&buf)

	SetLevel(LevelTrace)
	lgr.Trace("tracing along", "step", 1)
	require.Contains(t, buf.String(), "tracing along")
	require.Contains(t, buf.String(), "step=1")

	buf.Reset()
	SetLevel(LevelError)
	lgr.Debug("should be gated")
	lgr.Warn("also gated")
	require.Empty(t, buf.String())
	lgr.Error("kept")
	require.Contains(t, buf.String(), "kept")
}

func TestLoggerSub(t *testing.T) {
	prev := currLevel
	defer SetLevel(prev)
	SetLevel(LevelInfo)

	var buf bytes.Buffer
	lgr := newTestLogger(&buf).Sub("module", "driver")
	lgr.Info("refilled", "bytes", 64)
	require.Contains(t, buf.String(), "module=driver")
	require.Contains(t, buf.String(), "bytes=64")
}

func TestLoggerFieldPairs(t *testing.T) {
	var buf bytes.Buffer
	lgr := newTestLogger(&buf)
	require.Panics(t, func() {
		lgr.Error("odd", "dangling-key")
	})
}

func TestNewLevel(t *testing.T) {
	for _, level := range []Level{LevelTrace, LevelDebug, LevelInfo, LevelWarn, LevelError} {
		parsed, err := NewLevel(level.String())
		require.NoError(t, err)
		require.Equal(t, level, parsed)
	}
	_, err := NewLevel("loud")
	require.Error(t, err)
}
