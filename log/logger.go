// Package log is a thin leveled facade over logrus. Diagnostics go to
// stderr; the default level is warn so a normal run adds nothing beyond
// the tool's own output contract.
package log

import (
	"errors"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
)

type Level int

const (
	LevelTrace Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
)

func NewLevel(l string) (Level, error) {
	switch l {
	case LevelTrace.String():
		return LevelTrace, nil
	case LevelDebug.String():
		return LevelDebug, nil
	case LevelInfo.String():
		return LevelInfo, nil
	case LevelWarn.String():
		return LevelWarn, nil
	case LevelError.String():
		return LevelError, nil
	default:
		return LevelWarn, errors.New("invalid log level")
	}
}

func (l Level) String() string {
	switch l {
	case LevelTrace:
		return "trace"
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		panic("invalid level")
	}
}

// Logger logs a message with alternating key/value field pairs. Sub
// returns a child logger carrying additional fixed fields.
type Logger interface {
	Trace(string, ...interface{})
	Debug(string, ...interface{})
	Info(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
	Sub(...interface{}) Logger
}

var currLevel = LevelWarn

var rootLogger = newRoot()

func newRoot() *logrusLogger {
	backend := logrus.New()
	backend.SetOutput(os.Stderr)
	backend.SetFormatter(&logrus.TextFormatter{
		DisableColors:    !isatty.IsTerminal(os.Stderr.Fd()),
		DisableTimestamp: true,
	})
	backend.SetLevel(logrus.TraceLevel)
	return &logrusLogger{backend: backend}
}

// SetLevel sets the process-wide log level.
func SetLevel(level Level) {
	currLevel = level
}

// WithModule returns a logger tagged with the originating module name.
func WithModule(name string) Logger {
	return rootLogger.Sub("module", name)
}

func init() {
	// Tests default to trace so failures come with full diagnostics.
	if strings.HasSuffix(os.Args[0], ".test") {
		SetLevel(LevelTrace)
	}
}
