// Package logger provides the structured logger shared across the service.
package logger

import (
	"io"
	"log/slog"
	"os"
)

// Logger exposes slog plus process-fatal logging.
type Logger struct {
	*slog.Logger
}

func newAt(w io.Writer, level slog.Level) *Logger {
	return &Logger{
		Logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})),
	}
}

// New builds a text logger on stdout. The level uses slog numbering:
// -4 debug, 0 info, 4 warn, 8 error.
func New(level int) *Logger {
	return newAt(os.Stdout, slog.Level(level))
}

// NewDiscard builds a logger that drops everything. Tests use it to satisfy
// component constructors without polluting output.
func NewDiscard() *Logger {
	return newAt(io.Discard, slog.LevelError)
}

// Fatal logs the message at error level and terminates the process.
func (l *Logger) Fatal(msg string, args ...any) {
	l.Logger.Error(msg, args...)
	os.Exit(1)
}
