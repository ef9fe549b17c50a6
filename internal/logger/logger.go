// Package logger wraps log/slog with the level handling used by the CLI.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

type Logger struct {
	internal *slog.Logger
}

func New(level string) *Logger {
	return NewWithWriter(os.Stderr, level)
}

func NewWithWriter(w io.Writer, level string) *Logger {
	lvl := new(slog.LevelVar)
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		lvl.Set(slog.LevelDebug)
	case "warn":
		lvl.Set(slog.LevelWarn)
	case "error":
		lvl.Set(slog.LevelError)
	default:
		lvl.Set(slog.LevelInfo)
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})
	return &Logger{internal: slog.New(handler)}
}

// Discard drops everything; used by tests and library callers without a logger.
func Discard() *Logger {
	return &Logger{internal: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

func (l *Logger) Debug(msg string, args ...any) { l.internal.Debug(msg, args...) }
func (l *Logger) Info(msg string, args ...any)  { l.internal.Info(msg, args...) }
func (l *Logger) Warn(msg string, args ...any)  { l.internal.Warn(msg, args...) }
func (l *Logger) Error(msg string, args ...any) { l.internal.Error(msg, args...) }

func (l *Logger) With(args ...any) *Logger {
	return &Logger{internal: l.internal.With(args...)}
}
