// Package log wraps log/slog with a per-component text logger shared by
// the repository backends and the CLI.
package log

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// Logger carries a component name attached to every record.
type Logger struct {
	sl        *slog.Logger
	component string
}

// New builds a text logger writing to stdout at the given level.
func New(component string, level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return &Logger{sl: slog.New(handler), component: component}
}

// Default returns an info-level logger for callers that did not set one up.
func Default(component string) *Logger {
	return &Logger{sl: slog.Default(), component: component}
}

// WithComponent returns a logger sharing the handler under another name.
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{sl: l.sl, component: component}
}

// With returns a logger with extra attributes attached to every record.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{sl: l.sl.With(args...), component: l.component}
}

func (l *Logger) Debug(msg string, args ...any) {
	l.sl.Debug(msg, append([]any{"component", l.component}, args...)...)
}

func (l *Logger) Info(msg string, args ...any) {
	l.sl.Info(msg, append([]any{"component", l.component}, args...)...)
}

func (l *Logger) Warn(msg string, args ...any) {
	l.sl.Warn(msg, append([]any{"component", l.component}, args...)...)
}

func (l *Logger) Error(msg string, args ...any) {
	l.sl.Error(msg, append([]any{"component", l.component}, args...)...)
}

// Component returns the logger's component name.
func (l *Logger) Component() string {
	return l.component
}

// ParseLevel maps a config string to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}
