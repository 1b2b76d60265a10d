package logger

import (
	"log/slog"
	"os"
	"sync/atomic"
)

// Logger is the logging interface used across the codebase.
// Implementations carry structured fields accumulated via WithField.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	WithField(key string, value any) Logger
}

var defaultLogger atomic.Pointer[slogLogger]

func init() {
	defaultLogger.Store(&slogLogger{inner: slog.New(slog.NewTextHandler(os.Stderr, nil))})
}

// SetLevel reconfigures the process-wide logger with the given minimum level.
func SetLevel(level slog.Level) {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	defaultLogger.Store(&slogLogger{inner: slog.New(handler)})
}

// Default returns the process-wide logger.
func Default() Logger {
	return defaultLogger.Load()
}

// WithField returns the default logger with an extra field attached.
func WithField(key string, value any) Logger {
	return Default().WithField(key, value)
}

type slogLogger struct {
	inner *slog.Logger
}

func (l *slogLogger) Debug(msg string, args ...any) { l.inner.Debug(msg, args...) }
func (l *slogLogger) Info(msg string, args ...any)  { l.inner.Info(msg, args...) }
func (l *slogLogger) Warn(msg string, args ...any)  { l.inner.Warn(msg, args...) }
func (l *slogLogger) Error(msg string, args ...any) { l.inner.Error(msg, args...) }

func (l *slogLogger) WithField(key string, value any) Logger {
	return &slogLogger{inner: l.inner.With(key, value)}
}
