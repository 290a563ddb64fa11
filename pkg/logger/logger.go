// Package logger wraps log/slog behind a small interface that the rest of the
// service depends on, so tests can swap in a no-op implementation.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// LoggerInterface defines the logging operations used across the service.
type LoggerInterface interface {
	Info(msg string, args ...any)
	Error(msg string, args ...any)
	Warn(msg string, args ...any)
	Debug(msg string, args ...any)
	InfoContext(ctx context.Context, msg string, args ...any)
	ErrorContext(ctx context.Context, msg string, args ...any)
	WarnContext(ctx context.Context, msg string, args ...any)
	DebugContext(ctx context.Context, msg string, args ...any)
}

// Logger wraps slog.Logger.
type Logger struct {
	*slog.Logger
}

// Config holds logger configuration.
type Config struct {
	Level     slog.Level
	Output    io.Writer
	Format    string // "json" or "text"
	AddSource bool
}

// DefaultConfig returns JSON logging at info level on stdout.
func DefaultConfig() Config {
	return Config{
		Level:  slog.LevelInfo,
		Output: os.Stdout,
		Format: "json",
	}
}

// New creates a logger with the given configuration.
func New(config Config) LoggerInterface {
	opts := &slog.HandlerOptions{
		Level:     config.Level,
		AddSource: config.AddSource,
	}

	var handler slog.Handler
	switch config.Format {
	case "text":
		handler = slog.NewTextHandler(config.Output, opts)
	default:
		handler = slog.NewJSONHandler(config.Output, opts)
	}

	return &Logger{Logger: slog.New(handler)}
}

// NewWithOptions creates a logger from functional options applied on top of
// the default configuration.
func NewWithOptions(opts ...Option) LoggerInterface {
	config := DefaultConfig()
	for _, opt := range opts {
		opt(&config)
	}
	return New(config)
}

// NewJSONDefault creates a JSON logger with default settings.
func NewJSONDefault() LoggerInterface {
	return New(DefaultConfig())
}

// NoOpLogger returns a logger that discards everything, for tests.
func NoOpLogger() LoggerInterface {
	return &Logger{Logger: slog.New(noOpHandler{})}
}

type noOpHandler struct{}

func (h noOpHandler) Handle(_ context.Context, _ slog.Record) error { return nil }
func (h noOpHandler) Enabled(_ context.Context, _ slog.Level) bool  { return false }
func (h noOpHandler) WithAttrs(_ []slog.Attr) slog.Handler          { return h }
func (h noOpHandler) WithGroup(_ string) slog.Handler               { return h }
