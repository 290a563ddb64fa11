package logger

import (
	"io"
	"log/slog"
	"os"
)

// Option is a function that configures a logger.
type Option func(*Config)

// WithLevel sets the logging level.
func WithLevel(level slog.Level) Option {
	return func(c *Config) {
		c.Level = level
	}
}

// WithOutput sets the output writer.
func WithOutput(output io.Writer) Option {
	return func(c *Config) {
		c.Output = output
	}
}

// WithFormat sets the log format ("json" or "text").
func WithFormat(format string) Option {
	return func(c *Config) {
		c.Format = format
	}
}

// WithSource enables source code locations in log records.
func WithSource(enabled bool) Option {
	return func(c *Config) {
		c.AddSource = enabled
	}
}

// WithStderr sets the output to stderr.
func WithStderr() Option {
	return WithOutput(os.Stderr)
}
