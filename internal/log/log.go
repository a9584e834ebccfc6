package log

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

type options struct {
	level     slog.Level
	addSource bool
	writer    io.Writer
	json      bool
}

// Option configures the logger built by New.
type Option func(*options)

// WithLevel sets the minimum level from its name: debug, info, warn or error.
func WithLevel(level string) Option {
	return func(o *options) {
		o.level = ParseLevel(level)
	}
}

// WithSource adds the caller's file and line to every record.
func WithSource() Option {
	return func(o *options) {
		o.addSource = true
	}
}

// WithWriter redirects the output, stderr by default.
func WithWriter(w io.Writer) Option {
	return func(o *options) {
		o.writer = w
	}
}

// WithJSON switches to the JSON handler.
func WithJSON() Option {
	return func(o *options) {
		o.json = true
	}
}

// New creates a slog logger.
func New(opts ...Option) *slog.Logger {
	o := &options{
		level:  slog.LevelInfo,
		writer: os.Stderr,
	}
	for _, opt := range opts {
		opt(o)
	}

	handlerOptions := &slog.HandlerOptions{
		Level:     o.level,
		AddSource: o.addSource,
	}

	if o.json {
		return slog.New(slog.NewJSONHandler(o.writer, handlerOptions))
	}

	return slog.New(slog.NewTextHandler(o.writer, handlerOptions))
}

// ParseLevel - unknown names fall back to info
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
