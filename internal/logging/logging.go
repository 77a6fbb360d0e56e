// Package logging holds the structured logger shared by the library and the
// command line tools.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
)

var current atomic.Pointer[slog.Logger]

func init() {
	current.Store(Discard())
}

// ParseLevel parses a log level name. Unknown names map to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
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

// New creates a logger writing text (or JSON) records at or above level to w.
func New(w io.Writer, level slog.Level, json bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if json {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Stderr creates a text logger on standard error.
func Stderr(level slog.Level) *slog.Logger {
	return New(os.Stderr, level, false)
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

// Default returns the package-wide logger. It discards output until
// SetDefault is called.
func Default() *slog.Logger {
	return current.Load()
}

// SetDefault replaces the package-wide logger. A nil logger restores the
// discarding one.
func SetDefault(l *slog.Logger) {
	if l == nil {
		l = Discard()
	}
	current.Store(l)
}
