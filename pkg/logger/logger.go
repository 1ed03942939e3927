package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Options selects the level and encoding of the logger.
type Options struct {
	Level  string
	Format string
}

// New constructs a slog logger writing to stderr so stdout stays free for the chat.
func New(opts Options) *slog.Logger {
	return NewWithWriter(os.Stderr, opts)
}

// NewWithWriter is New with an explicit destination.
func NewWithWriter(w io.Writer, opts Options) *slog.Logger {
	handlerOpts := &slog.HandlerOptions{Level: parseLevel(opts.Level)}
	var handler slog.Handler
	if strings.EqualFold(opts.Format, "text") {
		handler = slog.NewTextHandler(w, handlerOpts)
	} else {
		handler = slog.NewJSONHandler(w, handlerOpts)
	}
	return slog.New(handler).With("service", "faqbot")
}

func parseLevel(level string) slog.Leveler {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
