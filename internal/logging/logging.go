// Package logging builds the application logger.
//
// The TUI owns the terminal while a lab is running, so records go to a log
// file rather than stdout. Extra writers (stderr in pipe mode, test buffers)
// can be fanned in alongside the file.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	slogmulti "github.com/samber/slog-multi"
)

// New creates a logger writing to the given file plus any extra writers.
// The parent directory is created if missing. The returned closer releases
// the log file handle.
func New(path, level, format string, extra ...io.Writer) (*slog.Logger, func() error, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	handlers := []slog.Handler{newHandler(f, level, format)}
	for _, w := range extra {
		handlers = append(handlers, newHandler(w, level, format))
	}

	return slog.New(slogmulti.Fanout(handlers...)), f.Close, nil
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func newHandler(w io.Writer, levelStr, formatStr string) slog.Handler {
	opts := &slog.HandlerOptions{Level: parseLevel(levelStr)}
	if formatStr == "text" {
		return slog.NewTextHandler(w, opts)
	}
	return slog.NewJSONHandler(w, opts)
}

func parseLevel(levelStr string) slog.Level {
	switch levelStr {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
