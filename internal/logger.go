package internal

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Logger pairs a structured logger with the file it writes to, if any.
type Logger struct {
	*slog.Logger
	file *os.File
}

// NewLogger builds a logger from cfg. With cfg.File set, records are appended
// to that file; otherwise they go to stderr.
func NewLogger(cfg LogConfig) (*Logger, error) {
	level, err := parseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	var (
		w    io.Writer = os.Stderr
		file *os.File
	)
	if cfg.File != "" {
		file, err = os.OpenFile(cfg.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		w = file
	}
	return &Logger{Logger: slog.New(newHandler(w, cfg.Format, level)), file: file}, nil
}

func newHandler(w io.Writer, format string, level slog.Level) slog.Handler {
	opts := &slog.HandlerOptions{Level: level}
	if format == "json" {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

// Close closes the log file, if one was opened.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("unknown log level %q", s)
}
