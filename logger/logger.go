// Package logger configures the process-wide slog logger.
package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Config selects where logs go and how verbose they are.
type Config struct {
	File  string // rotate JSON logs into this file; stderr text when empty
	Debug bool
}

var (
	mu     sync.RWMutex
	global = slog.New(slog.NewTextHandler(os.Stderr, nil))
)

// Setup installs the logger described by cfg as both L() and slog.Default().
// The returned cleanup closes the log file, if any.
func Setup(cfg Config) (func() error, error) {
	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: cfg.Debug,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey && a.Value.Kind() == slog.KindTime {
				a.Value = slog.StringValue(a.Value.Time().UTC().Format(time.RFC3339Nano))
			}
			return a
		},
	}

	var (
		h       slog.Handler
		closer  io.Closer
		cleanup = func() error { return nil }
	)
	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
			return cleanup, err
		}
		lj := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    5, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		}
		h = slog.NewJSONHandler(lj, opts)
		closer = lj
	} else {
		h = slog.NewTextHandler(os.Stderr, opts)
	}

	l := slog.New(h)
	mu.Lock()
	global = l
	mu.Unlock()
	slog.SetDefault(l)

	if closer != nil {
		cleanup = closer.Close
	}
	l.Debug("logger.initialized", "file", cfg.File, "debug", cfg.Debug)
	return cleanup, nil
}

// L returns the process-wide logger.
func L() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return global
}
