package config

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// SetupLogger creates a logger with the configured level and format. Output
// goes to stderr so command output on stdout stays clean.
func SetupLogger(cfg *Config) *slog.Logger {
	return NewLogger(cfg, os.Stderr)
}

// NewLogger is SetupLogger with an explicit writer.
func NewLogger(cfg *Config, w io.Writer) *slog.Logger {
	var logCfg LogConfig
	if cfg != nil {
		logCfg = cfg.Log
	}

	var level slog.Level
	switch strings.ToLower(logCfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if strings.ToLower(logCfg.Format) == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}
