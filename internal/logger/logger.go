// ABOUTME: Structured logging configuration using log/slog.
// ABOUTME: Provides Init() for stderr logging and InitFile() for the TUI's debug.log.

package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// DebugLogName is the log file created in the config directory
const DebugLogName = "debug.log"

// Init configures the default slog logger to write to stderr.
// LOG_LEVEL: debug, info, warn, error (default: warn, so command output stays clean)
// LOG_FORMAT: text, json (default: text)
func Init() {
	Setup(os.Stderr, slog.LevelWarn)
}

// InitFile sends logs to <configDir>/debug.log at debug level unless LOG_LEVEL
// says otherwise. The TUI owns the terminal, so it logs here instead of stderr.
// The returned func closes the file.
func InitFile(configDir string) (func() error, error) {
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(filepath.Join(configDir, DebugLogName), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return nil, err
	}
	Setup(f, slog.LevelDebug)
	return f.Close, nil
}

// Setup installs a default logger writing to w. fallback applies when LOG_LEVEL
// is unset or unrecognized.
func Setup(w io.Writer, fallback slog.Level) {
	level := parseLevel(os.Getenv("LOG_LEVEL"), fallback)
	format := strings.ToLower(os.Getenv("LOG_FORMAT"))

	opts := &slog.HandlerOptions{
		Level: level,
	}

	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	slog.SetDefault(slog.New(handler))
}

// parseLevel converts a string log level to slog.Level.
func parseLevel(level string, fallback slog.Level) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return fallback
	}
}
