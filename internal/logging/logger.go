// Package logging wraps log/slog with rotating file output. The TUI owns
// stdout and stderr, so logs only ever go to a file; with no file configured
// every call is a noop.
package logging

import (
	"io"
	"log/slog"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Format selects the log output format.
type Format string

const (
	// FormatText outputs human-readable text logs
	FormatText Format = "text"
	// FormatJSON outputs structured JSON logs
	FormatJSON Format = "json"
)

// Config holds logger initialization options.
type Config struct {
	// FilePath is the log file path (empty disables logging)
	FilePath string
	// Level is the minimum level written (debug, info, warn, error)
	Level slog.Level
	// Format is text or json
	Format Format
	// MaxSizeMB is the file size in MB that triggers rotation
	MaxSizeMB int
	// MaxBackups is how many rotated files to keep
	MaxBackups int
}

var (
	global *slog.Logger
	noop   = slog.New(slog.NewTextHandler(io.Discard, nil))
)

// Init installs the global logger. With an empty FilePath the noop logger
// stays in place and output is discarded.
func Init(cfg Config) {
	if cfg.FilePath == "" {
		global = noop
		return
	}

	writer := &lumberjack.Logger{
		Filename:   cfg.FilePath,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		Compress:   true,
	}

	opts := &slog.HandlerOptions{Level: cfg.Level}

	var handler slog.Handler
	switch cfg.Format {
	case FormatJSON:
		handler = slog.NewJSONHandler(writer, opts)
	default:
		handler = slog.NewTextHandler(writer, opts)
	}

	global = slog.New(handler)
}

// Get returns the global logger, or the noop logger before Init.
func Get() *slog.Logger {
	if global == nil {
		return noop
	}
	return global
}

// Enabled reports whether Init installed a real logger.
func Enabled() bool {
	return Get() != noop
}

// Debug logs at debug level through the global logger.
func Debug(msg string, args ...any) {
	Get().Debug(msg, args...)
}

// Info logs at info level through the global logger.
func Info(msg string, args ...any) {
	Get().Info(msg, args...)
}

// Warn logs at warn level through the global logger.
func Warn(msg string, args ...any) {
	Get().Warn(msg, args...)
}

// Error logs at error level through the global logger.
func Error(msg string, args ...any) {
	Get().Error(msg, args...)
}

// ParseLevel converts a flag value to a slog.Level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch level {
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

// ParseFormat converts a flag value to a Format, defaulting to text.
func ParseFormat(format string) Format {
	if format == "json" {
		return FormatJSON
	}
	return FormatText
}
