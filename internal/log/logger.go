// Package log builds the structured logger used across archlens.
//
// Warnings raised while summarizing a project (skipped files, caps reached)
// and failures talking to the analysis API are reported through this logger
// on stderr, keeping stdout free for the analysis itself.
package log

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Format represents the log output format.
type Format string

const (
	// FormatText outputs human-readable key=value lines.
	FormatText Format = "text"
	// FormatJSON outputs one JSON object per line.
	FormatJSON Format = "json"
)

// Standard field keys for structured logging.
const (
	PathKey     = "path"
	RootKey     = "root"
	ProviderKey = "provider"
	ModelKey    = "model"
	RunIDKey    = "run_id"
	DurationKey = "duration"
	LimitKey    = "limit"
)

// Config holds the logging configuration.
type Config struct {
	// Level sets the minimum level (debug, info, warn, error). Default: info
	Level string
	// Format selects the handler. Default: text
	Format Format
	// Output is the destination. Default: os.Stderr
	Output io.Writer
	// AddSource adds file:line to each record.
	AddSource bool
}

// DefaultConfig returns a Config with CLI-friendly defaults.
func DefaultConfig() *Config {
	return &Config{
		Level:  "info",
		Format: FormatText,
		Output: os.Stderr,
	}
}

// FromEnv creates a Config from environment variables.
// Supported environment variables:
//   - ARCHLENS_DEBUG: true/1 enables debug level and source locations
//   - ARCHLENS_LOG_LEVEL: debug, info, warn, error
//   - ARCHLENS_LOG_FORMAT: text, json
func FromEnv() *Config {
	cfg := DefaultConfig()

	debug := os.Getenv("ARCHLENS_DEBUG")
	if debug == "true" || debug == "1" {
		cfg.Level = "debug"
		cfg.AddSource = true
	} else if level := os.Getenv("ARCHLENS_LOG_LEVEL"); level != "" {
		cfg.Level = strings.ToLower(level)
	}

	if format := os.Getenv("ARCHLENS_LOG_FORMAT"); format != "" {
		cfg.Format = Format(strings.ToLower(format))
	}
	return cfg
}

// New creates a structured logger from the given configuration.
func New(cfg *Config) *slog.Logger {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}

	opts := &slog.HandlerOptions{
		Level:     parseLevel(cfg.Level),
		AddSource: cfg.AddSource,
	}

	var handler slog.Handler
	switch cfg.Format {
	case FormatJSON:
		handler = slog.NewJSONHandler(out, opts)
	default:
		handler = slog.NewTextHandler(out, opts)
	}
	return slog.New(handler)
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func parseLevel(level string) slog.Level {
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
		return slog.LevelInfo
	}
}

// WithComponent returns a logger tagged with a component name.
func WithComponent(logger *slog.Logger, component string) *slog.Logger {
	return logger.With("component", component)
}

// Error creates an error attribute.
func Error(err error) slog.Attr {
	return slog.Any("error", err)
}

// SanitizeAPIKey masks an API key, showing only the last 4 characters.
func SanitizeAPIKey(key string) string {
	if len(key) <= 4 {
		return "[REDACTED]"
	}
	return "..." + key[len(key)-4:]
}
