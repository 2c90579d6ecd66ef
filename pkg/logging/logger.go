// Package logging configures structured logging for the loader using zerolog.
package logging

import (
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// LogLevel represents the logging level.
type LogLevel string

const (
	// LevelDebug logs every fetch.
	LevelDebug LogLevel = "debug"

	// LevelInfo logs batch start and completion.
	LevelInfo LogLevel = "info"

	// LevelWarn logs failed resources only.
	LevelWarn LogLevel = "warn"

	// LevelError logs fatal batch errors only.
	LevelError LogLevel = "error"
)

// Config holds logger configuration.
type Config struct {
	// Level is the minimum log level to output.
	Level LogLevel

	// Pretty enables human-readable console output (default: false for JSON).
	Pretty bool

	// Output is the writer to output logs to (default: os.Stderr).
	Output io.Writer
}

// DefaultConfig returns a default logger configuration.
func DefaultConfig() Config {
	return Config{
		Level:  LevelInfo,
		Pretty: false,
		Output: os.Stderr,
	}
}

// ConfigFromEnv overlays LOG_LEVEL and LOG_PRETTY on the default configuration.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		cfg.Level = LogLevel(level)
	}
	if pretty, err := strconv.ParseBool(os.Getenv("LOG_PRETTY")); err == nil {
		cfg.Pretty = pretty
	}
	return cfg
}

// Setup configures the global zerolog logger and returns it.
func Setup(cfg Config) zerolog.Logger {
	zerolog.SetGlobalLevel(parseLevel(cfg.Level))

	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}
	if cfg.Pretty {
		output = zerolog.ConsoleWriter{Out: output}
	}

	logger := zerolog.New(output).With().Timestamp().Logger()
	log.Logger = logger

	return logger
}

// parseLevel converts LogLevel to zerolog.Level.
func parseLevel(level LogLevel) zerolog.Level {
	switch strings.ToLower(string(level)) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// NewLogger creates a new logger with the given component name.
func NewLogger(component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}

// Log Level Guidelines:
//
// Debug: per-resource detail
//   - Each fetch with its result, size and duration
//
// Info: batch lifecycle
//   - Batch start (resource count)
//   - Batch completion (succeeded, failed, duration)
//
// Warn: a resource did not load, the batch continues
//   - Missing, invalid or unreadable resources
//   - Fetch units that panicked or exited
//
// Error: the batch or the process cannot continue
//   - Outcome integrity violations
//   - Invalid configuration, unreachable backends at startup
//
// Context Fields:
//   - component: fetcher, batch, loader, cli
//   - resource: resource identifier
//   - kind: failure kind (not_found, invalid_identifier, read_failure, execution_failure)
//   - reason: human-readable failure reason
//   - duration: fetch or batch duration
//   - backend: storage backend (file, redis, http, memory)
