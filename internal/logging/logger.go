// Worldcams - Live Webcam Map Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/worldcams

package logging

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/worldcams/internal/config"
)

// Binary names stamped into the service field.
const (
	ServiceServer = "worldcams"
	ServiceSync   = "worldcams-sync"
)

// Config holds logging configuration.
type Config struct {
	// Level is trace, debug, info, warn, error or disabled. Default: info
	Level string

	// Format is json or console. Default: json
	Format string

	Caller    bool
	Timestamp bool

	// Output defaults to os.Stderr.
	Output io.Writer

	// Service is stamped as the app field, with Version, on every entry so
	// server and sync logs can share one sink.
	Service string
	Version string
}

// DefaultConfig is what the package uses before Init runs.
func DefaultConfig() Config {
	return Config{
		Level:     "info",
		Format:    "json",
		Timestamp: true,
		Output:    os.Stderr,
		Service:   ServiceServer,
	}
}

// FromSettings maps the LOG_* settings onto a Config for service.
func FromSettings(s config.LoggingConfig, service string, out io.Writer) Config {
	cfg := DefaultConfig()
	if s.Level != "" {
		cfg.Level = s.Level
	}
	if s.Format != "" {
		cfg.Format = s.Format
	}
	cfg.Caller = s.Caller
	cfg.Service = service
	if out != nil {
		cfg.Output = out
	}
	return cfg
}

var (
	log zerolog.Logger
	mu  sync.RWMutex
)

//nolint:gochecknoinits // logging must work before Init is called
func init() {
	log = build(DefaultConfig())
}

// Init replaces the global logger. Safe to call more than once.
func Init(cfg Config) {
	l := build(cfg)
	mu.Lock()
	log = l
	mu.Unlock()
}

func build(cfg Config) zerolog.Logger {
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}

	zerolog.SetGlobalLevel(parseLevel(cfg.Level))
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.TimestampFieldName = "time"
	zerolog.MessageFieldName = "message"

	out := cfg.Output
	if cfg.Format == "console" {
		out = zerolog.ConsoleWriter{Out: cfg.Output, TimeFormat: "15:04:05"}
	}

	ctx := zerolog.New(out).With()
	if cfg.Timestamp {
		ctx = ctx.Timestamp()
	}
	if cfg.Caller {
		ctx = ctx.Caller()
	}
	if cfg.Service != "" {
		ctx = ctx.Str("app", cfg.Service)
	}
	if cfg.Version != "" {
		ctx = ctx.Str("version", cfg.Version)
	}
	return ctx.Logger()
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

func current() *zerolog.Logger {
	mu.RLock()
	l := log
	mu.RUnlock()
	return &l
}

// Logger returns a copy of the global logger.
func Logger() zerolog.Logger {
	return *current()
}

// SetLogger replaces the global logger. Tests use it to capture output.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func SetLogger(l zerolog.Logger) {
	mu.Lock()
	log = l
	mu.Unlock()
}

// With creates a child logger context.
func With() zerolog.Context {
	return current().With()
}

// Info starts a message at info level.
//
//	logging.Info().Str("catalog_mode", mode).Msg("Starting Worldcams")
func Info() *zerolog.Event { return current().Info() }

// Warn starts a message at warn level.
func Warn() *zerolog.Event { return current().Warn() }

// Error starts a message at error level.
func Error() *zerolog.Event { return current().Error() }

// Fatal starts a message at fatal level. The process exits after it is
// written.
func Fatal() *zerolog.Event { return current().Fatal() }

// NewTestLogger creates a JSON logger writing to w.
func NewTestLogger(w io.Writer) zerolog.Logger {
	return zerolog.New(w).With().Timestamp().Logger()
}
