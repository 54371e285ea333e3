// Worldcams - Live Webcam Map Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/worldcams

package config

import (
	"errors"
	"strings"
	"time"
)

// ErrMissingAPIKey is returned by RequireAPIKey when WINDY_API_KEY is unset.
var ErrMissingAPIKey = errors.New("WINDY_API_KEY environment variable is required")

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Windy    WindyConfig    `koanf:"windy"`
	Proxy    ProxyConfig    `koanf:"proxy"`
	Catalog  CatalogConfig  `koanf:"catalog"`
	Sync     SyncConfig     `koanf:"sync"`
	Security SecurityConfig `koanf:"security"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Environment     string        `koanf:"environment"` // development, staging, production
}

// WindyConfig holds settings for the Windy webcams directory API.
type WindyConfig struct {
	// APIKey is sent as x-windy-api-key. Never returned to HTTP callers.
	APIKey  string        `koanf:"api_key"`
	BaseURL string        `koanf:"base_url"`
	Timeout time.Duration `koanf:"timeout"`

	// RequestsPerSecond throttles outbound calls. 0 disables the limiter.
	RequestsPerSecond float64 `koanf:"requests_per_second"`

	// DetailInclude is the include list used for single-camera lookups.
	DetailInclude string `koanf:"detail_include"`
}

// ProxyConfig selects the shared response store used by /api/windy.
type ProxyConfig struct {
	// CacheBackend is one of: none, memory, badger, redis.
	CacheBackend   string `koanf:"cache_backend"`
	MemoryCapacity int    `koanf:"memory_capacity"`
	BadgerPath     string `koanf:"badger_path"`
	RedisAddr      string `koanf:"redis_addr"`
	RedisPassword  string `koanf:"redis_password"`
	RedisDB        int    `koanf:"redis_db"`
	KeyPrefix      string `koanf:"key_prefix"`
}

// CatalogConfig controls how the camera catalog is assembled.
type CatalogConfig struct {
	// Mode is "static" (curated list plus snapshot file) or "dynamic"
	// (curated list plus one live directory fetch, memoized).
	Mode         string `koanf:"mode"`
	CuratedPath  string `koanf:"curated_path"`
	SnapshotPath string `koanf:"snapshot_path"`

	// WarmOnStart loads the dynamic catalog when the server starts instead of
	// on the first request.
	WarmOnStart bool `koanf:"warm_on_start"`
}

// SyncConfig holds defaults for the offline sync pipelines.
type SyncConfig struct {
	Output      string        `koanf:"output"`
	TilesOutput string        `koanf:"tiles_output"`
	PageLimit   int           `koanf:"page_limit"`
	PageDelay   time.Duration `koanf:"page_delay"`
	MaxWebcams  int           `koanf:"max_webcams"`
	Include     string        `koanf:"include"`
	TileDelay   time.Duration `koanf:"tile_delay"`
	MaxRequests int           `koanf:"max_requests"`
	MinZoom     int           `koanf:"min_zoom"`
	MaxZoom     int           `koanf:"max_zoom"`
}

// SecurityConfig holds inbound rate limiting and CORS settings.
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	Level string `koanf:"level"`

	// Format is json or console.
	Format string `koanf:"format"`

	// Caller adds file:line to every entry.
	Caller bool `koanf:"caller"`
}

// HasAPIKey reports whether a Windy API key is configured.
func (c *Config) HasAPIKey() bool {
	return strings.TrimSpace(c.Windy.APIKey) != ""
}

// RequireAPIKey returns ErrMissingAPIKey when no key is configured.
// The sync CLI treats this as fatal; the server does not.
func (c *Config) RequireAPIKey() error {
	if !c.HasAPIKey() {
		return ErrMissingAPIKey
	}
	return nil
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Server.Environment, "production")
}

// Load reads configuration from defaults, an optional YAML file and the
// environment, then validates it.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
