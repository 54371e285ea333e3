// Worldcams - Live Webcam Map Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/worldcams

package config

import (
	"fmt"
	"strings"
	"time"
)

// Validate checks that the loaded configuration is usable.
// A missing WINDY_API_KEY is not a validation error.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}

	if err := c.validateWindy(); err != nil {
		return err
	}

	if err := c.validateProxy(); err != nil {
		return err
	}

	if err := c.validateCatalog(); err != nil {
		return err
	}

	if err := c.validateSync(); err != nil {
		return err
	}

	if err := c.validateRateLimits(); err != nil {
		return err
	}

	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	return nil
}

func (c *Config) validateWindy() error {
	if err := validateHTTPURL(c.Windy.BaseURL, "WINDY_BASE_URL"); err != nil {
		return err
	}
	if c.Windy.Timeout <= 0 {
		return fmt.Errorf("WINDY_TIMEOUT must be positive")
	}
	if c.Windy.RequestsPerSecond < 0 {
		return fmt.Errorf("WINDY_REQUESTS_PER_SECOND must not be negative")
	}
	return nil
}

var validCacheBackends = map[string]bool{
	"none":   true,
	"memory": true,
	"badger": true,
	"redis":  true,
}

func (c *Config) validateProxy() error {
	backend := strings.ToLower(c.Proxy.CacheBackend)
	if !validCacheBackends[backend] {
		return fmt.Errorf("PROXY_CACHE_BACKEND must be one of: none, memory, badger, redis")
	}

	switch backend {
	case "memory":
		if c.Proxy.MemoryCapacity < 1 {
			return fmt.Errorf("PROXY_MEMORY_CAPACITY must be positive")
		}
	case "badger":
		if strings.TrimSpace(c.Proxy.BadgerPath) == "" {
			return fmt.Errorf("BADGER_PATH is required when PROXY_CACHE_BACKEND=badger")
		}
	case "redis":
		if err := validateHostPort(c.Proxy.RedisAddr, "REDIS_ADDR"); err != nil {
			return err
		}
		if c.Proxy.RedisDB < 0 {
			return fmt.Errorf("REDIS_DB must not be negative")
		}
	}
	return nil
}

func (c *Config) validateCatalog() error {
	switch c.Catalog.Mode {
	case "static":
		if c.Catalog.SnapshotPath == "" {
			return fmt.Errorf("CATALOG_SNAPSHOT_PATH is required when CATALOG_MODE=static")
		}
	case "dynamic":
	default:
		return fmt.Errorf("CATALOG_MODE must be one of: static, dynamic")
	}
	return nil
}

// Zoom limits accepted by the map/clusters endpoint.
const (
	MinZoomLevel = 1
	MaxZoomLevel = 18
)

func (c *Config) validateSync() error {
	s := c.Sync
	if s.PageLimit < 1 || s.PageLimit > 50 {
		return fmt.Errorf("SYNC_PAGE_LIMIT must be between 1 and 50")
	}
	if s.MaxWebcams < 1 {
		return fmt.Errorf("SYNC_MAX_WEBCAMS must be positive")
	}
	if s.MaxRequests < 1 {
		return fmt.Errorf("SYNC_MAX_REQUESTS must be positive")
	}
	if s.PageDelay < 0 || s.TileDelay < 0 {
		return fmt.Errorf("SYNC_PAGE_DELAY and SYNC_TILE_DELAY must not be negative")
	}
	if s.MinZoom < MinZoomLevel || s.MaxZoom > MaxZoomLevel || s.MinZoom > s.MaxZoom {
		return fmt.Errorf("SYNC_MIN_ZOOM and SYNC_MAX_ZOOM must satisfy %d <= min <= max <= %d",
			MinZoomLevel, MaxZoomLevel)
	}
	if s.Output == "" || s.TilesOutput == "" {
		return fmt.Errorf("SYNC_OUTPUT and SYNC_TILES_OUTPUT must not be empty")
	}
	return nil
}

const (
	minRateLimitRequests = 1
	maxRateLimitRequests = 100000
	minRateLimitWindow   = time.Second
	maxRateLimitWindow   = time.Hour
)

func (c *Config) validateRateLimits() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < minRateLimitRequests || c.Security.RateLimitReqs > maxRateLimitRequests {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d", minRateLimitRequests, maxRateLimitRequests)
	}
	if c.Security.RateLimitWindow < minRateLimitWindow || c.Security.RateLimitWindow > maxRateLimitWindow {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v", minRateLimitWindow, maxRateLimitWindow)
	}
	return nil
}

var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}

// HasWildcardCORS reports whether any CORS origin is "*".
func (c *Config) HasWildcardCORS() bool {
	for _, origin := range c.Security.CORSOrigins {
		if origin == "*" {
			return true
		}
	}
	return false
}
