// Worldcams - Live Webcam Map Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/worldcams

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the config file locations searched in order.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/worldcams/config.yaml",
	"/etc/worldcams/config.yml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            3857,
			Host:            "0.0.0.0",
			Timeout:         30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			Environment:     "development",
		},
		Windy: WindyConfig{
			APIKey:            "",
			BaseURL:           "https://api.windy.com",
			Timeout:           30 * time.Second,
			RequestsPerSecond: 0,
			DetailInclude:     "location,images,player,urls",
		},
		Proxy: ProxyConfig{
			CacheBackend:   "memory",
			MemoryCapacity: 512,
			BadgerPath:     "/data/proxy-cache",
			RedisAddr:      "localhost:6379",
			RedisDB:        0,
			KeyPrefix:      "worldcams:proxy:",
		},
		Catalog: CatalogConfig{
			Mode:         "static",
			CuratedPath:  "data/cameras.json",
			SnapshotPath: "data/windy-webcams.json",
			WarmOnStart:  true,
		},
		Sync: SyncConfig{
			Output:      "data/windy-webcams.json",
			TilesOutput: "data/windy-webcams-tiles.json",
			PageLimit:   50,
			PageDelay:   100 * time.Millisecond,
			MaxWebcams:  1000,
			Include:     "location",
			TileDelay:   150 * time.Millisecond,
			MaxRequests: 3000,
			MinZoom:     4,
			MaxZoom:     7,
		},
		Security: SecurityConfig{
			RateLimitReqs:     120,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
			CORSOrigins:       []string{"*"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// LoadWithKoanf loads configuration with precedence ENV > file > defaults.
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths are parsed from comma-separated env values.
var sliceConfigPaths = []string{
	"security.cors_origins",
}

func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envMappings maps environment variable names (lower-cased) to koanf paths.
var envMappings = map[string]string{
	"windy_api_key":             "windy.api_key",
	"windy_base_url":            "windy.base_url",
	"windy_timeout":             "windy.timeout",
	"windy_requests_per_second": "windy.requests_per_second",
	"windy_detail_include":      "windy.detail_include",

	"http_port":             "server.port",
	"http_host":             "server.host",
	"http_timeout":          "server.timeout",
	"http_shutdown_timeout": "server.shutdown_timeout",
	"environment":           "server.environment",

	"proxy_cache_backend":   "proxy.cache_backend",
	"proxy_memory_capacity": "proxy.memory_capacity",
	"badger_path":           "proxy.badger_path",
	"redis_addr":            "proxy.redis_addr",
	"redis_password":        "proxy.redis_password",
	"redis_db":              "proxy.redis_db",
	"proxy_key_prefix":      "proxy.key_prefix",

	"catalog_mode":          "catalog.mode",
	"catalog_curated_path":  "catalog.curated_path",
	"catalog_snapshot_path": "catalog.snapshot_path",
	"catalog_warm_on_start": "catalog.warm_on_start",

	"sync_output":       "sync.output",
	"sync_tiles_output": "sync.tiles_output",
	"sync_page_limit":   "sync.page_limit",
	"sync_page_delay":   "sync.page_delay",
	"sync_max_webcams":  "sync.max_webcams",
	"sync_include":      "sync.include",
	"sync_tile_delay":   "sync.tile_delay",
	"sync_max_requests": "sync.max_requests",
	"sync_min_zoom":     "sync.min_zoom",
	"sync_max_zoom":     "sync.max_zoom",

	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",
	"cors_origins":        "security.cors_origins",

	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc maps an environment variable name to its koanf path.
// Unmapped names return "" so unrelated variables never reach the config.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
