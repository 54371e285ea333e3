// Worldcams - Live Webcam Map Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/worldcams

/*
Package config provides layered configuration for the server and the sync CLI.

# Configuration Sources

Values are loaded in three layers, later layers winning:
  - built-in defaults (defaultConfig)
  - an optional YAML file (CONFIG_PATH, then config.yaml in the working
    directory, then /etc/worldcams/config.yaml)
  - environment variables mapped explicitly in envTransformFunc

Unmapped environment variables are ignored.

# Environment Variables

Windy directory:
  - WINDY_API_KEY: secret key injected into upstream requests
  - WINDY_BASE_URL: upstream base URL (default: https://api.windy.com)
  - WINDY_TIMEOUT: per-request timeout (default: 30s)
  - WINDY_REQUESTS_PER_SECOND: outbound rate limit, 0 disables

Server and proxy:
  - HTTP_PORT, HTTP_HOST, HTTP_TIMEOUT
  - PROXY_CACHE_BACKEND: none, memory, badger or redis
  - BADGER_PATH, REDIS_ADDR, REDIS_PASSWORD, REDIS_DB

Catalog:
  - CATALOG_MODE: static or dynamic
  - CATALOG_CURATED_PATH, CATALOG_SNAPSHOT_PATH

Sync pipelines:
  - SYNC_OUTPUT, SYNC_TILES_OUTPUT, SYNC_PAGE_LIMIT, SYNC_PAGE_DELAY,
    SYNC_MAX_WEBCAMS, SYNC_TILE_DELAY, SYNC_MAX_REQUESTS

Logging: LOG_LEVEL, LOG_FORMAT, LOG_CALLER.

# Usage

	cfg, err := config.Load()
	if err != nil {
	    logging.Fatal().Err(err).Msg("Failed to load configuration")
	}
*/
package config
