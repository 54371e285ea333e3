// Worldcams - Live Webcam Map Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/worldcams

/*
Package main is the Worldcams HTTP server.

It serves the camera catalog under /api/v1, proxies the Windy webcams API
under /api/windy so the key never reaches browsers, and exposes health
probes and Prometheus metrics.

	RootSupervisor ("worldcams")
	├── DataSupervisor ("data-layer")
	│   ├── CatalogWarmer (CATALOG_MODE=dynamic, CATALOG_WARM_ON_START=true)
	│   └── CacheGC       (PROXY_CACHE_BACKEND=badger)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

# Configuration

Koanf layers, highest priority first: environment, config.yaml, defaults.

	WINDY_API_KEY=...            # required for /api/windy and dynamic mode
	HTTP_PORT=3857
	CATALOG_MODE=static          # static | dynamic
	CATALOG_CURATED_PATH=data/cameras.json
	CATALOG_SNAPSHOT_PATH=data/windy-webcams.json
	PROXY_CACHE_BACKEND=memory   # none | memory | badger | redis
	RATE_LIMIT_REQUESTS=120
	RATE_LIMIT_WINDOW=1m
	CORS_ORIGINS=https://worldcams.example
	LOG_LEVEL=info
	LOG_FORMAT=json

The snapshot file is produced by the worldcams-sync command.

SIGINT and SIGTERM drain in-flight requests for HTTP_SHUTDOWN_TIMEOUT.

# Port 3857

The default port references EPSG:3857, the Web Mercator projection.
*/
package main
