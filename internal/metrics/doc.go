// Worldcams - Live Webcam Map Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/worldcams

/*
Package metrics provides Prometheus metrics collection and export for observability.

Metrics are registered with the default registry through promauto and exposed
at /metrics by the API router:

	curl http://localhost:3857/metrics

# Available Metrics

HTTP Metrics:
  - api_requests_total: Total API requests (counter)
    Labels: method, endpoint, status_code
  - api_request_duration_seconds: Request latency (histogram)
  - api_active_requests: In-flight requests (gauge)
  - api_rate_limit_hits_total: Rejected requests (counter)

Windy Upstream Metrics:
  - windy_upstream_requests_total: Labels: operation, status
  - windy_upstream_request_duration_seconds: Labels: operation

Proxy Store Metrics:
  - proxy_cache_hits_total / proxy_cache_misses_total: Labels: backend, route
  - proxy_cache_errors_total: Labels: backend, operation

Catalog Metrics:
  - catalog_cameras: Labels: source (curated, windy)
  - catalog_loads_total: Labels: mode, result

Sync Metrics:
  - sync_runs_total: Labels: mode (paged, tiles), result (written, unchanged, failed)
  - sync_duration_seconds, sync_webcams, sync_upstream_requests_total,
    sync_last_success_timestamp: Labels: mode

Circuit Breaker Metrics:
  - circuit_breaker_state: 0=closed, 1=half-open, 2=open
  - circuit_breaker_requests_total: Labels: name, result
  - circuit_breaker_consecutive_failures
  - circuit_breaker_state_transitions_total

The sync CLI records into the same registry; its values are only visible
when the process lives long enough to be scraped, which is why sync runs
also print a report.
*/
package metrics
