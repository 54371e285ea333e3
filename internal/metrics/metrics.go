// Worldcams - Live Webcam Map Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/worldcams

package metrics

import (
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Windy upstream metrics
	UpstreamRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "windy_upstream_requests_total",
			Help: "Total number of requests sent to the Windy webcams API",
		},
		[]string{"operation", "status"}, // status: HTTP code, "error" or "rejected"
	)

	UpstreamDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "windy_upstream_request_duration_seconds",
			Help:    "Windy webcams API request duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"operation"},
	)

	// Proxy response store metrics
	ProxyCacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "proxy_cache_hits_total",
			Help: "Total number of proxy responses served from the shared store",
		},
		[]string{"backend", "route"},
	)

	ProxyCacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "proxy_cache_misses_total",
			Help: "Total number of proxy requests forwarded upstream",
		},
		[]string{"backend", "route"},
	)

	ProxyCacheErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "proxy_cache_errors_total",
			Help: "Total number of shared store failures (treated as misses)",
		},
		[]string{"backend", "operation"},
	)

	// Catalog metrics
	CatalogCameras = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "catalog_cameras",
			Help: "Number of cameras in the served catalog by source",
		},
		[]string{"source"},
	)

	CatalogLoads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_loads_total",
			Help: "Total number of catalog load attempts",
		},
		[]string{"mode", "result"},
	)

	// Sync Operation Metrics
	SyncDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sync_duration_seconds",
			Help:    "Duration of sync runs in seconds",
			Buckets: []float64{1, 5, 10, 30, 60, 120, 300, 600, 1200},
		},
		[]string{"mode"},
	)

	SyncRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sync_runs_total",
			Help: "Total number of sync runs by outcome",
		},
		[]string{"mode", "result"}, // result: "written", "unchanged", "failed"
	)

	SyncWebcams = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "sync_webcams",
			Help: "Number of webcams collected by the last sync run",
		},
		[]string{"mode"},
	)

	SyncRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sync_upstream_requests_total",
			Help: "Total number of upstream requests issued by sync runs",
		},
		[]string{"mode"},
	)

	SyncLastSuccess = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "sync_last_success_timestamp",
			Help: "Unix timestamp of the last successful sync run",
		},
		[]string{"mode"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)
)

// RecordAPIRequest records API request metrics
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest increments or decrements the active request gauge
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRateLimitHit records a rejected inbound request
func RecordRateLimitHit(endpoint string) {
	APIRateLimitHits.WithLabelValues(endpoint).Inc()
}

// RecordUpstreamRequest records one call to the Windy API. statusCode is 0
// when the request never produced a response.
func RecordUpstreamRequest(operation string, statusCode int, duration time.Duration) {
	status := "error"
	if statusCode > 0 {
		status = strconv.Itoa(statusCode)
	}
	UpstreamRequests.WithLabelValues(operation, status).Inc()
	UpstreamDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordUpstreamRejected records a call refused by the circuit breaker
func RecordUpstreamRejected(operation string) {
	UpstreamRequests.WithLabelValues(operation, "rejected").Inc()
}

// RecordProxyCache records a proxy response store lookup
func RecordProxyCache(backend, route string, hit bool) {
	if hit {
		ProxyCacheHits.WithLabelValues(backend, route).Inc()
		return
	}
	ProxyCacheMisses.WithLabelValues(backend, route).Inc()
}

// RecordProxyCacheError records a failed store read or write
func RecordProxyCacheError(backend, operation string) {
	ProxyCacheErrors.WithLabelValues(backend, operation).Inc()
}

// RecordCatalogLoad records a catalog load and, on success, the per-source
// camera counts.
func RecordCatalogLoad(mode string, counts map[string]int, err error) {
	if err != nil {
		CatalogLoads.WithLabelValues(mode, "failed").Inc()
		return
	}
	CatalogLoads.WithLabelValues(mode, "success").Inc()
	for source, n := range counts {
		CatalogCameras.WithLabelValues(source).Set(float64(n))
	}
}

// RecordSyncRun records the outcome of one sync pipeline run
func RecordSyncRun(mode string, duration time.Duration, webcams, requests int, written bool, err error) {
	SyncDuration.WithLabelValues(mode).Observe(duration.Seconds())
	SyncRequests.WithLabelValues(mode).Add(float64(requests))

	switch {
	case err != nil:
		SyncRuns.WithLabelValues(mode, "failed").Inc()
		return
	case written:
		SyncRuns.WithLabelValues(mode, "written").Inc()
	default:
		SyncRuns.WithLabelValues(mode, "unchanged").Inc()
	}
	SyncWebcams.WithLabelValues(mode).Set(float64(webcams))
	SyncLastSuccess.WithLabelValues(mode).Set(float64(time.Now().Unix()))
}

// BreakerStateValue converts a breaker state name to the gauge encoding
func BreakerStateValue(state string) float64 {
	switch strings.ToLower(state) {
	case "closed":
		return 0
	case "half-open":
		return 1
	case "open":
		return 2
	default:
		return -1
	}
}
