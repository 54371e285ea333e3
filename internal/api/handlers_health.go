// Worldcams - Live Webcam Map Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/worldcams

package api

import (
	"net/http"
	"time"
)

// liveStatus is the body of GET /health/live.
type liveStatus struct {
	Alive  bool    `json:"alive"`
	Uptime float64 `json:"uptime"`
}

// readyStatus is the body of GET /health/ready.
type readyStatus struct {
	Ready        bool    `json:"ready_to_serve"`
	CatalogMode  string  `json:"catalog_mode"`
	CatalogReady bool    `json:"catalog_loaded"`
	ProxyCache   string  `json:"proxy_cache"`
	BreakerState string  `json:"windy_breaker,omitempty"`
	Uptime       float64 `json:"uptime"`
}

// HealthLive handles liveness probe requests (Kubernetes-style).
// Returns 200 OK if the process is alive, regardless of dependencies.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(liveStatus{
		Alive:  true,
		Uptime: time.Since(h.startTime).Seconds(),
	})
}

// HealthReady handles readiness probe requests (Kubernetes-style).
// Returns 200 once the camera catalog is loaded and 503 before. An open
// Windy breaker is reported but does not fail readiness: the catalog is
// still served.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	status := readyStatus{
		CatalogMode:  h.catalog.Mode(),
		CatalogReady: h.catalog.Ready(),
		ProxyCache:   h.store.Name(),
		Uptime:       time.Since(h.startTime).Seconds(),
	}
	if h.windy != nil {
		status.BreakerState = h.windy.BreakerState()
	}
	status.Ready = status.CatalogReady

	rw := NewResponseWriter(w, r)
	if !status.Ready {
		rw.ServiceUnavailable("Camera catalog not loaded", status)
		return
	}
	rw.Success(status)
}
