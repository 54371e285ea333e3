// Worldcams - Live Webcam Map Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/worldcams

/*
Package api provides the HTTP layer of the webcam map backend.

Endpoints:

	GET /api/windy                    key-hiding Windy proxy
	GET /api/v1/cameras               catalog list (q, category, west/north/east/south)
	GET /api/v1/cameras/random        random camera (exclude)
	GET /api/v1/cameras/{id}          one camera, external ones refreshed live
	GET /api/v1/cameras/{id}/nearby   neighbours within radiusKm
	GET /api/v1/categories            local and upstream categories
	GET /health/live, /health/ready   probes
	GET /metrics                      Prometheus

# Windy Proxy

The proxy has two routes. With path=all-webcams it fetches the whole
collection and allows caching for four hours. Otherwise it forwards either
one webcam lookup (id) or a bounding box query, cached for ten minutes.
Errors use a plain {"error": "..."} body; the upstream body and API key are
never returned. Responses can be kept in a shared store (see
internal/proxycache), reported through the X-Proxy-Cache header.

# Catalog Endpoints

The /api/v1 endpoints wrap results in the standard envelope:

	{"success": true, "data": [...], "meta": {"request_id": "...", "timestamp": "...", "pagination": {"total": 812, "count": 40}}}

Query parameters are validated with go-playground/validator; failures return
400 with VALIDATION_FAILED and per-field details.

Usage:

	handler := api.NewHandler(loader, windyClient, store)
	router := api.NewRouter(handler, api.ChiMiddlewareConfigFromSecurity(cfg.Security))
	srv := &http.Server{Addr: ":3857", Handler: router.Setup()}
*/
package api
