// Worldcams - Live Webcam Map Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/worldcams

/*
Package middleware provides chi-compatible HTTP middleware shared by the API.

Key Components:

  - RequestID: accepts or generates X-Request-ID and seeds the logging context
  - PrometheusMetrics: request count, latency and in-flight gauge, labelled
    by the chi route pattern so /api/v1/cameras/{id} is one series
  - Compression: gzip for clients that send Accept-Encoding: gzip
  - AccessLog: one debug-level log line per request

Middleware Stack:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog)
	r.Route("/api/v1", func(r chi.Router) {
	    r.Use(middleware.PrometheusMetrics)
	    r.Use(middleware.Compression)
	    r.Get("/cameras", h.ListCameras)
	})

All middleware is safe for concurrent use.
*/
package middleware
