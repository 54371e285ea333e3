// Worldcams - Live Webcam Map Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/worldcams

package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/tomtom215/worldcams/internal/logging"
	"github.com/tomtom215/worldcams/internal/metrics"
	"github.com/tomtom215/worldcams/internal/models"
	"github.com/tomtom215/worldcams/internal/validation"
	"github.com/tomtom215/worldcams/internal/windy"
)

// Proxy error bodies. Upstream bodies and the key are never returned.
const (
	msgMissingKey     = "WINDY_API_KEY not configured"
	msgUpstreamFailed = "Failed to fetch from Windy API"
	msgAllFailed      = "Failed to fetch all webcams from Windy"
	msgInternal       = "Internal server error"
)

// AllWebcamsPath selects the full-collection route.
const AllWebcamsPath = "all-webcams"

// ProxyCacheHeader reports whether the shared response store answered.
const ProxyCacheHeader = "X-Proxy-Cache"

// proxyRoute describes one upstream route: how long responses may be
// cached and which error body a failure produces.
type proxyRoute struct {
	name         string
	maxAge       time.Duration
	errorMessage string
	extraHeaders map[string]string
}

var (
	routeDefault = proxyRoute{
		name:         "default",
		maxAge:       10 * time.Minute,
		errorMessage: msgUpstreamFailed,
	}
	routeAllWebcams = proxyRoute{
		name:         "all_webcams",
		maxAge:       4 * time.Hour,
		errorMessage: msgAllFailed,
		extraHeaders: map[string]string{"X-Cache-For": "4-hours"},
	}
)

func (p proxyRoute) cacheControl() string {
	secs := int(p.maxAge.Seconds())
	return fmt.Sprintf("public, max-age=%d, s-maxage=%d", secs, secs)
}

// proxyQuery is the validated query of a default-route request.
type proxyQuery struct {
	ID      string `query:"id" validate:"omitempty,cameraid"`
	Include string `query:"include" validate:"max=256"`
	boundsQuery
}

// upstreamRequest is one resolved upstream call.
type upstreamRequest struct {
	route proxyRoute
	path  string
	query url.Values
}

// cacheKey identifies the upstream request. Encode sorts parameters so
// equivalent requests share an entry.
func (u upstreamRequest) cacheKey() string {
	return u.route.name + ":" + u.path + "?" + u.query.Encode()
}

// resolveProxyRequest maps the inbound query to one upstream request.
// Any path other than all-webcams falls through to the default route.
func resolveProxyRequest(q url.Values) (upstreamRequest, error) {
	if q.Get("path") == AllWebcamsPath {
		return upstreamRequest{route: routeAllWebcams, path: windy.WebcamsPath, query: url.Values{}}, nil
	}

	bounds, err := parseBoundsQuery(q)
	if err != nil {
		return upstreamRequest{}, err
	}
	pq := proxyQuery{ID: q.Get("id"), Include: q.Get("include"), boundsQuery: bounds}
	if verr := validation.ValidateStruct(pq); verr != nil {
		return upstreamRequest{}, verr
	}

	upstreamQuery := url.Values{}
	if pq.Include != "" {
		upstreamQuery.Set("include", pq.Include)
	}

	if pq.ID != "" {
		return upstreamRequest{
			route: routeDefault,
			path:  windy.WebcamPath(models.UpstreamID(pq.ID)),
			query: upstreamQuery,
		}, nil
	}

	if box, ok := bounds.box(); ok {
		if err := box.Validate(); err != nil {
			return upstreamRequest{}, err
		}
	}
	// Present edges are forwarded as sent.
	for _, key := range bboxParams {
		if v := q.Get(key); v != "" {
			upstreamQuery.Set(key, v)
		}
	}
	return upstreamRequest{route: routeDefault, path: windy.WebcamsPath, query: upstreamQuery}, nil
}

// WindyProxy handles GET /api/windy.
//
// It injects the server-side API key and forwards one request upstream.
// Successful bodies are returned verbatim with the route's Cache-Control
// and kept in the shared store for the same duration.
func (h *Handler) WindyProxy(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if h.windy == nil || !h.windy.HasAPIKey() {
		logging.Ctx(ctx).Error().Msg("WINDY_API_KEY is not configured")
		writePlainError(w, r, http.StatusInternalServerError, msgMissingKey)
		return
	}

	req, err := resolveProxyRequest(r.URL.Query())
	if err != nil {
		logging.Ctx(ctx).Debug().Str("query", sanitizeLogValue(r.URL.RawQuery)).Err(err).Msg("Rejected proxy request")
		writePlainError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	key := req.cacheKey()
	if body, ok := h.lookupStore(ctx, req.route, key); ok {
		h.writeProxyBody(w, req.route, body, "HIT")
		return
	}

	resp, err := h.windy.Get(ctx, req.path, req.query)
	if err != nil {
		h.writeProxyFailure(w, r, req.route, err)
		return
	}

	if err := h.store.Set(ctx, key, resp.Body, req.route.maxAge); err != nil {
		metrics.RecordProxyCacheError(h.store.Name(), "set")
		logging.Ctx(ctx).Warn().Err(err).Str("backend", h.store.Name()).Msg("Failed to store proxy response")
	}
	h.writeProxyBody(w, req.route, resp.Body, "MISS")
}

func (h *Handler) lookupStore(ctx context.Context, route proxyRoute, key string) ([]byte, bool) {
	body, ok, err := h.store.Get(ctx, key)
	if err != nil {
		metrics.RecordProxyCacheError(h.store.Name(), "get")
		logging.Ctx(ctx).Warn().Err(err).Str("backend", h.store.Name()).Msg("Proxy cache lookup failed")
		ok = false
	}
	metrics.RecordProxyCache(h.store.Name(), route.name, ok)
	return body, ok
}

func (h *Handler) writeProxyBody(w http.ResponseWriter, route proxyRoute, body []byte, cacheStatus string) {
	hdr := w.Header()
	hdr.Set("Content-Type", "application/json")
	hdr.Set("Cache-Control", route.cacheControl())
	for k, v := range route.extraHeaders {
		hdr.Set(k, v)
	}
	hdr.Set(ProxyCacheHeader, cacheStatus)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

// writeProxyFailure maps an upstream error to the proxy's error contract.
func (h *Handler) writeProxyFailure(w http.ResponseWriter, r *http.Request, route proxyRoute, err error) {
	log := logging.Ctx(r.Context())

	var se *windy.StatusError
	switch {
	case errors.As(err, &se):
		log.Warn().Int("status", se.StatusCode).Str("route", route.name).Msg("Windy API returned an error")
		writePlainError(w, r, se.StatusCode, route.errorMessage)
	case errors.Is(err, windy.ErrCircuitOpen):
		log.Warn().Str("route", route.name).Msg("Windy API circuit open, rejecting proxy request")
		writePlainError(w, r, http.StatusServiceUnavailable, route.errorMessage)
	case errors.Is(err, windy.ErrMissingAPIKey):
		writePlainError(w, r, http.StatusInternalServerError, msgMissingKey)
	default:
		log.Error().Err(err).Str("route", route.name).Msg("Windy proxy error")
		writePlainError(w, r, http.StatusInternalServerError, msgInternal)
	}
}
