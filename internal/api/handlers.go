// Worldcams - Live Webcam Map Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/worldcams

package api

import (
	"context"
	"net/url"
	"time"

	"github.com/tomtom215/worldcams/internal/catalog"
	"github.com/tomtom215/worldcams/internal/models"
	"github.com/tomtom215/worldcams/internal/proxycache"
	"github.com/tomtom215/worldcams/internal/windy"
)

// CatalogSource serves the merged camera catalog.
type CatalogSource interface {
	Catalog(ctx context.Context) (*catalog.Catalog, error)
	Ready() bool
	Mode() string
}

// Upstream performs raw upstream GETs for the proxy.
type Upstream interface {
	Get(ctx context.Context, path string, query url.Values) (*windy.Response, error)
	HasAPIKey() bool
}

// Directory supplies live per-camera details and upstream categories.
type Directory interface {
	FetchByID(ctx context.Context, id string) (models.Camera, bool)
	FetchCategories(ctx context.Context) []string
	BreakerState() string
}

// WindyAPI is everything the handlers need from the Windy client.
type WindyAPI interface {
	Upstream
	Directory
}

// detailTimeout bounds the live lookup made when serving one external camera.
const detailTimeout = 5 * time.Second

// Handler contains dependencies for API handlers
//
// Handler methods are split across files:
//   - handlers.go: Handler struct and constructor (this file)
//   - handlers_helpers.go: query parsing and plain error bodies
//   - handlers_health.go: liveness and readiness probes
//   - handlers_cameras.go: catalog endpoints
//   - handlers_proxy.go: the /api/windy proxy
type Handler struct {
	catalog   CatalogSource
	windy     WindyAPI
	store     proxycache.Store
	startTime time.Time
}

// NewHandler creates a handler. A nil store disables the proxy response cache.
func NewHandler(src CatalogSource, client WindyAPI, store proxycache.Store) *Handler {
	if store == nil {
		store = proxycache.Nop{}
	}
	return &Handler{
		catalog:   src,
		windy:     client,
		store:     store,
		startTime: time.Now(),
	}
}
