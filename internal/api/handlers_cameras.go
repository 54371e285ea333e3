// Worldcams - Live Webcam Map Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/worldcams

package api

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/tomtom215/worldcams/internal/catalog"
	"github.com/tomtom215/worldcams/internal/logging"
	"github.com/tomtom215/worldcams/internal/metrics"
	"github.com/tomtom215/worldcams/internal/models"
	"github.com/tomtom215/worldcams/internal/validation"
)

// defaultNearbyRadiusKm applies when radiusKm is absent. The validator caps
// the radius at 500 km.
const defaultNearbyRadiusKm = 50

type cameraListQuery struct {
	Q        string `query:"q" validate:"max=200"`
	Category string `query:"category" validate:"omitempty,category"`
	boundsQuery
}

type cameraIDQuery struct {
	ID string `query:"id" validate:"required,cameraid"`
}

type randomQuery struct {
	Exclude string `query:"exclude" validate:"omitempty,cameraid"`
}

type nearbyQuery struct {
	ID       string  `query:"id" validate:"required,cameraid"`
	RadiusKm float64 `query:"radiusKm" validate:"gt=0,lte=500"`
}

// categoriesResponse lists the local enum and the upstream names.
type categoriesResponse struct {
	Categories []models.Category `json:"categories"`
	Upstream   []string          `json:"upstream"`
}

// loadCatalog fetches the catalog or writes a 503.
func (h *Handler) loadCatalog(w http.ResponseWriter, r *http.Request) (*catalog.Catalog, bool) {
	cat, err := h.catalog.Catalog(r.Context())
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Camera catalog unavailable")
		NewResponseWriter(w, r).ServiceUnavailable("Camera catalog unavailable", nil)
		return nil, false
	}
	return cat, true
}

func validationFailed(w http.ResponseWriter, r *http.Request, verr *validation.RequestValidationError) {
	NewResponseWriter(w, r).ValidationError(verr.Error(), verr.Details())
}

// ListCameras handles GET /api/v1/cameras.
//
// Optional filters are applied in order: bounding box (all four edges),
// category, then a case-insensitive search over name and location.
func (h *Handler) ListCameras(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	bounds, err := parseBoundsQuery(q)
	if err != nil {
		NewResponseWriter(w, r).BadRequest(err.Error())
		return
	}
	params := cameraListQuery{Q: q.Get("q"), Category: q.Get("category"), boundsQuery: bounds}
	if verr := validation.ValidateStruct(params); verr != nil {
		validationFailed(w, r, verr)
		return
	}
	if n := bounds.present(); n != 0 && n != len(bboxParams) {
		NewResponseWriter(w, r).BadRequest("west, north, east and south must be given together")
		return
	}

	cat, ok := h.loadCatalog(w, r)
	if !ok {
		return
	}

	cams := cat.All()
	if box, ok := bounds.box(); ok {
		if err := box.Validate(); err != nil {
			NewResponseWriter(w, r).BadRequest(err.Error())
			return
		}
		cams = cat.WithinBounds(box)
	}
	if params.Category != "" {
		category, _ := models.ParseCategory(params.Category)
		cams = catalog.FilterCategory(cams, category)
	}
	cams = catalog.Search(cams, params.Q)

	NewResponseWriter(w, r).SuccessWithPagination(cams, &PaginationMeta{
		Total: cat.Len(),
		Count: len(cams),
	})
}

// RandomCamera handles GET /api/v1/cameras/random. The optional exclude id
// is the camera currently shown; a different one is returned whenever the
// catalog holds more than one.
func (h *Handler) RandomCamera(w http.ResponseWriter, r *http.Request) {
	params := randomQuery{Exclude: r.URL.Query().Get("exclude")}
	if verr := validation.ValidateStruct(params); verr != nil {
		validationFailed(w, r, verr)
		return
	}

	cat, ok := h.loadCatalog(w, r)
	if !ok {
		return
	}

	cam, found := catalog.Random(cat.All(), params.Exclude)
	if !found {
		NewResponseWriter(w, r).NotFound("No cameras available")
		return
	}
	NewResponseWriter(w, r).Success(cam)
}

// GetCamera handles GET /api/v1/cameras/{id}. External cameras are refreshed
// from the directory so the player URL and thumbnail are current; the
// catalog's coordinates and flags are kept.
func (h *Handler) GetCamera(w http.ResponseWriter, r *http.Request) {
	params := cameraIDQuery{ID: chi.URLParam(r, "id")}
	if verr := validation.ValidateStruct(params); verr != nil {
		validationFailed(w, r, verr)
		return
	}

	cat, ok := h.loadCatalog(w, r)
	if !ok {
		return
	}

	cam, found := cat.Find(params.ID)
	if !found {
		NewResponseWriter(w, r).NotFound("Camera not found")
		return
	}

	if cam.IsExternal() && h.windy != nil {
		cam = h.enrich(r.Context(), cam)
	}
	NewResponseWriter(w, r).Success(cam)
}

func (h *Handler) enrich(ctx context.Context, cam models.Camera) models.Camera {
	ctx, cancel := context.WithTimeout(ctx, detailTimeout)
	defer cancel()

	fresh, ok := h.windy.FetchByID(ctx, cam.ID)
	if !ok {
		return cam
	}
	fresh.ID = cam.ID
	fresh.Source = cam.Source
	fresh.Coordinates = cam.Coordinates
	fresh.Enabled = cam.Enabled
	return fresh
}

// NearbyCameras handles GET /api/v1/cameras/{id}/nearby.
func (h *Handler) NearbyCameras(w http.ResponseWriter, r *http.Request) {
	params := nearbyQuery{ID: chi.URLParam(r, "id"), RadiusKm: defaultNearbyRadiusKm}
	if raw := strings.TrimSpace(r.URL.Query().Get("radiusKm")); raw != "" {
		radius, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			NewResponseWriter(w, r).BadRequest("radiusKm must be a number")
			return
		}
		params.RadiusKm = radius
	}
	if verr := validation.ValidateStruct(params); verr != nil {
		validationFailed(w, r, verr)
		return
	}

	cat, ok := h.loadCatalog(w, r)
	if !ok {
		return
	}

	neighbors, found := cat.Nearby(params.ID, params.RadiusKm)
	if !found {
		NewResponseWriter(w, r).NotFound("Camera not found")
		return
	}
	NewResponseWriter(w, r).SuccessWithPagination(neighbors, &PaginationMeta{
		Total: cat.Len(),
		Count: len(neighbors),
	})
}

// Upstream category names live in the shared store as long as the full
// collection does.
var categoriesRoute = proxyRoute{name: "categories", maxAge: 4 * time.Hour}

const categoriesCacheKey = "categories:v3"

// Categories handles GET /api/v1/categories.
func (h *Handler) Categories(w http.ResponseWriter, r *http.Request) {
	resp := categoriesResponse{
		Categories: models.Categories(),
		Upstream:   []string{},
	}
	if h.windy != nil {
		resp.Upstream = h.upstreamCategories(r.Context())
	}
	NewResponseWriter(w, r).Success(resp)
}

// upstreamCategories serves the names from the shared store, fetching on a
// miss. An empty list means the fetch failed and is not stored.
func (h *Handler) upstreamCategories(ctx context.Context) []string {
	if body, ok := h.lookupStore(ctx, categoriesRoute, categoriesCacheKey); ok {
		var names []string
		if err := json.Unmarshal(body, &names); err == nil {
			return names
		}
		logging.Ctx(ctx).Warn().Str("backend", h.store.Name()).Msg("Discarding malformed cached categories")
	}

	names := h.windy.FetchCategories(ctx)
	if len(names) == 0 {
		return names
	}
	body, err := json.Marshal(names)
	if err != nil {
		return names
	}
	if err := h.store.Set(ctx, categoriesCacheKey, body, categoriesRoute.maxAge); err != nil {
		metrics.RecordProxyCacheError(h.store.Name(), "set")
		logging.Ctx(ctx).Warn().Err(err).Str("backend", h.store.Name()).Msg("Failed to store upstream categories")
	}
	return names
}
