// Worldcams - Live Webcam Map Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/worldcams

package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/goccy/go-json"

	"github.com/tomtom215/worldcams/internal/catalog"
	"github.com/tomtom215/worldcams/internal/models"
	"github.com/tomtom215/worldcams/internal/windy"
)

type fakeCatalog struct {
	cat   *catalog.Catalog
	ready bool
	mode  string
	err   error
}

func (f *fakeCatalog) Catalog(context.Context) (*catalog.Catalog, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.cat, nil
}
func (f *fakeCatalog) Ready() bool  { return f.ready }
func (f *fakeCatalog) Mode() string { return f.mode }

type upstreamCall struct {
	path  string
	query url.Values
}

// fakeWindy records proxy calls and serves canned details.
type fakeWindy struct {
	mu    sync.Mutex
	calls []upstreamCall

	hasKey     bool
	resp       *windy.Response
	err        error
	details    map[string]models.Camera
	categories []string

	categoryCalls int
}

func (f *fakeWindy) Get(_ context.Context, path string, query url.Values) (*windy.Response, error) {
	f.mu.Lock()
	f.calls = append(f.calls, upstreamCall{path: path, query: query})
	f.mu.Unlock()
	return f.resp, f.err
}

func (f *fakeWindy) HasAPIKey() bool { return f.hasKey }

func (f *fakeWindy) FetchByID(_ context.Context, id string) (models.Camera, bool) {
	c, ok := f.details[id]
	return c, ok
}

func (f *fakeWindy) FetchCategories(context.Context) []string {
	f.mu.Lock()
	f.categoryCalls++
	f.mu.Unlock()
	if f.categories == nil {
		return []string{}
	}
	return f.categories
}

func (f *fakeWindy) BreakerState() string { return "closed" }

func (f *fakeWindy) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeWindy) lastCall(t *testing.T) upstreamCall {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.calls) == 0 {
		t.Fatal("expected an upstream call")
	}
	return f.calls[len(f.calls)-1]
}

var errBoom = errors.New("boom")

func testCameras() []models.Camera {
	return []models.Camera{
		{ID: "tokyo-shibuya", Name: "Shibuya Crossing", Location: "Tokyo, Japan", Source: models.SourceCurated,
			YouTubeID: "abc", Category: models.CategoryLive, Enabled: true,
			Coordinates: models.Coordinates{Lat: 35.6595, Lng: 139.7005}},
		{ID: "windy-100", Name: "Shinjuku", Location: "Tokyo, Japan", Source: models.SourceWindy,
			WindyID: "100", Category: models.CategoryCity, Enabled: true,
			Coordinates: models.Coordinates{Lat: 35.6938, Lng: 139.7034}},
		{ID: "windy-200", Name: "Waikiki Beach", Location: "Honolulu, United States", Source: models.SourceWindy,
			WindyID: "200", Category: models.CategoryBeach, Enabled: true,
			Coordinates: models.Coordinates{Lat: 21.2766, Lng: -157.8278}},
	}
}

func newTestHandler(w *fakeWindy) (*Handler, *fakeCatalog) {
	src := &fakeCatalog{cat: catalog.New(testCameras()), ready: true, mode: "static"}
	if w == nil {
		w = &fakeWindy{hasKey: true}
	}
	return NewHandler(src, w, nil), src
}

// serve routes one GET through the full router.
func serve(t *testing.T, h *Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	cfg := DefaultChiMiddlewareConfig()
	cfg.RateLimitDisabled = true
	cfg.CORSAllowedOrigins = []string{"*"}
	router := NewRouter(h, cfg).Setup()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

// decodeEnvelope decodes an /api/v1 response with data into out.
func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) APIResponse {
	t.Helper()
	var raw struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
		Error   *APIError       `json:"error"`
		Meta    *APIMeta        `json:"meta"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &raw); err != nil {
		t.Fatalf("decode envelope %q: %v", rec.Body.String(), err)
	}
	if out != nil && len(raw.Data) > 0 {
		if err := json.Unmarshal(raw.Data, out); err != nil {
			t.Fatalf("decode data: %v", err)
		}
	}
	return APIResponse{Success: raw.Success, Error: raw.Error, Meta: raw.Meta}
}

func decodePlainError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body errorBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body %q: %v", rec.Body.String(), err)
	}
	return body.Error
}
