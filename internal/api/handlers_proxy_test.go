// Worldcams - Live Webcam Map Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/worldcams

package api

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/tomtom215/worldcams/internal/catalog"
	"github.com/tomtom215/worldcams/internal/config"
	"github.com/tomtom215/worldcams/internal/proxycache"
	"github.com/tomtom215/worldcams/internal/windy"
)

const upstreamBody = `{"total":1,"webcams":[{"webcamId":1}]}`

func okUpstream() *fakeWindy {
	return &fakeWindy{
		hasKey: true,
		resp:   &windy.Response{StatusCode: http.StatusOK, Body: []byte(upstreamBody)},
	}
}

func TestWindyProxy_MissingKey(t *testing.T) {
	fw := &fakeWindy{hasKey: false}
	h, _ := newTestHandler(fw)

	rec := serve(t, h, "/api/windy?path=all-webcams")

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if got := decodePlainError(t, rec); got != msgMissingKey {
		t.Errorf("error = %q, want %q", got, msgMissingKey)
	}
	if fw.callCount() != 0 {
		t.Errorf("upstream calls = %d, want 0", fw.callCount())
	}
}

func TestWindyProxy_BoundingBox(t *testing.T) {
	fw := okUpstream()
	h, _ := newTestHandler(fw)

	rec := serve(t, h, "/api/windy?west=-10.5&north=60&east=5&south=40&include=location,player")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if rec.Body.String() != upstreamBody {
		t.Errorf("body = %q, want upstream body verbatim", rec.Body.String())
	}
	assertHeader(t, rec, "Cache-Control", "public, max-age=600, s-maxage=600")
	assertHeader(t, rec, "Content-Type", "application/json")
	assertHeader(t, rec, ProxyCacheHeader, "MISS")
	if rec.Header().Get("X-Cache-For") != "" {
		t.Error("default route must not set X-Cache-For")
	}

	call := fw.lastCall(t)
	if call.path != windy.WebcamsPath {
		t.Errorf("path = %q, want %q", call.path, windy.WebcamsPath)
	}
	want := map[string]string{"west": "-10.5", "north": "60", "east": "5", "south": "40", "include": "location,player"}
	for k, v := range want {
		if got := call.query.Get(k); got != v {
			t.Errorf("upstream %s = %q, want %q", k, got, v)
		}
	}
	if len(call.query) != len(want) {
		t.Errorf("upstream query = %v, want exactly %v", call.query, want)
	}
}

func TestWindyProxy_PartialBoundingBoxForwardsPresentEdges(t *testing.T) {
	fw := okUpstream()
	h, _ := newTestHandler(fw)

	rec := serve(t, h, "/api/windy?north=60&south=40")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	call := fw.lastCall(t)
	if call.query.Encode() != "north=60&south=40" {
		t.Errorf("upstream query = %q", call.query.Encode())
	}
}

func TestWindyProxy_ByID(t *testing.T) {
	tests := []struct {
		name     string
		target   string
		wantPath string
	}{
		{"plain id", "/api/windy?id=1234567&include=player", windy.WebcamsPath + "/1234567"},
		{"catalog id", "/api/windy?id=windy-1234567&include=player", windy.WebcamsPath + "/1234567"},
		{"bbox ignored", "/api/windy?id=42&west=1&north=2&east=3&south=1&include=player", windy.WebcamsPath + "/42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fw := okUpstream()
			h, _ := newTestHandler(fw)

			rec := serve(t, h, tt.target)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
			}

			call := fw.lastCall(t)
			if call.path != tt.wantPath {
				t.Errorf("path = %q, want %q", call.path, tt.wantPath)
			}
			if call.query.Encode() != "include=player" {
				t.Errorf("upstream query = %q, want include only", call.query.Encode())
			}
		})
	}
}

func TestWindyProxy_AllWebcams(t *testing.T) {
	fw := okUpstream()
	h, _ := newTestHandler(fw)

	rec := serve(t, h, "/api/windy?path=all-webcams&id=5&west=1&include=player")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	assertHeader(t, rec, "Cache-Control", "public, max-age=14400, s-maxage=14400")
	assertHeader(t, rec, "X-Cache-For", "4-hours")

	call := fw.lastCall(t)
	if call.path != windy.WebcamsPath || len(call.query) != 0 {
		t.Errorf("upstream = %s?%s, want unfiltered collection", call.path, call.query.Encode())
	}
}

func TestWindyProxy_UnknownPathFallsThrough(t *testing.T) {
	fw := okUpstream()
	h, _ := newTestHandler(fw)

	rec := serve(t, h, "/api/windy?path=something-else&north=10&south=0")

	assertHeader(t, rec, "Cache-Control", "public, max-age=600, s-maxage=600")
	if got := fw.lastCall(t).query.Get("north"); got != "10" {
		t.Errorf("north = %q, want 10", got)
	}
}

func TestWindyProxy_UpstreamErrors(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		err        error
		wantStatus int
		wantError  string
	}{
		{"not found passes status", "/api/windy?id=9", &windy.StatusError{StatusCode: 404, Body: "secret upstream detail"},
			http.StatusNotFound, msgUpstreamFailed},
		{"forbidden passes status", "/api/windy?north=1&south=0", &windy.StatusError{StatusCode: 403},
			http.StatusForbidden, msgUpstreamFailed},
		{"all webcams message", "/api/windy?path=all-webcams", &windy.StatusError{StatusCode: 502},
			http.StatusBadGateway, msgAllFailed},
		{"circuit open", "/api/windy?path=all-webcams", windy.ErrCircuitOpen,
			http.StatusServiceUnavailable, msgAllFailed},
		{"transport failure", "/api/windy?north=1&south=0", fmt.Errorf("request failed: %w", errBoom),
			http.StatusInternalServerError, msgInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fw := &fakeWindy{hasKey: true, err: tt.err}
			h, _ := newTestHandler(fw)

			rec := serve(t, h, tt.target)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if got := decodePlainError(t, rec); got != tt.wantError {
				t.Errorf("error = %q, want %q", got, tt.wantError)
			}
			if strings.Contains(rec.Body.String(), "secret") || strings.Contains(rec.Body.String(), "boom") {
				t.Errorf("response leaks internal detail: %s", rec.Body.String())
			}
		})
	}
}

func TestWindyProxy_RejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		target string
	}{
		{"non-numeric west", "/api/windy?west=abc"},
		{"latitude out of range", "/api/windy?north=91&south=0"},
		{"longitude out of range", "/api/windy?east=181"},
		{"NaN", "/api/windy?south=NaN"},
		{"north below south", "/api/windy?west=0&north=10&east=10&south=20"},
		{"path traversal id", "/api/windy?id=../../admin"},
		{"id too long", "/api/windy?id=" + strings.Repeat("1", 65)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fw := okUpstream()
			h, _ := newTestHandler(fw)

			rec := serve(t, h, tt.target)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
			if msg := decodePlainError(t, rec); msg == "" {
				t.Error("expected an error message")
			}
			if fw.callCount() != 0 {
				t.Errorf("upstream calls = %d, want 0", fw.callCount())
			}
		})
	}
}

func TestWindyProxy_EmptyIncludeNotForwarded(t *testing.T) {
	fw := okUpstream()
	h, _ := newTestHandler(fw)

	rec := serve(t, h, "/api/windy?north=10&south=0&include=")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if q := fw.lastCall(t).query; q.Has("include") {
		t.Errorf("upstream query = %q, empty include should be dropped", q.Encode())
	}
}

func TestWindyProxy_SharedStore(t *testing.T) {
	fw := okUpstream()
	src := &fakeCatalog{cat: catalog.New(testCameras()), ready: true, mode: "static"}
	h := NewHandler(src, fw, proxycache.NewMemory(16))

	first := serve(t, h, "/api/windy?north=10&south=0&include=location")
	second := serve(t, h, "/api/windy?include=location&south=0&north=10")

	if fw.callCount() != 1 {
		t.Fatalf("upstream calls = %d, want 1", fw.callCount())
	}
	assertHeader(t, first, ProxyCacheHeader, "MISS")
	assertHeader(t, second, ProxyCacheHeader, "HIT")
	assertHeader(t, second, "Cache-Control", "public, max-age=600, s-maxage=600")
	if second.Body.String() != upstreamBody {
		t.Errorf("cached body = %q", second.Body.String())
	}

	// The full collection has its own key and lifetime.
	all := serve(t, h, "/api/windy?path=all-webcams")
	assertHeader(t, all, ProxyCacheHeader, "MISS")
	if fw.callCount() != 2 {
		t.Errorf("upstream calls = %d, want 2", fw.callCount())
	}
}

func TestWindyProxy_ErrorsAreNotStored(t *testing.T) {
	fw := &fakeWindy{hasKey: true, err: &windy.StatusError{StatusCode: 500}}
	src := &fakeCatalog{cat: catalog.New(testCameras()), ready: true, mode: "static"}
	h := NewHandler(src, fw, proxycache.NewMemory(16))

	serve(t, h, "/api/windy?path=all-webcams")
	serve(t, h, "/api/windy?path=all-webcams")

	if fw.callCount() != 2 {
		t.Errorf("upstream calls = %d, want 2", fw.callCount())
	}
}

// TestWindyProxy_RealClient checks key injection end to end.
func TestWindyProxy_RealClient(t *testing.T) {
	const apiKey = "test-secret-key"
	var calls atomic.Int32

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if r.Header.Get(windy.APIKeyHeader) != apiKey {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if r.URL.Path == windy.WebcamPath("404") {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message":"no webcam ` + apiKey + `"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(upstreamBody))
	}))
	defer upstream.Close()

	client := windy.NewClient(config.WindyConfig{
		APIKey:  apiKey,
		BaseURL: upstream.URL,
		Timeout: 5 * time.Second,
	})
	src := &fakeCatalog{cat: catalog.New(testCameras()), ready: true, mode: "static"}
	h := NewHandler(src, client, nil)

	ok := serve(t, h, "/api/windy?path=all-webcams")
	if ok.Code != http.StatusOK || ok.Body.String() != upstreamBody {
		t.Fatalf("all-webcams = %d %s", ok.Code, ok.Body.String())
	}

	missing := serve(t, h, "/api/windy?id=404")
	if missing.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", missing.Code)
	}
	for _, rec := range []*httptest.ResponseRecorder{ok, missing} {
		if strings.Contains(rec.Body.String(), apiKey) {
			t.Error("API key leaked into the response body")
		}
		for name, values := range rec.Header() {
			for _, v := range values {
				if strings.Contains(v, apiKey) {
					t.Errorf("API key leaked in header %s", name)
				}
			}
		}
	}
	if calls.Load() != 2 {
		t.Errorf("upstream calls = %d, want 2", calls.Load())
	}
}

func assertHeader(t *testing.T, rec *httptest.ResponseRecorder, name, want string) {
	t.Helper()
	if got := rec.Header().Get(name); got != want {
		t.Errorf("%s = %q, want %q", name, got, want)
	}
}
