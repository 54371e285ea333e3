// Worldcams - Live Webcam Map Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/worldcams

package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	io_prometheus_client "github.com/prometheus/client_model/go"
)

// histogramCount returns how many observations a histogram child holds.
func histogramCount(t *testing.T, o prometheus.Observer) uint64 {
	t.Helper()
	var m io_prometheus_client.Metric
	if err := o.(prometheus.Metric).Write(&m); err != nil {
		t.Fatalf("write histogram: %v", err)
	}
	return m.GetHistogram().GetSampleCount()
}

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/windy", "200"))
	beforeObs := histogramCount(t, APIRequestDuration.WithLabelValues("GET", "/api/windy"))

	RecordAPIRequest("GET", "/api/windy", "200", 15*time.Millisecond)
	RecordAPIRequest("GET", "/api/windy", "200", 30*time.Millisecond)

	after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/windy", "200"))
	if after-before != 2 {
		t.Errorf("api_requests_total delta = %v, want 2", after-before)
	}
	if got := histogramCount(t, APIRequestDuration.WithLabelValues("GET", "/api/windy")) - beforeObs; got != 2 {
		t.Errorf("api_request_duration_seconds observations = %d, want 2", got)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)

	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests); got != before+1 {
		t.Errorf("active after inc = %v, want %v", got, before+1)
	}

	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != before {
		t.Errorf("active after dec = %v, want %v", got, before)
	}
}

func TestRecordUpstreamRequest(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		wantLabel  string
	}{
		{"success", 200, "200"},
		{"server error", 502, "502"},
		{"transport failure", 0, "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := UpstreamRequests.WithLabelValues("test_op", tt.wantLabel)
			before := testutil.ToFloat64(c)

			RecordUpstreamRequest("test_op", tt.statusCode, 10*time.Millisecond)

			if got := testutil.ToFloat64(c) - before; got != 1 {
				t.Errorf("delta for status %q = %v, want 1", tt.wantLabel, got)
			}
		})
	}
}

func TestRecordProxyCache(t *testing.T) {
	hits := ProxyCacheHits.WithLabelValues("memory", "bbox")
	misses := ProxyCacheMisses.WithLabelValues("memory", "bbox")
	h0, m0 := testutil.ToFloat64(hits), testutil.ToFloat64(misses)

	RecordProxyCache("memory", "bbox", true)
	RecordProxyCache("memory", "bbox", false)
	RecordProxyCache("memory", "bbox", false)

	if got := testutil.ToFloat64(hits) - h0; got != 1 {
		t.Errorf("hits delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(misses) - m0; got != 2 {
		t.Errorf("misses delta = %v, want 2", got)
	}
}

func TestRecordCatalogLoad(t *testing.T) {
	RecordCatalogLoad("static", map[string]int{"curated": 3, "windy": 40}, nil)

	if got := testutil.ToFloat64(CatalogCameras.WithLabelValues("windy")); got != 40 {
		t.Errorf("catalog_cameras{windy} = %v, want 40", got)
	}

	failed := CatalogLoads.WithLabelValues("dynamic", "failed")
	before := testutil.ToFloat64(failed)
	RecordCatalogLoad("dynamic", nil, errors.New("boom"))
	if got := testutil.ToFloat64(failed) - before; got != 1 {
		t.Errorf("failed loads delta = %v, want 1", got)
	}
}

func TestRecordSyncRun(t *testing.T) {
	tests := []struct {
		name    string
		written bool
		err     error
		result  string
	}{
		{"written", true, nil, "written"},
		{"unchanged", false, nil, "unchanged"},
		{"failed", false, errors.New("no webcams"), "failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := SyncRuns.WithLabelValues("paged", tt.result)
			before := testutil.ToFloat64(c)

			RecordSyncRun("paged", time.Second, 120, 3, tt.written, tt.err)

			if got := testutil.ToFloat64(c) - before; got != 1 {
				t.Errorf("sync_runs_total{%s} delta = %v, want 1", tt.result, got)
			}
		})
	}

	if got := testutil.ToFloat64(SyncWebcams.WithLabelValues("paged")); got != 120 {
		t.Errorf("sync_webcams = %v, want 120", got)
	}
}

func TestBreakerStateValue(t *testing.T) {
	tests := map[string]float64{
		"closed":    0,
		"half-open": 1,
		"open":      2,
		"OPEN":      2,
		"weird":     -1,
	}
	for in, want := range tests {
		if got := BreakerStateValue(in); got != want {
			t.Errorf("BreakerStateValue(%q) = %v, want %v", in, got, want)
		}
	}
}
