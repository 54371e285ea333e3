// Worldcams - Live Webcam Map Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/worldcams

package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func serveWithRequestID(t *testing.T, header string) (responseID, contextID string) {
	t.Helper()

	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		contextID = GetRequestID(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	if header != "" {
		req.Header.Set(RequestIDHeader, header)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	return rec.Header().Get(RequestIDHeader), contextID
}

func TestRequestID_GeneratesNewID(t *testing.T) {
	responseID, contextID := serveWithRequestID(t, "")

	if _, err := uuid.Parse(responseID); err != nil {
		t.Errorf("X-Request-ID %q is not a UUID: %v", responseID, err)
	}
	if contextID != responseID {
		t.Errorf("context id %q != header id %q", contextID, responseID)
	}
}

func TestRequestID_PreservesExistingID(t *testing.T) {
	responseID, contextID := serveWithRequestID(t, "edge-proxy-42")

	if responseID != "edge-proxy-42" || contextID != "edge-proxy-42" {
		t.Errorf("got header %q context %q, want edge-proxy-42", responseID, contextID)
	}
}

func TestRequestID_RejectsUnsafeIDs(t *testing.T) {
	tests := []struct {
		name string
		id   string
	}{
		{"control characters", "abc\ndef"},
		{"spaces", "abc def"},
		{"too long", strings.Repeat("a", maxRequestIDLen+1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			responseID, _ := serveWithRequestID(t, tt.id)
			if responseID == tt.id {
				t.Error("unsafe id should have been replaced")
			}
			if _, err := uuid.Parse(responseID); err != nil {
				t.Errorf("replacement %q is not a UUID", responseID)
			}
		})
	}
}
