// Worldcams - Live Webcam Map Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/worldcams

package api

import (
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/worldcams/internal/logging"
	"github.com/tomtom215/worldcams/internal/models"
)

// bboxParams are the bounding box query parameters in upstream order.
var bboxParams = []string{"west", "north", "east", "south"}

// sanitizeLogValue escapes control characters so query values cannot forge
// log lines.
func sanitizeLogValue(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			fmt.Fprintf(&b, "\\x%02x", r)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// errorBody is the plain error shape of the /api/windy proxy.
type errorBody struct {
	Error string `json:"error"`
}

// writePlainError writes {"error": message}.
func writePlainError(w http.ResponseWriter, r *http.Request, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(errorBody{Error: message}); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to encode error response")
	}
}

// parseOptionalFloat parses a query value. The pointer is nil when the
// parameter is absent.
func parseOptionalFloat(q url.Values, key string) (*float64, error) {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("%s must be a finite number", key)
	}
	return &f, nil
}

// boundsQuery holds the optional bbox edges of a request.
type boundsQuery struct {
	West  *float64 `query:"west" validate:"omitempty,longitude"`
	North *float64 `query:"north" validate:"omitempty,latitude"`
	East  *float64 `query:"east" validate:"omitempty,longitude"`
	South *float64 `query:"south" validate:"omitempty,latitude"`
}

func parseBoundsQuery(q url.Values) (boundsQuery, error) {
	var b boundsQuery
	targets := []**float64{&b.West, &b.North, &b.East, &b.South}
	for i, key := range bboxParams {
		v, err := parseOptionalFloat(q, key)
		if err != nil {
			return boundsQuery{}, err
		}
		*targets[i] = v
	}
	return b, nil
}

// present counts the edges that were supplied.
func (b boundsQuery) present() int {
	n := 0
	for _, v := range []*float64{b.West, b.North, b.East, b.South} {
		if v != nil {
			n++
		}
	}
	return n
}

// box returns the bounding box when all four edges were supplied.
func (b boundsQuery) box() (models.BoundingBox, bool) {
	if b.present() != len(bboxParams) {
		return models.BoundingBox{}, false
	}
	return models.BoundingBox{West: *b.West, North: *b.North, East: *b.East, South: *b.South}, true
}
