// Worldcams - Live Webcam Map Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/worldcams

package windy

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrMissingAPIKey is returned before any upstream call when no key is configured.
	ErrMissingAPIKey = errors.New("windy: API key not configured")

	// ErrNotFound is returned when a single-webcam response carries no webcam.
	ErrNotFound = errors.New("windy: webcam not found")

	// ErrCircuitOpen is returned when the circuit breaker rejects a call.
	ErrCircuitOpen = errors.New("windy: circuit breaker open")

	// ErrInvalidResponse is returned when a list response carries no webcam list.
	ErrInvalidResponse = errors.New("windy: invalid response")
)

// StatusError reports a non-2xx upstream response. The body is kept for
// server-side logging only and is never returned to HTTP callers.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("windy: upstream returned %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// countsAsFailure reports whether the breaker should count err against the
// upstream. Client errors (4xx except 429) are the caller's fault.
func countsAsFailure(err error) bool {
	if err == nil {
		return false
	}
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode >= 500 || se.StatusCode == http.StatusTooManyRequests
	}
	return !errors.Is(err, ErrMissingAPIKey)
}
