// Worldcams - Live Webcam Map Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/worldcams

package api

import (
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/worldcams/internal/logging"
)

// APIResponse is the envelope of every /api/v1 response. The /api/windy
// proxy and the recoverer write plain bodies instead.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Meta    *APIMeta    `json:"meta,omitempty"`
}

// APIError is the error half of the envelope.
type APIError struct {
	Code      string      `json:"code"`
	Message   string      `json:"message"`
	Details   interface{} `json:"details,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
}

// APIMeta is attached to every envelope.
type APIMeta struct {
	RequestID  string          `json:"request_id,omitempty"`
	Timestamp  time.Time       `json:"timestamp"`
	DurationMs int64           `json:"duration_ms,omitempty"`
	Pagination *PaginationMeta `json:"pagination,omitempty"`
}

// PaginationMeta describes a camera list. The catalog is returned whole, so
// only counts are reported.
type PaginationMeta struct {
	// Total is the catalog size before filtering.
	Total int `json:"total"`

	// Count is the number of items in this response.
	Count int `json:"count"`
}

// Error codes and the status each one is written with.
const (
	ErrCodeBadRequest         = "BAD_REQUEST"
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeTooManyRequests    = "TOO_MANY_REQUESTS"
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE"
	ErrCodeValidationFailed   = "VALIDATION_FAILED"
)

var errorStatus = map[string]int{
	ErrCodeBadRequest:         http.StatusBadRequest,
	ErrCodeValidationFailed:   http.StatusBadRequest,
	ErrCodeNotFound:           http.StatusNotFound,
	ErrCodeTooManyRequests:    http.StatusTooManyRequests,
	ErrCodeServiceUnavailable: http.StatusServiceUnavailable,
}

// ResponseWriter writes envelopes for one request. DurationMs is measured
// from its creation.
type ResponseWriter struct {
	w         http.ResponseWriter
	r         *http.Request
	startTime time.Time
}

// NewResponseWriter creates a response writer for one request.
func NewResponseWriter(w http.ResponseWriter, r *http.Request) *ResponseWriter {
	return &ResponseWriter{w: w, r: r, startTime: time.Now()}
}

// Success writes a 200 envelope around data.
func (rw *ResponseWriter) Success(data interface{}) {
	rw.writeJSON(http.StatusOK, APIResponse{Success: true, Data: data, Meta: rw.meta(nil)})
}

// SuccessWithPagination writes a 200 camera list with its counts.
func (rw *ResponseWriter) SuccessWithPagination(data interface{}, pagination *PaginationMeta) {
	rw.writeJSON(http.StatusOK, APIResponse{Success: true, Data: data, Meta: rw.meta(pagination)})
}

// BadRequest writes a 400 BAD_REQUEST envelope.
func (rw *ResponseWriter) BadRequest(message string) {
	rw.fail(ErrCodeBadRequest, message, nil)
}

// ValidationError writes a 400 VALIDATION_FAILED envelope with per-field
// details.
func (rw *ResponseWriter) ValidationError(message string, details interface{}) {
	rw.fail(ErrCodeValidationFailed, message, details)
}

// NotFound writes a 404 NOT_FOUND envelope.
func (rw *ResponseWriter) NotFound(message string) {
	rw.fail(ErrCodeNotFound, message, nil)
}

// TooManyRequests writes a 429 envelope. The limiter sets Retry-After.
func (rw *ResponseWriter) TooManyRequests(message string) {
	rw.fail(ErrCodeTooManyRequests, message, nil)
}

// ServiceUnavailable writes a 503 envelope, used while the catalog cannot
// be loaded. details may be nil.
func (rw *ResponseWriter) ServiceUnavailable(message string, details interface{}) {
	rw.fail(ErrCodeServiceUnavailable, message, details)
}

func (rw *ResponseWriter) fail(code, message string, details interface{}) {
	status, ok := errorStatus[code]
	if !ok {
		status = http.StatusInternalServerError
	}
	meta := rw.meta(nil)
	rw.writeJSON(status, APIResponse{
		Error: &APIError{
			Code:      code,
			Message:   message,
			Details:   details,
			RequestID: meta.RequestID,
		},
		Meta: meta,
	})
}

func (rw *ResponseWriter) meta(pagination *PaginationMeta) *APIMeta {
	return &APIMeta{
		RequestID:  logging.RequestIDFromContext(rw.r.Context()),
		Timestamp:  time.Now().UTC(),
		DurationMs: time.Since(rw.startTime).Milliseconds(),
		Pagination: pagination,
	}
}

func (rw *ResponseWriter) writeJSON(status int, body APIResponse) {
	rw.w.Header().Set("Content-Type", "application/json; charset=utf-8")
	rw.w.WriteHeader(status)

	if err := json.NewEncoder(rw.w).Encode(body); err != nil {
		logging.Ctx(rw.r.Context()).Error().Err(err).Msg("Failed to encode JSON response")
	}
}
