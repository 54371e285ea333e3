// Worldcams - Live Webcam Map Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/worldcams

package windy

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/tomtom215/worldcams/internal/config"
	"github.com/tomtom215/worldcams/internal/logging"
	"github.com/tomtom215/worldcams/internal/metrics"
	"github.com/tomtom215/worldcams/internal/models"
)

// Upstream paths of the v3 webcams API.
const (
	WebcamsPath    = "/webcams/api/v3/webcams"
	ClustersPath   = "/webcams/api/v3/map/clusters"
	CategoriesPath = "/webcams/api/v3/categories"

	// APIKeyHeader carries the secret key on every upstream request.
	APIKeyHeader = "x-windy-api-key"
)

// maxBodyBytes bounds how much of an upstream response is read.
const maxBodyBytes = 32 << 20

// WebcamPath returns the single-webcam path for an upstream id.
func WebcamPath(upstreamID string) string {
	return WebcamsPath + "/" + url.PathEscape(upstreamID)
}

// Response is one raw upstream response.
type Response struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

// Client talks to the Windy webcams API. The Fetch* methods swallow errors
// and degrade to empty results; Get, FetchPage and FetchClusters return them.
type Client struct {
	baseURL       string
	apiKey        string
	detailInclude string
	httpClient    *http.Client
	breaker       *gobreaker.CircuitBreaker[*Response]
	limiter       *rate.Limiter
	now           func() time.Time
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithClock replaces time.Now for lastUpdated stamps.
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// WithBreakerSettings replaces the default circuit breaker tuning.
func WithBreakerSettings(s BreakerSettings) Option {
	return func(c *Client) { c.breaker = newBreaker(s) }
}

// NewClient creates a client from configuration. An empty API key is
// allowed; every call then fails with ErrMissingAPIKey.
func NewClient(cfg config.WindyConfig, opts ...Option) *Client {
	c := &Client{
		baseURL:       strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:        strings.TrimSpace(cfg.APIKey),
		detailInclude: cfg.DetailInclude,
		httpClient:    &http.Client{Timeout: cfg.Timeout},
		now:           time.Now,
	}
	if cfg.RequestsPerSecond > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.breaker == nil {
		c.breaker = newBreaker(DefaultBreakerSettings())
	}
	return c
}

// HasAPIKey reports whether a key is configured.
func (c *Client) HasAPIKey() bool {
	return c.apiKey != ""
}

// Get performs one upstream GET with the API key attached. A non-2xx
// response is returned together with a *StatusError.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.get(ctx, operationFor(path), path, query)
}

func (c *Client) get(ctx context.Context, operation, path string, query url.Values) (*Response, error) {
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter wait: %w", err)
		}
	}

	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	return c.execute(operation, func() (*Response, error) {
		return c.do(ctx, operation, reqURL)
	})
}

func (c *Client) do(ctx context.Context, operation, reqURL string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request failed: %w", err)
	}
	req.Header.Set(APIKeyHeader, c.apiKey)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.RecordUpstreamRequest(operation, 0, time.Since(start))
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	metrics.RecordUpstreamRequest(operation, resp.StatusCode, time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("read response failed: %w", err)
	}

	out := &Response{
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        body,
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return out, &StatusError{StatusCode: resp.StatusCode, Body: truncate(string(body), 160)}
	}
	return out, nil
}

func operationFor(path string) string {
	switch {
	case path == WebcamsPath:
		return "webcams"
	case strings.HasPrefix(path, WebcamsPath+"/"):
		return "webcam"
	case path == ClustersPath:
		return "clusters"
	case path == CategoriesPath:
		return "categories"
	default:
		return "other"
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// PageRequest selects one offset/limit page of the webcam collection.
type PageRequest struct {
	Offset  int
	Limit   int
	Include string
}

// Page is one decoded page. Total is 0 when the response omits it.
type Page struct {
	Webcams []Webcam
	Total   int
}

// FetchPage requests one page. A response without a webcam list yields
// ErrInvalidResponse.
func (c *Client) FetchPage(ctx context.Context, req PageRequest) (Page, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(req.Limit))
	q.Set("offset", strconv.Itoa(req.Offset))
	if req.Include != "" {
		q.Set("include", req.Include)
	}

	resp, err := c.get(ctx, "page", WebcamsPath, q)
	if err != nil {
		return Page{}, err
	}
	webcams, total, err := ExtractWebcams(resp.Body)
	if err != nil {
		if errors.Is(err, ErrInvalidResponse) {
			return Page{}, err
		}
		return Page{}, fmt.Errorf("failed to decode page: %w", err)
	}
	return Page{Webcams: webcams, Total: total}, nil
}

// ClusterQuery is one map/clusters request.
type ClusterQuery struct {
	North   float64
	South   float64
	West    float64
	East    float64
	Zoom    int
	Include string
}

// FetchClusters queries the map/clusters endpoint for one tile.
func (c *Client) FetchClusters(ctx context.Context, q ClusterQuery) ([]Webcam, error) {
	v := url.Values{}
	v.Set("northLat", formatFloat(q.North))
	v.Set("southLat", formatFloat(q.South))
	v.Set("westLon", formatFloat(q.West))
	v.Set("eastLon", formatFloat(q.East))
	v.Set("zoom", strconv.Itoa(q.Zoom))
	if q.Include != "" {
		v.Set("include", q.Include)
	}

	resp, err := c.get(ctx, "clusters", ClustersPath, v)
	if err != nil {
		return nil, err
	}
	clusters, err := ExtractClusters(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to decode clusters: %w", err)
	}
	return clusters, nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// FetchByBounds returns the cameras inside box, or the unfiltered collection
// when box is nil. Failures are logged and yield an empty list.
func (c *Client) FetchByBounds(ctx context.Context, box *models.BoundingBox) []models.Camera {
	q := url.Values{}
	if box != nil {
		for k, v := range box.Params() {
			q.Set(k, v)
		}
	}
	if c.detailInclude != "" {
		q.Set("include", c.detailInclude)
	}
	return c.fetchList(ctx, "bounds", q)
}

// FetchAllSnapshot returns the full unfiltered collection. Failures are
// logged and yield an empty list.
func (c *Client) FetchAllSnapshot(ctx context.Context) []models.Camera {
	q := url.Values{}
	if c.detailInclude != "" {
		q.Set("include", c.detailInclude)
	}
	return c.fetchList(ctx, "snapshot", q)
}

func (c *Client) fetchList(ctx context.Context, operation string, q url.Values) []models.Camera {
	resp, err := c.get(ctx, operation, WebcamsPath, q)
	if err != nil {
		c.logFailure(ctx, operation, err)
		return []models.Camera{}
	}
	webcams, _, err := ExtractWebcams(resp.Body)
	if err != nil {
		c.logFailure(ctx, operation, err)
		return []models.Camera{}
	}
	return ToCameras(webcams, c.now())
}

// FetchByID returns one camera by catalog id ("windy-123") or upstream id
// ("123"). The bool is false when the webcam is missing or the call failed.
func (c *Client) FetchByID(ctx context.Context, id string) (models.Camera, bool) {
	upstreamID := models.UpstreamID(strings.TrimSpace(id))
	if upstreamID == "" {
		return models.Camera{}, false
	}

	q := url.Values{}
	if c.detailInclude != "" {
		q.Set("include", c.detailInclude)
	}
	resp, err := c.get(ctx, "webcam", WebcamPath(upstreamID), q)
	if err != nil {
		c.logFailure(ctx, "webcam", err)
		return models.Camera{}, false
	}
	webcam, err := ExtractWebcam(resp.Body)
	if err != nil {
		c.logFailure(ctx, "webcam", err)
		return models.Camera{}, false
	}
	if webcam.WebcamID == "" {
		webcam.WebcamID = FlexibleID(upstreamID)
	}
	return ToCamera(webcam, c.now()), true
}

// FetchCategories returns the upstream category names. Failures are logged
// and yield an empty list.
func (c *Client) FetchCategories(ctx context.Context) []string {
	resp, err := c.get(ctx, "categories", CategoriesPath, nil)
	if err != nil {
		c.logFailure(ctx, "categories", err)
		return []string{}
	}
	names, err := ExtractCategoryNames(resp.Body)
	if err != nil {
		c.logFailure(ctx, "categories", err)
		return []string{}
	}
	return names
}

func (c *Client) logFailure(ctx context.Context, operation string, err error) {
	switch {
	case errors.Is(err, ErrMissingAPIKey):
		logging.Ctx(ctx).Debug().Str("operation", operation).Msg("Windy API key not set, skipping webcam fetch")
		return
	case errors.Is(err, ErrNotFound):
		logging.Ctx(ctx).Debug().Str("operation", operation).Msg("Windy webcam not found")
		return
	}

	evt := logging.Ctx(ctx).Warn().Str("operation", operation)
	var se *StatusError
	if errors.As(err, &se) {
		evt = evt.Int("status", se.StatusCode).Str("body", se.Body)
	} else {
		evt = evt.Err(err)
	}
	evt.Msg("Windy API request failed")
}
