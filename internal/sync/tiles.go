// Worldcams - Live Webcam Map Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/worldcams

package sync

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/tomtom215/worldcams/internal/config"
	"github.com/tomtom215/worldcams/internal/logging"
	"github.com/tomtom215/worldcams/internal/metrics"
	"github.com/tomtom215/worldcams/internal/models"
	"github.com/tomtom215/worldcams/internal/windy"
)

// ClusterFetcher queries the clustered map view for one tile.
type ClusterFetcher interface {
	FetchClusters(ctx context.Context, q windy.ClusterQuery) ([]windy.Webcam, error)
}

// Default crawl region. The poles are left out because the upstream map
// projection does not cover them.
const (
	DefaultNorthLat = 85.0
	DefaultSouthLat = -85.0
	DefaultWestLon  = -180.0
	DefaultEastLon  = 180.0
)

// Region is a latitude/longitude rectangle.
type Region struct {
	North float64
	South float64
	West  float64
	East  float64
}

// DefaultRegion returns the whole mappable world.
func DefaultRegion() Region {
	return Region{North: DefaultNorthLat, South: DefaultSouthLat, West: DefaultWestLon, East: DefaultEastLon}
}

// Clamp limits latitudes to [-90, 90] and longitudes to [-180, 180].
func (r Region) Clamp() Region {
	return Region{
		North: clamp(r.North, -90, 90),
		South: clamp(r.South, -90, 90),
		West:  clamp(r.West, -180, 180),
		East:  clamp(r.East, -180, 180),
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// Tile is one map/clusters query rectangle at a zoom level.
type Tile struct {
	North float64
	South float64
	West  float64
	East  float64
	Zoom  int
}

// MaxSpanForZoom returns the tile span in degrees at zoom for a full extent
// of fullSpan degrees (180 for latitude, 360 for longitude).
func MaxSpanForZoom(zoom int, fullSpan float64) float64 {
	return fullSpan / math.Pow(2, float64(zoom-1))
}

// BuildInitialTiles covers the region with tiles at minZoom, rows from north
// to south and columns from west to east. Edge tiles are clipped to the
// region.
func BuildInitialTiles(minZoom int, r Region) []Tile {
	latSpan := MaxSpanForZoom(minZoom, 180)
	lonSpan := MaxSpanForZoom(minZoom, 360)
	if latSpan <= 0 || lonSpan <= 0 {
		return nil
	}

	var tiles []Tile
	for lat := r.North; lat > r.South; lat -= latSpan {
		south := math.Max(lat-latSpan, r.South)
		for lon := r.West; lon < r.East; lon += lonSpan {
			east := math.Min(lon+lonSpan, r.East)
			tiles = append(tiles, Tile{North: lat, South: south, West: lon, East: east, Zoom: minZoom})
		}
	}
	return tiles
}

// Split returns the four quadrants of t at the next zoom level in the order
// north-west, north-east, south-west, south-east.
func (t Tile) Split() []Tile {
	midLat := (t.North + t.South) / 2
	midLon := (t.West + t.East) / 2
	z := t.Zoom + 1

	return []Tile{
		{North: t.North, South: midLat, West: t.West, East: midLon, Zoom: z},
		{North: t.North, South: midLat, West: midLon, East: t.East, Zoom: z},
		{North: midLat, South: t.South, West: t.West, East: midLon, Zoom: z},
		{North: midLat, South: t.South, West: midLon, East: t.East, Zoom: z},
	}
}

// TilesOptions configures a tiled crawl.
type TilesOptions struct {
	Output      string
	MinZoom     int
	MaxZoom     int
	MaxRequests int
	Delay       time.Duration
	Include     string
	Region      Region
}

// Validate applies the SYNC_* zoom and budget rules to options assembled
// from flags, and checks that the region is a finite, non-empty rectangle.
func (o TilesOptions) Validate() error {
	if o.MinZoom < config.MinZoomLevel || o.MaxZoom > config.MaxZoomLevel || o.MinZoom > o.MaxZoom {
		return fmt.Errorf("zoom levels must satisfy %d <= minZoom <= maxZoom <= %d, got %d and %d",
			config.MinZoomLevel, config.MaxZoomLevel, o.MinZoom, o.MaxZoom)
	}
	if o.MaxRequests < 1 {
		return fmt.Errorf("maxRequests must be positive, got %d", o.MaxRequests)
	}
	if o.Output == "" {
		return errors.New("output must not be empty")
	}

	r := o.Region
	for _, v := range []float64{r.North, r.South, r.West, r.East} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("region bounds must be finite, got %+v", r)
		}
	}
	if c := r.Clamp(); c.North <= c.South || c.East <= c.West {
		return fmt.Errorf("region must have north > south and east > west, got %+v", r)
	}
	return nil
}

// TilesOptionsFromConfig builds options from the sync configuration with the
// default region.
func TilesOptionsFromConfig(cfg config.SyncConfig) TilesOptions {
	return TilesOptions{
		Output:      cfg.TilesOutput,
		MinZoom:     cfg.MinZoom,
		MaxZoom:     cfg.MaxZoom,
		MaxRequests: cfg.MaxRequests,
		Delay:       cfg.TileDelay,
		Include:     cfg.Include,
		Region:      DefaultRegion(),
	}
}

// TilesSyncer crawls the clustered map view, splitting tiles until every
// result is an individual webcam or the zoom limit is reached.
type TilesSyncer struct {
	fetcher ClusterFetcher
	opts    TilesOptions
	now     func() time.Time
}

// NewTilesSyncer creates a tiled syncer. The region is clamped.
func NewTilesSyncer(fetcher ClusterFetcher, opts TilesOptions) *TilesSyncer {
	opts.Region = opts.Region.Clamp()
	return &TilesSyncer{fetcher: fetcher, opts: opts, now: time.Now}
}

// ErrAllTilesFailed is returned by Run when every tile request failed and
// nothing was collected. The existing snapshot is left untouched.
var ErrAllTilesFailed = errors.New("every tile request failed")

// CollectResult is the outcome of a crawl.
type CollectResult struct {
	Cameras  []models.Camera
	Fetched  int
	Requests int
	Failures int
	Partial  bool
}

// AllFailed reports whether the crawl made requests and none of them
// succeeded.
func (r CollectResult) AllFailed() bool {
	return r.Requests > 0 && r.Failures == r.Requests && len(r.Cameras) == 0
}

// Collect runs the tile queue. Tile failures are logged and skipped. When the
// request budget runs out the cameras gathered so far are returned with
// Partial set. Invalid options are rejected before any request.
func (s *TilesSyncer) Collect(ctx context.Context) (CollectResult, error) {
	if err := s.opts.Validate(); err != nil {
		return CollectResult{}, err
	}
	log := logging.Ctx(ctx)
	r := s.opts.Region

	log.Info().
		Float64("south", r.South).Float64("north", r.North).
		Float64("west", r.West).Float64("east", r.East).
		Int("min_zoom", s.opts.MinZoom).Int("max_zoom", s.opts.MaxZoom).
		Int("max_requests", s.opts.MaxRequests).
		Msg("Tile sync started")

	queue := BuildInitialTiles(s.opts.MinZoom, r)
	seen := newOrderedCameras()
	var res CollectResult

	for len(queue) > 0 {
		if res.Requests >= s.opts.MaxRequests {
			log.Warn().Int("max_requests", s.opts.MaxRequests).Int("queued", len(queue)).Msg("Max requests reached, stopping early")
			res.Partial = true
			break
		}

		tile := queue[0]
		queue = queue[1:]
		res.Requests++

		clusters, err := s.fetcher.FetchClusters(ctx, windy.ClusterQuery{
			North:   tile.North,
			South:   tile.South,
			West:    tile.West,
			East:    tile.East,
			Zoom:    tile.Zoom,
			Include: s.opts.Include,
		})
		switch {
		case err != nil:
			if ctxErr := ctx.Err(); ctxErr != nil {
				return CollectResult{Requests: res.Requests}, ctxErr
			}
			res.Failures++
			log.Error().Err(err).Int("zoom", tile.Zoom).Msg("Tile error")
		case tile.Zoom < s.opts.MaxZoom && anyClustered(clusters):
			queue = append(queue, tile.Split()...)
		default:
			res.Fetched += len(clusters)
			for _, w := range clusters {
				if w.WebcamID == "" {
					continue
				}
				if cam := windy.ToCamera(w, s.now()); cam.Coordinates.Valid() {
					seen.put(cam)
				}
			}
		}

		if err := pause(ctx, s.opts.Delay); err != nil {
			return CollectResult{Requests: res.Requests}, err
		}
	}

	res.Cameras = seen.list()
	log.Info().Int("requests", res.Requests).Int("failures", res.Failures).Int("unique", len(res.Cameras)).Msg("Tiles processed")
	return res, nil
}

func anyClustered(webcams []windy.Webcam) bool {
	for i := range webcams {
		if webcams[i].Clustered() {
			return true
		}
	}
	return false
}

// Run crawls and persists the result.
func (s *TilesSyncer) Run(ctx context.Context) (Report, error) {
	start := s.now()

	res, err := s.Collect(ctx)
	if err != nil {
		metrics.RecordSyncRun(ModeTiles, time.Since(start), 0, res.Requests, false, err)
		return Report{}, err
	}
	if res.AllFailed() {
		err := fmt.Errorf("%w (%d requests), keeping %s", ErrAllTilesFailed, res.Requests, s.opts.Output)
		metrics.RecordSyncRun(ModeTiles, time.Since(start), 0, res.Requests, false, err)
		return Report{}, err
	}

	report, err := Persist(s.opts.Output, res.Cameras)
	if err != nil {
		metrics.RecordSyncRun(ModeTiles, time.Since(start), 0, res.Requests, false, err)
		return Report{}, err
	}

	report.Mode = ModeTiles
	report.Fetched = res.Fetched
	report.Requests = res.Requests
	report.Partial = res.Partial
	report.Duration = time.Since(start)
	metrics.RecordSyncRun(ModeTiles, report.Duration, report.Total, res.Requests, report.Written, nil)
	logging.Ctx(ctx).Info().Object("report", report).Msg("Tile sync finished")
	return report, nil
}

// orderedCameras deduplicates by id. A repeated id keeps its first position
// and takes the latest value.
type orderedCameras struct {
	index map[string]int
	items []models.Camera
}

func newOrderedCameras() *orderedCameras {
	return &orderedCameras{index: make(map[string]int)}
}

func (o *orderedCameras) put(c models.Camera) {
	if i, ok := o.index[c.ID]; ok {
		o.items[i] = c
		return
	}
	o.index[c.ID] = len(o.items)
	o.items = append(o.items, c)
}

func (o *orderedCameras) list() []models.Camera {
	return o.items
}
