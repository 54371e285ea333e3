// Worldcams - Live Webcam Map Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/worldcams

package catalog

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/tomtom215/worldcams/internal/config"
	"github.com/tomtom215/worldcams/internal/logging"
	"github.com/tomtom215/worldcams/internal/metrics"
	"github.com/tomtom215/worldcams/internal/models"
	camsync "github.com/tomtom215/worldcams/internal/sync"
)

// Catalog modes.
const (
	ModeStatic  = "static"
	ModeDynamic = "dynamic"
)

// DefaultFetchTimeout bounds the one-time directory fetch of dynamic mode.
const DefaultFetchTimeout = 2 * time.Minute

// Fetcher returns the full external camera collection. Failures are handled
// by the implementation and surface as an empty list.
type Fetcher interface {
	FetchAllSnapshot(ctx context.Context) []models.Camera
}

// Loader assembles the served catalog.
//
// Static mode serves the curated list merged with the snapshot file read at
// construction. Dynamic mode merges the curated list with one live directory
// fetch on first use and keeps the result for the life of the process.
type Loader struct {
	mode         string
	curated      []models.Camera
	static       *Catalog
	fetcher      Fetcher
	fetchTimeout time.Duration

	sg      singleflight.Group
	mu      sync.RWMutex
	done    bool
	dynamic *Catalog
}

// NewLoader reads the curated list and, when a snapshot path is configured,
// the snapshot file. A missing file is logged and treated as empty; a
// malformed one is an error.
func NewLoader(cfg config.CatalogConfig, fetcher Fetcher) (*Loader, error) {
	mode := strings.ToLower(cfg.Mode)
	if mode != ModeStatic && mode != ModeDynamic {
		return nil, fmt.Errorf("unknown catalog mode %q", cfg.Mode)
	}
	if mode == ModeDynamic && fetcher == nil {
		return nil, errors.New("dynamic catalog mode requires a fetcher")
	}

	log := logging.WithComponent("catalog")

	curated, err := readOptional(cfg.CuratedPath, LoadCurated)
	if err != nil {
		return nil, err
	}

	var external []models.Camera
	if cfg.SnapshotPath != "" {
		external, err = readOptional(cfg.SnapshotPath, camsync.ReadSnapshot)
		if err != nil {
			return nil, err
		}
		for i := range external {
			if external[i].Source == "" {
				external[i].Source = models.SourceWindy
			}
		}
	}

	l := &Loader{
		mode:         mode,
		curated:      curated,
		static:       New(Merge(curated, external)),
		fetcher:      fetcher,
		fetchTimeout: DefaultFetchTimeout,
	}

	log.Info().
		Str("mode", mode).
		Int("curated", len(curated)).
		Int("snapshot", len(external)).
		Int("served", l.static.Len()).
		Msg("Catalog initialized")
	if mode == ModeStatic {
		metrics.RecordCatalogLoad(mode, l.static.CountBySource(), nil)
	}
	return l, nil
}

func readOptional(path string, read func(string) ([]models.Camera, error)) ([]models.Camera, error) {
	if path == "" {
		return nil, nil
	}
	cams, err := read(path)
	if errors.Is(err, fs.ErrNotExist) {
		logging.Warn().Str("path", path).Msg("Camera file not found, continuing without it")
		return nil, nil
	}
	return cams, err
}

// Mode returns the configured catalog mode.
func (l *Loader) Mode() string {
	return l.mode
}

// Static returns the curated list merged with the snapshot file.
func (l *Loader) Static() []models.Camera {
	return l.static.All()
}

// Get returns the dynamic catalog, fetching it on the first call. Concurrent
// first callers share one fetch. The fetch is not canceled when the caller
// gives up; a caller whose context ends first gets the context error.
func (l *Loader) Get(ctx context.Context) ([]models.Camera, error) {
	c, err := l.getDynamic(ctx)
	if err != nil {
		return nil, err
	}
	return c.All(), nil
}

func (l *Loader) getDynamic(ctx context.Context) (*Catalog, error) {
	l.mu.RLock()
	if l.done {
		c := l.dynamic
		l.mu.RUnlock()
		return c, nil
	}
	l.mu.RUnlock()

	ch := l.sg.DoChan("dynamic-catalog", func() (any, error) {
		l.mu.RLock()
		if l.done {
			c := l.dynamic
			l.mu.RUnlock()
			return c, nil
		}
		l.mu.RUnlock()

		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), l.fetchTimeout)
		defer cancel()

		start := time.Now()
		external := l.fetcher.FetchAllSnapshot(fetchCtx)
		c := New(Merge(l.curated, external))

		l.mu.Lock()
		l.dynamic = c
		l.done = true
		l.mu.Unlock()

		metrics.RecordCatalogLoad(ModeDynamic, c.CountBySource(), nil)
		logging.Ctx(ctx).Info().
			Int("fetched", len(external)).
			Int("served", c.Len()).
			Dur("duration", time.Since(start)).
			Msg("Dynamic catalog loaded")
		return c, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*Catalog), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Catalog returns the indexed catalog for the configured mode.
func (l *Loader) Catalog(ctx context.Context) (*Catalog, error) {
	if l.mode == ModeDynamic {
		return l.getDynamic(ctx)
	}
	return l.static, nil
}

// Cameras returns the camera list for the configured mode.
func (l *Loader) Cameras(ctx context.Context) ([]models.Camera, error) {
	c, err := l.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	return c.All(), nil
}

// Ready reports whether Cameras can answer without an upstream fetch.
func (l *Loader) Ready() bool {
	if l.mode == ModeStatic {
		return true
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.done
}

// Warm loads the dynamic catalog ahead of the first request. It is a no-op
// in static mode.
func (l *Loader) Warm(ctx context.Context) error {
	if l.mode != ModeDynamic {
		return nil
	}
	_, err := l.getDynamic(ctx)
	return err
}
