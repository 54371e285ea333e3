// Worldcams - Live Webcam Map Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/worldcams

package services

import (
	"context"
	"fmt"
	"time"

	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/worldcams/internal/logging"
)

// Warmer loads a catalog ahead of the first request. Satisfied by
// *catalog.Loader.
type Warmer interface {
	Warm(ctx context.Context) error
}

// CatalogWarmer loads the dynamic catalog once at startup. A failed load is
// returned so the supervisor retries it with backoff; a successful load ends
// the service for good.
type CatalogWarmer struct {
	warmer Warmer
}

// NewCatalogWarmer wraps w.
func NewCatalogWarmer(w Warmer) *CatalogWarmer {
	return &CatalogWarmer{warmer: w}
}

// Serve implements suture.Service.
func (c *CatalogWarmer) Serve(ctx context.Context) error {
	start := time.Now()
	if err := c.warmer.Warm(ctx); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("warm catalog: %w", err)
	}
	logger := logging.WithComponent("catalog")
	logger.Info().
		Dur("duration", time.Since(start)).
		Msg("Catalog warm-up complete")
	return suture.ErrDoNotRestart
}

func (c *CatalogWarmer) String() string {
	return "catalog-warmer"
}
