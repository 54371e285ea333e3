// Worldcams - Live Webcam Map Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/worldcams

package services

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/worldcams/internal/logging"
)

// ValueLogCollector reclaims space from an embedded store. Satisfied by
// *proxycache.Badger.
type ValueLogCollector interface {
	RunValueLogGC(discardRatio float64) error
}

// Defaults for CacheGC.
const (
	DefaultGCInterval     = 10 * time.Minute
	DefaultGCDiscardRatio = 0.5
)

// CacheGC periodically garbage-collects the proxy cache's value log so
// expired responses stop occupying disk.
type CacheGC struct {
	store        ValueLogCollector
	interval     time.Duration
	discardRatio float64
}

// NewCacheGC creates the service. A non-positive interval uses
// DefaultGCInterval.
func NewCacheGC(store ValueLogCollector, interval time.Duration) *CacheGC {
	if interval <= 0 {
		interval = DefaultGCInterval
	}
	return &CacheGC{
		store:        store,
		interval:     interval,
		discardRatio: DefaultGCDiscardRatio,
	}
}

// Serve implements suture.Service. A GC error is returned so the supervisor
// counts it and restarts the loop.
func (g *CacheGC) Serve(ctx context.Context) error {
	ticker := time.NewTicker(g.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			start := time.Now()
			if err := g.store.RunValueLogGC(g.discardRatio); err != nil {
				return fmt.Errorf("proxy cache gc: %w", err)
			}
			logger := logging.WithComponent("proxycache")
			logger.Debug().
				Dur("duration", time.Since(start)).
				Msg("Value log GC finished")
		}
	}
}

func (g *CacheGC) String() string {
	return "proxy-cache-gc"
}
