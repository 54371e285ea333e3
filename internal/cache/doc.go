// Worldcams - Live Webcam Map Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/worldcams

/*
Package cache provides the in-process data structures behind the proxy
response store and catalog spatial queries.

# LRU

LRU is a generic, bounded, thread-safe cache with per-entry TTL. The proxy
memory store keeps raw upstream bodies in it so that a burst of identical
map requests costs one Windy call:

	store := cache.NewLRU[[]byte](512, 10*time.Minute)
	store.SetWithTTL(key, body, 4*time.Hour)
	if body, ok := store.Get(key); ok {
	    // serve cached body
	}

Expired entries are dropped lazily on Get; CleanupExpired sweeps the rest.

# Grid

Grid is a spatial hash over latitude/longitude. The catalog indexes every
camera once per load and answers bounding-box and radius queries without
scanning the whole list:

	grid := cache.NewGrid[int](100) // ~100 km cells
	grid.Insert(cam.ID, cam.Lat, cam.Lng, position)
	inView := grid.QueryBounds(west, south, east, north)
	near := grid.QueryNearby(lat, lng, 50)

Boxes with west > east wrap across the antimeridian.

# Thread Safety

Both types are safe for concurrent use.
*/
package cache
