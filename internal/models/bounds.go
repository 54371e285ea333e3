// Worldcams - Live Webcam Map Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/worldcams

package models

import (
	"fmt"
	"strconv"
)

// BoundingBox is a rectangular map region given by its four edges in degrees.
// West may be greater than East for boxes that cross the antimeridian.
type BoundingBox struct {
	West  float64 `json:"west"`
	North float64 `json:"north"`
	East  float64 `json:"east"`
	South float64 `json:"south"`
}

// Validate checks ranges and that North is not below South.
func (b BoundingBox) Validate() error {
	for _, v := range []float64{b.West, b.North, b.East, b.South} {
		if !isFinite(v) {
			return fmt.Errorf("bounding box edges must be finite numbers")
		}
	}
	if b.North < -90 || b.North > 90 || b.South < -90 || b.South > 90 {
		return fmt.Errorf("latitude must be between -90 and 90")
	}
	if b.West < -180 || b.West > 180 || b.East < -180 || b.East > 180 {
		return fmt.Errorf("longitude must be between -180 and 180")
	}
	if b.North < b.South {
		return fmt.Errorf("north (%g) must not be below south (%g)", b.North, b.South)
	}
	return nil
}

// Contains reports whether c lies inside the box, edges included.
func (b BoundingBox) Contains(c Coordinates) bool {
	if !c.Valid() || c.Lat < b.South || c.Lat > b.North {
		return false
	}
	if b.West <= b.East {
		return c.Lng >= b.West && c.Lng <= b.East
	}
	return c.Lng >= b.West || c.Lng <= b.East
}

// Params returns the edges formatted as query parameter values, keyed by
// west, north, east and south.
func (b BoundingBox) Params() map[string]string {
	return map[string]string{
		"west":  formatDegrees(b.West),
		"north": formatDegrees(b.North),
		"east":  formatDegrees(b.East),
		"south": formatDegrees(b.South),
	}
}

func formatDegrees(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
