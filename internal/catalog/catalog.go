// Worldcams - Live Webcam Map Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/worldcams

package catalog

import (
	"math/rand/v2"
	"sort"
	"strings"

	"github.com/tomtom215/worldcams/internal/cache"
	"github.com/tomtom215/worldcams/internal/models"
)

// gridCellKm sizes the spatial index cells.
const gridCellKm = 100

// Merge combines curated and external cameras into the served list. Curated
// cameras come first. A repeated id keeps its first occurrence. Disabled
// cameras and cameras without finite coordinates are left out.
func Merge(curated, external []models.Camera) []models.Camera {
	out := make([]models.Camera, 0, len(curated)+len(external))
	seen := make(map[string]bool, cap(out))

	for _, list := range [][]models.Camera{curated, external} {
		for _, c := range list {
			if c.ID == "" || seen[c.ID] || !c.Enabled || !c.Coordinates.Valid() {
				continue
			}
			seen[c.ID] = true
			out = append(out, c)
		}
	}
	return out
}

// Catalog is an immutable, indexed camera list.
type Catalog struct {
	cameras []models.Camera
	byID    map[string]int
	grid    *cache.Grid[int]
}

// New indexes cams. The slice is not copied and must not be modified
// afterwards.
func New(cams []models.Camera) *Catalog {
	c := &Catalog{
		cameras: cams,
		byID:    make(map[string]int, len(cams)),
		grid:    cache.NewGrid[int](gridCellKm),
	}
	for i, cam := range cams {
		c.byID[cam.ID] = i
		c.grid.Insert(cam.ID, cam.Coordinates.Lat, cam.Coordinates.Lng, i)
	}
	return c
}

// All returns every camera in catalog order.
func (c *Catalog) All() []models.Camera {
	return c.cameras
}

// Len returns the number of cameras.
func (c *Catalog) Len() int {
	return len(c.cameras)
}

// CountBySource returns the number of cameras per source.
func (c *Catalog) CountBySource() map[string]int {
	counts := map[string]int{
		string(models.SourceCurated): 0,
		string(models.SourceWindy):   0,
	}
	for _, cam := range c.cameras {
		counts[string(cam.Source)]++
	}
	return counts
}

// Find returns the camera with the given id.
func (c *Catalog) Find(id string) (models.Camera, bool) {
	i, ok := c.byID[id]
	if !ok {
		return models.Camera{}, false
	}
	return c.cameras[i], true
}

// WithinBounds returns the cameras inside box in catalog order.
func (c *Catalog) WithinBounds(box models.BoundingBox) []models.Camera {
	entries := c.grid.QueryBounds(box.West, box.South, box.East, box.North)
	positions := make([]int, len(entries))
	for i, e := range entries {
		positions[i] = e.Value
	}
	sort.Ints(positions)

	out := make([]models.Camera, len(positions))
	for i, p := range positions {
		out[i] = c.cameras[p]
	}
	return out
}

// Neighbor is a camera with its distance from a reference point.
type Neighbor struct {
	Camera     models.Camera `json:"camera"`
	DistanceKm float64       `json:"distanceKm"`
}

// Nearby returns the other cameras within radiusKm of the camera with the
// given id, nearest first. It reports false when the id is unknown.
func (c *Catalog) Nearby(id string, radiusKm float64) ([]Neighbor, bool) {
	origin, ok := c.Find(id)
	if !ok {
		return nil, false
	}

	lat, lng := origin.Coordinates.Lat, origin.Coordinates.Lng
	entries := c.grid.QueryNearby(lat, lng, radiusKm)

	out := make([]Neighbor, 0, len(entries))
	for _, e := range entries {
		if e.ID == id {
			continue
		}
		out = append(out, Neighbor{
			Camera:     c.cameras[e.Value],
			DistanceKm: cache.HaversineKm(lat, lng, e.Lat, e.Lon),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DistanceKm != out[j].DistanceKm {
			return out[i].DistanceKm < out[j].DistanceKm
		}
		return out[i].Camera.ID < out[j].Camera.ID
	})
	return out, true
}

// Search returns the cameras whose name or location contains query,
// ignoring case. An empty query matches everything.
func Search(cams []models.Camera, query string) []models.Camera {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return cams
	}

	out := make([]models.Camera, 0)
	for _, c := range cams {
		if strings.Contains(strings.ToLower(c.Name), q) || strings.Contains(strings.ToLower(c.Location), q) {
			out = append(out, c)
		}
	}
	return out
}

// FilterCategory returns the cameras in category.
func FilterCategory(cams []models.Camera, category models.Category) []models.Camera {
	out := make([]models.Camera, 0)
	for _, c := range cams {
		if c.Category == category {
			out = append(out, c)
		}
	}
	return out
}

// Random picks a camera other than excludeID when more than one camera
// exists. It reports false for an empty list.
func Random(cams []models.Camera, excludeID string) (models.Camera, bool) {
	return randomWith(cams, excludeID, rand.IntN)
}

func randomWith(cams []models.Camera, excludeID string, intn func(int) int) (models.Camera, bool) {
	switch len(cams) {
	case 0:
		return models.Camera{}, false
	case 1:
		return cams[0], true
	}

	current := -1
	for i, c := range cams {
		if c.ID == excludeID {
			current = i
			break
		}
	}
	if current < 0 {
		return cams[intn(len(cams))], true
	}

	// draw from the other n-1 positions
	next := intn(len(cams) - 1)
	if next >= current {
		next++
	}
	return cams[next], true
}
