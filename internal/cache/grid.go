// Worldcams - Live Webcam Map Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/worldcams

package cache

import (
	"math"
	"sync"
)

// kmPerDegree is the approximate length of one degree of latitude.
const kmPerDegree = 111.0

// Grid divides the map into square cells of roughly equal size so that
// bounding-box and radius queries only visit the cells they overlap.
//
// Time Complexity:
//   - Insert, Remove: O(1)
//   - QueryBounds, QueryNearby: O(c + k) for c overlapped cells and k entries in them
type Grid[T any] struct {
	mu       sync.RWMutex
	cells    map[CellKey][]*GridEntry[T]
	cellSize float64 // degrees
	entries  map[string]*GridEntry[T]
}

// CellKey is a grid cell coordinate.
type CellKey struct {
	X, Y int
}

// GridEntry is one indexed point.
type GridEntry[T any] struct {
	ID    string
	Lat   float64
	Lon   float64
	Value T
	cell  CellKey
}

// NewGrid creates a grid with cells of about cellSizeKm on each side.
func NewGrid[T any](cellSizeKm float64) *Grid[T] {
	if cellSizeKm <= 0 {
		cellSizeKm = 100
	}
	return &Grid[T]{
		cells:    make(map[CellKey][]*GridEntry[T]),
		cellSize: cellSizeKm / kmPerDegree,
		entries:  make(map[string]*GridEntry[T]),
	}
}

func normalizeLon(lon float64) float64 {
	for lon > 180 {
		lon -= 360
	}
	for lon < -180 {
		lon += 360
	}
	return lon
}

func (g *Grid[T]) cellFor(lat, lon float64) CellKey {
	return CellKey{
		X: int(math.Floor(normalizeLon(lon) / g.cellSize)),
		Y: int(math.Floor(lat / g.cellSize)),
	}
}

// Insert adds or replaces the entry with the given id.
func (g *Grid[T]) Insert(id string, lat, lon float64, value T) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if existing, ok := g.entries[id]; ok {
		g.removeFromCell(existing)
	}

	entry := &GridEntry[T]{ID: id, Lat: lat, Lon: normalizeLon(lon), Value: value, cell: g.cellFor(lat, lon)}
	g.cells[entry.cell] = append(g.cells[entry.cell], entry)
	g.entries[id] = entry
}

// Remove deletes the entry with the given id.
func (g *Grid[T]) Remove(id string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	entry, ok := g.entries[id]
	if !ok {
		return false
	}
	g.removeFromCell(entry)
	delete(g.entries, id)
	return true
}

func (g *Grid[T]) removeFromCell(entry *GridEntry[T]) {
	cell := g.cells[entry.cell]
	for i, e := range cell {
		if e.ID == entry.ID {
			cell[i] = cell[len(cell)-1]
			cell = cell[:len(cell)-1]
			break
		}
	}
	if len(cell) == 0 {
		delete(g.cells, entry.cell)
		return
	}
	g.cells[entry.cell] = cell
}

// Size returns the number of entries.
func (g *Grid[T]) Size() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.entries)
}

// QueryBounds returns the entries inside the box, edges included. A box
// with west > east crosses the antimeridian.
func (g *Grid[T]) QueryBounds(west, south, east, north float64) []GridEntry[T] {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if north < south {
		return nil
	}
	if west <= east {
		return g.queryRange(west, south, east, north, nil)
	}
	results := g.queryRange(west, south, 180, north, nil)
	return g.queryRange(-180, south, east, north, results)
}

func (g *Grid[T]) queryRange(west, south, east, north float64, results []GridEntry[T]) []GridEntry[T] {
	inside := func(e *GridEntry[T]) bool {
		return e.Lat >= south && e.Lat <= north && e.Lon >= west && e.Lon <= east
	}

	minCell := g.cellFor(south, west)
	maxCell := g.cellFor(north, east)
	span := (maxCell.X - minCell.X + 1) * (maxCell.Y - minCell.Y + 1)

	// Large boxes visit more empty cells than there are occupied ones.
	if span > len(g.cells) {
		for key, cell := range g.cells {
			if key.X < minCell.X || key.X > maxCell.X || key.Y < minCell.Y || key.Y > maxCell.Y {
				continue
			}
			for _, e := range cell {
				if inside(e) {
					results = append(results, *e)
				}
			}
		}
		return results
	}

	for x := minCell.X; x <= maxCell.X; x++ {
		for y := minCell.Y; y <= maxCell.Y; y++ {
			for _, e := range g.cells[CellKey{X: x, Y: y}] {
				if inside(e) {
					results = append(results, *e)
				}
			}
		}
	}
	return results
}

// QueryNearby returns the entries within radiusKm of the point.
func (g *Grid[T]) QueryNearby(lat, lon, radiusKm float64) []GridEntry[T] {
	g.mu.RLock()
	defer g.mu.RUnlock()

	radiusDeg := radiusKm / kmPerDegree
	latCells := int(math.Ceil(radiusDeg/g.cellSize)) + 1

	// Degrees of longitude shrink toward the poles.
	maxLonCells := int(math.Ceil(360/g.cellSize)) / 2
	lonCells := maxLonCells
	if cosLat := math.Cos(lat * math.Pi / 180); cosLat > 0.01 {
		lonCells = min(int(math.Ceil(radiusDeg/cosLat/g.cellSize))+1, maxLonCells)
	}
	center := g.cellFor(lat, lon)
	lonCellCount := int(math.Ceil(360 / g.cellSize))

	var results []GridEntry[T]
	seen := make(map[CellKey]bool)
	for dx := -lonCells; dx <= lonCells; dx++ {
		x := wrapCellX(center.X+dx, lonCellCount)
		columns := []int{x}
		if x == -lonCellCount/2 {
			// longitude exactly 180 lands one column past the range
			columns = append(columns, lonCellCount-lonCellCount/2)
		}
		for _, col := range columns {
			for dy := -latCells; dy <= latCells; dy++ {
				key := CellKey{X: col, Y: center.Y + dy}
				if seen[key] {
					continue
				}
				seen[key] = true
				for _, e := range g.cells[key] {
					if HaversineKm(lat, lon, e.Lat, e.Lon) <= radiusKm {
						results = append(results, *e)
					}
				}
			}
		}
	}
	return results
}

// wrapCellX maps a column index back into the [-180, 180) column range.
func wrapCellX(x, count int) int {
	half := count / 2
	for x < -half {
		x += count
	}
	for x >= count-half {
		x -= count
	}
	return x
}

// HaversineKm returns the great-circle distance between two points.
func HaversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	const earthRadiusKm = 6371.0

	lat1Rad := lat1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	deltaLat := (lat2 - lat1) * math.Pi / 180
	deltaLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(deltaLon/2)*math.Sin(deltaLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}
