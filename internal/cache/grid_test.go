// Worldcams - Live Webcam Map Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/worldcams

package cache

import (
	"fmt"
	"math"
	"sort"
	"sync"
	"testing"
)

func ids[T any](entries []GridEntry[T]) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.ID)
	}
	sort.Strings(out)
	return out
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func newTestGrid(t *testing.T) *Grid[int] {
	t.Helper()
	g := NewGrid[int](100)
	g.Insert("london", 51.5074, -0.1278, 0)
	g.Insert("paris", 48.8566, 2.3522, 1)
	g.Insert("nyc", 40.7128, -74.0060, 2)
	g.Insert("tokyo", 35.6762, 139.6503, 3)
	g.Insert("fiji", -17.7134, 178.0650, 4)
	g.Insert("samoa", -13.7590, -172.1046, 5)
	return g
}

func TestGrid_InsertReplaceRemove(t *testing.T) {
	g := NewGrid[string](50)

	g.Insert("a", 10, 10, "first")
	g.Insert("a", -10, -10, "moved")

	if g.Size() != 1 {
		t.Fatalf("Expected size 1, got %d", g.Size())
	}
	if got := g.QueryBounds(5, 5, 15, 15); len(got) != 0 {
		t.Errorf("Old position should be empty, got %v", ids(got))
	}
	got := g.QueryBounds(-15, -15, -5, -5)
	if len(got) != 1 || got[0].Value != "moved" {
		t.Errorf("Expected moved entry, got %+v", got)
	}

	if !g.Remove("a") {
		t.Error("Expected Remove to report true")
	}
	if g.Remove("a") {
		t.Error("Expected second Remove to report false")
	}
	if g.Size() != 0 {
		t.Errorf("Expected empty grid, got %d", g.Size())
	}
}

func TestGrid_QueryBounds(t *testing.T) {
	g := newTestGrid(t)

	tests := []struct {
		name                     string
		west, south, east, north float64
		want                     []string
	}{
		{"europe", -10, 35, 30, 60, []string{"london", "paris"}},
		{"whole world", -180, -90, 180, 90, []string{"fiji", "london", "nyc", "paris", "samoa", "tokyo"}},
		{"empty ocean", -40, -40, -20, -20, []string{}},
		{"edge inclusive", -0.1278, 51.5074, 0, 52, []string{"london"}},
		{"antimeridian", 170, -20, -170, -10, []string{"fiji", "samoa"}},
		{"inverted latitude", -10, 60, 30, 35, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(g.QueryBounds(tt.west, tt.south, tt.east, tt.north))
			if !equalIDs(got, tt.want) {
				t.Errorf("QueryBounds() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGrid_QueryBoundsSmallCells(t *testing.T) {
	// tiny cells force the occupied-cell scan for a world-sized box
	g := NewGrid[int](1)
	g.Insert("a", 0, 0, 0)
	g.Insert("b", 45, 90, 1)

	got := ids(g.QueryBounds(-180, -90, 180, 90))
	if !equalIDs(got, []string{"a", "b"}) {
		t.Errorf("Expected both entries, got %v", got)
	}
}

func TestGrid_QueryNearby(t *testing.T) {
	g := newTestGrid(t)

	// London to Paris is about 344 km
	got := ids(g.QueryNearby(51.5074, -0.1278, 400))
	if !equalIDs(got, []string{"london", "paris"}) {
		t.Errorf("Expected london and paris, got %v", got)
	}

	got = ids(g.QueryNearby(51.5074, -0.1278, 100))
	if !equalIDs(got, []string{"london"}) {
		t.Errorf("Expected only london, got %v", got)
	}
}

func TestGrid_Concurrent(t *testing.T) {
	g := NewGrid[int](100)

	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				id := fmt.Sprintf("w%d-%d", w, i)
				g.Insert(id, float64(i%80), float64(i%170), i)
				g.QueryNearby(0, 0, 500)
			}
		}(w)
	}
	wg.Wait()

	if g.Size() != 800 {
		t.Errorf("Expected 800 entries, got %d", g.Size())
	}
}

func TestHaversineKm(t *testing.T) {
	tests := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
		want, tolerance        float64
	}{
		{"same point", 10, 10, 10, 10, 0, 0.001},
		{"london to paris", 51.5074, -0.1278, 48.8566, 2.3522, 344, 5},
		{"new york to los angeles", 40.7128, -74.0060, 34.0522, -118.2437, 3936, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HaversineKm(tt.lat1, tt.lon1, tt.lat2, tt.lon2)
			if math.Abs(got-tt.want) > tt.tolerance {
				t.Errorf("HaversineKm() = %v, want %v ± %v", got, tt.want, tt.tolerance)
			}
		})
	}
}

func TestGrid_QueryNearbyAcrossAntimeridian(t *testing.T) {
	g := NewGrid[int](50)
	g.Insert("east", 0, 179.8, 0)
	g.Insert("west", 0, -179.8, 1)

	// the two points are about 44 km apart across the date line
	got := ids(g.QueryNearby(0, 179.8, 60))
	if !equalIDs(got, []string{"east", "west"}) {
		t.Errorf("Expected both sides of the antimeridian, got %v", got)
	}
}
