// Worldcams - Live Webcam Map Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/worldcams

package models

import (
	"math"
	"testing"
)

func TestBoundingBoxValidate(t *testing.T) {
	tests := []struct {
		name    string
		box     BoundingBox
		wantErr bool
	}{
		{"world", BoundingBox{West: -180, North: 90, East: 180, South: -90}, false},
		{"europe", BoundingBox{West: -10, North: 60, East: 30, South: 35}, false},
		{"antimeridian", BoundingBox{West: 170, North: 10, East: -170, South: -10}, false},
		{"north below south", BoundingBox{West: 0, North: 10, East: 5, South: 20}, true},
		{"latitude out of range", BoundingBox{West: 0, North: 91, East: 5, South: 0}, true},
		{"longitude out of range", BoundingBox{West: -181, North: 10, East: 5, South: 0}, true},
		{"nan edge", BoundingBox{West: math.NaN(), North: 10, East: 5, South: 0}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.box.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestBoundingBoxContains(t *testing.T) {
	europe := BoundingBox{West: -10, North: 60, East: 30, South: 35}
	pacific := BoundingBox{West: 170, North: 10, East: -170, South: -10}

	tests := []struct {
		name string
		box  BoundingBox
		c    Coordinates
		want bool
	}{
		{"paris in europe", europe, Coordinates{Lat: 48.85, Lng: 2.35}, true},
		{"edge included", europe, Coordinates{Lat: 60, Lng: 30}, true},
		{"new york outside europe", europe, Coordinates{Lat: 40.7, Lng: -74}, false},
		{"fiji across antimeridian", pacific, Coordinates{Lat: -1, Lng: 179}, true},
		{"samoa across antimeridian", pacific, Coordinates{Lat: -1, Lng: -172}, true},
		{"hawaii outside", pacific, Coordinates{Lat: 5, Lng: -155}, false},
		{"invalid coordinates", europe, Coordinates{Lat: math.NaN(), Lng: 2}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.box.Contains(tt.c); got != tt.want {
				t.Errorf("Contains(%+v) = %v, want %v", tt.c, got, tt.want)
			}
		})
	}
}

func TestBoundingBoxParams(t *testing.T) {
	p := BoundingBox{West: -10.5, North: 60, East: 30, South: 35.25}.Params()
	want := map[string]string{"west": "-10.5", "north": "60", "east": "30", "south": "35.25"}
	for k, v := range want {
		if p[k] != v {
			t.Errorf("Params()[%q] = %q, want %q", k, p[k], v)
		}
	}
}
