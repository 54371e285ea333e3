// Worldcams - Live Webcam Map Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/worldcams

package models

import (
	"math"
	"strings"
	"time"
)

// Category is the closed set of camera categories shown in the UI.
type Category string

const (
	CategoryCity    Category = "City"
	CategoryNature  Category = "Nature"
	CategoryTraffic Category = "Traffic"
	CategorySpace   Category = "Space"
	CategoryBeach   Category = "Beach"
	CategoryAnimal  Category = "Animal"
	CategoryLive    Category = "Live"
)

// Categories returns every category in display order.
func Categories() []Category {
	return []Category{
		CategoryCity,
		CategoryNature,
		CategoryTraffic,
		CategorySpace,
		CategoryBeach,
		CategoryAnimal,
		CategoryLive,
	}
}

// ParseCategory matches a category name case-insensitively.
func ParseCategory(s string) (Category, bool) {
	for _, c := range Categories() {
		if strings.EqualFold(string(c), strings.TrimSpace(s)) {
			return c, true
		}
	}
	return "", false
}

// Source identifies where a camera record came from. It decides which
// playback mechanism the UI uses.
type Source string

const (
	// SourceCurated marks statically authored cameras with an embedded video id.
	SourceCurated Source = "curated"

	// SourceWindy marks cameras from the Windy webcams directory.
	SourceWindy Source = "windy"
)

// ExternalIDPrefix namespaces directory cameras so they never collide with
// curated ids.
const ExternalIDPrefix = "windy-"

// ExternalID builds the catalog id for an upstream webcam id.
func ExternalID(upstreamID string) string {
	return ExternalIDPrefix + upstreamID
}

// UpstreamID strips the catalog prefix from an external camera id.
// Ids without the prefix are returned unchanged.
func UpstreamID(id string) string {
	return strings.TrimPrefix(id, ExternalIDPrefix)
}

// Coordinates is a WGS84 position in degrees.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Valid reports whether both components are finite numbers.
func (c Coordinates) Valid() bool {
	return isFinite(c.Lat) && isFinite(c.Lng)
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Camera is the normalized record shared by the catalog, the HTTP API and the
// persisted snapshots.
type Camera struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Location    string      `json:"location"`
	Description string      `json:"description"`
	Source      Source      `json:"source"`
	WindyID     string      `json:"windyId,omitempty"`
	YouTubeID   string      `json:"youtubeId,omitempty"`
	PlayerURL   string      `json:"windyPlayerUrl,omitempty"`
	Thumbnail   string      `json:"thumbnail,omitempty"`
	Category    Category    `json:"category"`
	Coordinates Coordinates `json:"coordinates"`
	Enabled     bool        `json:"enabled"`
	LastUpdated string      `json:"lastUpdated,omitempty"`
}

// Interactive reports whether the camera has a playable source.
// Cameras that return false are shown on the map but cannot be opened.
func (c Camera) Interactive() bool {
	switch c.Source {
	case SourceCurated:
		return c.YouTubeID != ""
	default:
		return c.PlayerURL != ""
	}
}

// IsExternal reports whether the camera came from the webcam directory.
func (c Camera) IsExternal() bool {
	return c.Source == SourceWindy
}

// timestampLayout always emits milliseconds so every timestamp has the same
// width. Snapshot change detection compares encoded lengths.
const timestampLayout = "2006-01-02T15:04:05.000Z"

// FormatTimestamp renders t as a fixed-width UTC ISO-8601 string.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}
