// Worldcams - Live Webcam Map Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/worldcams

package windy

import (
	"math"
	"time"

	"github.com/tomtom215/worldcams/internal/models"
)

// ToCamera converts a raw webcam to the catalog model. Missing coordinates
// become NaN so that callers filtering on Coordinates.Valid drop them; they
// are never defaulted to 0,0.
func ToCamera(w Webcam, now time.Time) models.Camera {
	name := FirstNonEmpty(&w, NameChain)
	if name == "" {
		name = PlaceholderName
	}
	location := LocationLabel(&w)

	coords := models.Coordinates{Lat: math.NaN(), Lng: math.NaN()}
	if w.Location != nil {
		if w.Location.Latitude.Set {
			coords.Lat = w.Location.Latitude.Value
		}
		if w.Location.Longitude.Set {
			coords.Lng = w.Location.Longitude.Value
		}
	}

	upstreamID := string(w.WebcamID)
	return models.Camera{
		ID:          models.ExternalID(upstreamID),
		Name:        name,
		Location:    location,
		Description: "Live webcam from " + location,
		Source:      models.SourceWindy,
		WindyID:     upstreamID,
		PlayerURL:   FirstNonEmpty(&w, PlayerURLChain),
		Thumbnail:   FirstNonEmpty(&w, ThumbnailChain),
		Category:    InferCategory(w.Categories),
		Coordinates: coords,
		Enabled:     true,
		LastUpdated: models.FormatTimestamp(now),
	}
}

// ToCameras converts a list and drops records without finite coordinates
// or without an id.
func ToCameras(webcams []Webcam, now time.Time) []models.Camera {
	out := make([]models.Camera, 0, len(webcams))
	for _, w := range webcams {
		if w.WebcamID == "" {
			continue
		}
		cam := ToCamera(w, now)
		if !cam.Coordinates.Valid() {
			continue
		}
		out = append(out, cam)
	}
	return out
}
