// Worldcams - Live Webcam Map Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/worldcams

package windy

import (
	"strings"

	"github.com/tomtom215/worldcams/internal/models"
)

// Placeholders used when every extractor in a chain comes up empty.
const (
	PlaceholderName     = "Windy Webcam"
	PlaceholderLocation = "Unknown"
)

// Extractor reads one candidate value from a raw webcam. It returns "" when
// the field is absent.
type Extractor func(w *Webcam) string

// FirstNonEmpty runs the chain in order and returns the first non-empty
// value.
func FirstNonEmpty(w *Webcam, chain []Extractor) string {
	for _, extract := range chain {
		if v := strings.TrimSpace(extract(w)); v != "" {
			return v
		}
	}
	return ""
}

// NameChain resolves the display name.
var NameChain = []Extractor{
	func(w *Webcam) string { return w.Name },
	func(w *Webcam) string { return w.Title },
}

func playerField(links *PlayerLinks, field func(*PlayerLinks) string) string {
	if links == nil {
		return ""
	}
	return field(links)
}

func urlPlayer(set *URLSet) *PlayerLinks {
	if set == nil {
		return nil
	}
	return set.Player
}

func live(p *PlayerLinks) string     { return p.Live }
func day(p *PlayerLinks) string      { return p.Day }
func month(p *PlayerLinks) string    { return p.Month }
func year(p *PlayerLinks) string     { return p.Year }
func lifetime(p *PlayerLinks) string { return p.Lifetime }

// PlayerURLChain resolves the embeddable player URL. Live streams win over
// day timelapses, which win over the archive fields.
var PlayerURLChain = []Extractor{
	func(w *Webcam) string { return playerField(urlPlayer(w.URL), live) },
	func(w *Webcam) string { return playerField(urlPlayer(w.URL), day) },
	func(w *Webcam) string { return playerField(urlPlayer(w.URLs), live) },
	func(w *Webcam) string { return playerField(urlPlayer(w.URLs), day) },
	func(w *Webcam) string { return playerField(w.Player, live) },
	func(w *Webcam) string { return playerField(w.Player, day) },
	func(w *Webcam) string { return playerField(w.Player, month) },
	func(w *Webcam) string { return playerField(w.Player, year) },
	func(w *Webcam) string { return playerField(w.Player, lifetime) },
}

func currentThumbnail(set *ImageSet) string {
	if set == nil || set.Current == nil {
		return ""
	}
	return set.Current.Thumbnail
}

// ThumbnailChain resolves the thumbnail image. Older API versions use
// images instead of image.
var ThumbnailChain = []Extractor{
	func(w *Webcam) string { return currentThumbnail(w.Image) },
	func(w *Webcam) string { return currentThumbnail(w.Images) },
}

// LocationLabel joins city and country, dropping empty parts.
func LocationLabel(w *Webcam) string {
	if w.Location == nil {
		return PlaceholderLocation
	}
	parts := make([]string, 0, 2)
	for _, p := range []string{w.Location.City, w.Location.Country} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return PlaceholderLocation
	}
	return strings.Join(parts, ", ")
}

type categoryRule struct {
	keywords []string
	category models.Category
}

// categoryRules is checked top to bottom. "sky" is listed under Space, so a
// "skyline" tag must hit the City rule first.
var categoryRules = []categoryRule{
	{[]string{"beach", "water", "ocean"}, models.CategoryBeach},
	{[]string{"nature", "mountain", "forest"}, models.CategoryNature},
	{[]string{"traffic", "road"}, models.CategoryTraffic},
	{[]string{"city", "urban", "skyline"}, models.CategoryCity},
	{[]string{"animal", "bird", "pet"}, models.CategoryAnimal},
	{[]string{"space", "sky", "star"}, models.CategorySpace},
}

// InferCategory maps the first upstream tag onto a category by lower-cased
// substring match. No tags, or no match, gives CategoryLive.
func InferCategory(tags []Tag) models.Category {
	if len(tags) == 0 {
		return models.CategoryLive
	}
	tag := strings.ToLower(string(tags[0]))
	for _, rule := range categoryRules {
		for _, kw := range rule.keywords {
			if strings.Contains(tag, kw) {
				return rule.category
			}
		}
	}
	return models.CategoryLive
}
