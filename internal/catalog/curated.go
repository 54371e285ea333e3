// Worldcams - Live Webcam Map Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/worldcams

package catalog

import (
	"fmt"
	"os"

	"github.com/goccy/go-json"

	"github.com/tomtom215/worldcams/internal/models"
)

// LoadCurated reads the hand-authored camera list. Records carry no category;
// every curated camera is Live, curated and enabled.
func LoadCurated(path string) ([]models.Camera, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read curated cameras %s: %w", path, err)
	}
	return ParseCurated(data)
}

// ParseCurated decodes a curated camera list.
func ParseCurated(data []byte) ([]models.Camera, error) {
	var cams []models.Camera
	if err := json.Unmarshal(data, &cams); err != nil {
		return nil, fmt.Errorf("failed to parse curated cameras: %w", err)
	}
	for i := range cams {
		cams[i].Category = models.CategoryLive
		cams[i].Source = models.SourceCurated
		cams[i].Enabled = true
	}
	return cams, nil
}
