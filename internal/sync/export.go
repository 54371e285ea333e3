// Worldcams - Live Webcam Map Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/worldcams

package sync

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/parquet-go/parquet-go"

	"github.com/tomtom215/worldcams/internal/logging"
	"github.com/tomtom215/worldcams/internal/models"
)

// ExportRow is the flat Parquet row for one camera.
type ExportRow struct {
	ID          string  `parquet:"id"`
	Name        string  `parquet:"name"`
	Location    string  `parquet:"location"`
	Description string  `parquet:"description"`
	Source      string  `parquet:"source"`
	WindyID     string  `parquet:"windy_id"`
	YouTubeID   string  `parquet:"youtube_id"`
	PlayerURL   string  `parquet:"player_url"`
	Thumbnail   string  `parquet:"thumbnail"`
	Category    string  `parquet:"category"`
	Lat         float64 `parquet:"lat"`
	Lng         float64 `parquet:"lng"`
	Enabled     bool    `parquet:"enabled"`
	LastUpdated string  `parquet:"last_updated"`
}

// ToExportRow flattens a camera.
func ToExportRow(c models.Camera) ExportRow {
	return ExportRow{
		ID:          c.ID,
		Name:        c.Name,
		Location:    c.Location,
		Description: c.Description,
		Source:      string(c.Source),
		WindyID:     c.WindyID,
		YouTubeID:   c.YouTubeID,
		PlayerURL:   c.PlayerURL,
		Thumbnail:   c.Thumbnail,
		Category:    string(c.Category),
		Lat:         c.Coordinates.Lat,
		Lng:         c.Coordinates.Lng,
		Enabled:     c.Enabled,
		LastUpdated: c.LastUpdated,
	}
}

// Camera converts the row back to the catalog model.
func (r ExportRow) Camera() models.Camera {
	return models.Camera{
		ID:          r.ID,
		Name:        r.Name,
		Location:    r.Location,
		Description: r.Description,
		Source:      models.Source(r.Source),
		WindyID:     r.WindyID,
		YouTubeID:   r.YouTubeID,
		PlayerURL:   r.PlayerURL,
		Thumbnail:   r.Thumbnail,
		Category:    models.Category(r.Category),
		Coordinates: models.Coordinates{Lat: r.Lat, Lng: r.Lng},
		Enabled:     r.Enabled,
		LastUpdated: r.LastUpdated,
	}
}

// WriteParquet encodes cams to w.
func WriteParquet(w io.Writer, cams []models.Camera) error {
	rows := make([]ExportRow, len(cams))
	for i, c := range cams {
		rows[i] = ToExportRow(c)
	}

	writer := parquet.NewGenericWriter[ExportRow](w)
	if _, err := writer.Write(rows); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write parquet rows: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finish parquet file: %w", err)
	}
	return nil
}

// ReadParquet decodes every row of a file written by WriteParquet.
func ReadParquet(r io.ReaderAt, size int64) ([]models.Camera, error) {
	pf, err := parquet.OpenFile(r, size)
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet: %w", err)
	}

	reader := parquet.NewGenericReader[ExportRow](pf)
	defer reader.Close()

	cams := make([]models.Camera, 0, pf.NumRows())
	batch := make([]ExportRow, 128)
	for {
		n, err := reader.Read(batch)
		for _, row := range batch[:n] {
			cams = append(cams, row.Camera())
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read parquet rows: %w", err)
		}
	}
	return cams, nil
}

// ExportSnapshot converts the JSON snapshot at input to a Parquet file at
// output and returns the number of rows written.
func ExportSnapshot(input, output string) (int, error) {
	cams, err := ReadSnapshot(input)
	if err != nil {
		return 0, err
	}

	if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
		return 0, fmt.Errorf("failed to create output directory: %w", err)
	}
	f, err := os.Create(output)
	if err != nil {
		return 0, fmt.Errorf("failed to create %s: %w", output, err)
	}

	if err := WriteParquet(f, cams); err != nil {
		_ = f.Close()
		return 0, err
	}
	if err := f.Close(); err != nil {
		return 0, fmt.Errorf("failed to close %s: %w", output, err)
	}

	logging.Info().Str("input", input).Str("output", output).Int("rows", len(cams)).Msg("Snapshot exported")
	return len(cams), nil
}

// ImportParquet reads a Parquet export back into cameras.
func ImportParquet(path string) ([]models.Camera, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	return ReadParquet(f, info.Size())
}
