// Worldcams - Live Webcam Map Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/worldcams

package sync

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/tomtom215/worldcams/internal/logging"
	"github.com/tomtom215/worldcams/internal/models"
)

// ReadSnapshot reads a snapshot file written by WriteSnapshot. A missing file
// returns an error wrapping fs.ErrNotExist.
func ReadSnapshot(path string) ([]models.Camera, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot %s: %w", path, err)
	}

	var cams []models.Camera
	if err := json.Unmarshal(data, &cams); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot %s: %w", path, err)
	}
	return cams, nil
}

// Fingerprint is the change-detection key of a camera list: the length of its
// compact JSON encoding. Equal fingerprints mean the file is not rewritten.
// It is a heuristic; edits that keep the length identical go unnoticed.
func Fingerprint(cams []models.Camera) (string, error) {
	if cams == nil {
		cams = []models.Camera{}
	}
	data, err := json.Marshal(cams)
	if err != nil {
		return "", fmt.Errorf("failed to encode cameras: %w", err)
	}
	return strconv.Itoa(len(data)), nil
}

// MergeEnabled copies the enabled flag of each camera from previous by id.
// Cameras not present in previous are enabled.
func MergeEnabled(current, previous []models.Camera) []models.Camera {
	flags := make(map[string]bool, len(previous))
	for _, c := range previous {
		flags[c.ID] = c.Enabled
	}

	out := make([]models.Camera, len(current))
	for i, c := range current {
		enabled, ok := flags[c.ID]
		if !ok {
			enabled = true
		}
		c.Enabled = enabled
		out[i] = c
	}
	return out
}

// WriteSnapshot writes cams as an indented JSON array. The file is replaced
// atomically: a temp file in the same directory is synced and renamed over
// the target, so readers see either the old or the new snapshot.
func WriteSnapshot(path string, cams []models.Camera) error {
	if cams == nil {
		cams = []models.Camera{}
	}
	data, err := json.MarshalIndent(cams, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return writeFileAtomic(path, data)
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("failed to chmod temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	committed = true

	// best effort; not every platform can fsync a directory
	if d, err := os.Open(dir); err == nil {
		_ = d.Sync()
		_ = d.Close()
	}
	return nil
}

// Persist applies the output contract shared by both sync modes: drop
// cameras without finite coordinates, carry enabled flags over from the file
// already at path, and rewrite the file only when the fingerprint changed.
func Persist(path string, cams []models.Camera) (Report, error) {
	valid := make([]models.Camera, 0, len(cams))
	for _, c := range cams {
		if c.Coordinates.Valid() {
			valid = append(valid, c)
		}
	}

	previous, previousFingerprint := loadPrevious(path)

	final := MergeEnabled(valid, previous)
	currentFingerprint, err := Fingerprint(final)
	if err != nil {
		return Report{}, err
	}

	report := Report{
		Path:    path,
		Total:   len(final),
		Enabled: countEnabled(final),
		Added:   len(final) - len(previous),
	}

	if currentFingerprint == previousFingerprint {
		return report, nil
	}

	if err := WriteSnapshot(path, final); err != nil {
		return Report{}, err
	}
	report.Written = true
	return report, nil
}

// loadPrevious returns the cameras already at path and their fingerprint.
// A missing or unreadable file counts as no previous data.
func loadPrevious(path string) ([]models.Camera, string) {
	previous, err := ReadSnapshot(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logging.Info().Str("path", path).Msg("No previous sync data found")
		} else {
			logging.Warn().Err(err).Str("path", path).Msg("Ignoring unreadable previous snapshot")
		}
		return nil, ""
	}

	fp, err := Fingerprint(previous)
	if err != nil {
		return previous, ""
	}
	return previous, fp
}

func countEnabled(cams []models.Camera) int {
	n := 0
	for _, c := range cams {
		if c.Enabled {
			n++
		}
	}
	return n
}
