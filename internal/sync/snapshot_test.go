// Worldcams - Live Webcam Map Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/worldcams

package sync

import (
	"errors"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tomtom215/worldcams/internal/models"
)

const testTimestamp = "2026-03-14T09:26:53.000Z"

func testCamera(id string, lat, lng float64) models.Camera {
	return models.Camera{
		ID:          id,
		Name:        "Cam " + id,
		Location:    "Zermatt, Switzerland",
		Description: "Live webcam from Zermatt, Switzerland",
		Source:      models.SourceWindy,
		WindyID:     strings.TrimPrefix(id, models.ExternalIDPrefix),
		Category:    models.CategoryLive,
		Coordinates: models.Coordinates{Lat: lat, Lng: lng},
		Enabled:     true,
		LastUpdated: testTimestamp,
	}
}

func writeTestSnapshot(t *testing.T, path string, cams []models.Camera) {
	t.Helper()
	if err := WriteSnapshot(path, cams); err != nil {
		t.Fatalf("WriteSnapshot() error = %v", err)
	}
}

func TestMergeEnabled(t *testing.T) {
	previous := []models.Camera{
		testCamera("windy-1", 1, 1),
		testCamera("windy-2", 2, 2),
	}
	previous[1].Enabled = false

	current := []models.Camera{
		testCamera("windy-2", 2, 2),
		testCamera("windy-3", 3, 3),
	}

	got := MergeEnabled(current, previous)
	if got[0].Enabled {
		t.Error("windy-2 should keep enabled=false from the previous snapshot")
	}
	if !got[1].Enabled {
		t.Error("windy-3 is new and should default to enabled")
	}
	if !current[0].Enabled {
		t.Error("MergeEnabled must not modify its input")
	}
}

func TestFingerprint(t *testing.T) {
	a := []models.Camera{testCamera("windy-1", 1, 1)}
	b := []models.Camera{testCamera("windy-2", 2, 2)}

	fa, err := Fingerprint(a)
	if err != nil {
		t.Fatalf("Fingerprint() error = %v", err)
	}
	fb, _ := Fingerprint(b)
	if fa != fb {
		t.Errorf("Same-shaped records should share a fingerprint: %s vs %s", fa, fb)
	}

	empty, _ := Fingerprint(nil)
	if empty != "2" {
		t.Errorf("Empty list fingerprint = %s, want 2", empty)
	}
}

func TestWriteSnapshot_IndentedAndAtomic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "windy-webcams.json")

	writeTestSnapshot(t, path, []models.Camera{testCamera("windy-1", 46.02, 7.75)})

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !strings.HasPrefix(string(data), "[\n  {\n    \"id\": \"windy-1\"") {
		t.Errorf("Expected 2-space indented array, got:\n%s", data)
	}

	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Errorf("Temp files left behind: %v", entries)
	}

	got, err := ReadSnapshot(path)
	if err != nil {
		t.Fatalf("ReadSnapshot() error = %v", err)
	}
	if len(got) != 1 || got[0].Coordinates.Lat != 46.02 {
		t.Errorf("Round trip mismatch: %+v", got)
	}
}

func TestReadSnapshot_Missing(t *testing.T) {
	_, err := ReadSnapshot(filepath.Join(t.TempDir(), "absent.json"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Expected fs.ErrNotExist, got %v", err)
	}
}

func TestPersist(t *testing.T) {
	t.Run("first run writes and drops invalid coordinates", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.json")
		cams := []models.Camera{
			testCamera("windy-1", 1, 1),
			testCamera("windy-2", math.NaN(), 2),
		}

		report, err := Persist(path, cams)
		if err != nil {
			t.Fatalf("Persist() error = %v", err)
		}
		if !report.Written || report.Total != 1 || report.Added != 1 || report.Enabled != 1 {
			t.Errorf("Unexpected report: %+v", report)
		}
	})

	t.Run("unchanged fingerprint skips the write", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.json")
		writeTestSnapshot(t, path, []models.Camera{testCamera("windy-1", 1, 1)})
		before, _ := os.Stat(path)

		// same shape, different id digit keeps the encoded length
		report, err := Persist(path, []models.Camera{testCamera("windy-7", 7, 7)})
		if err != nil {
			t.Fatalf("Persist() error = %v", err)
		}
		if report.Written {
			t.Error("Expected no write when the fingerprint matches")
		}
		after, _ := os.Stat(path)
		if !after.ModTime().Equal(before.ModTime()) {
			t.Error("File should not have been touched")
		}
		if report.Total != 1 || report.Enabled != 1 {
			t.Errorf("Unexpected report: %+v", report)
		}
	})

	t.Run("preserves disabled flags", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.json")
		disabled := testCamera("windy-1", 1, 1)
		disabled.Enabled = false
		writeTestSnapshot(t, path, []models.Camera{disabled})

		report, err := Persist(path, []models.Camera{
			testCamera("windy-1", 1, 1),
			testCamera("windy-22", 2, 2),
		})
		if err != nil {
			t.Fatalf("Persist() error = %v", err)
		}
		if !report.Written || report.Added != 1 || report.Enabled != 1 {
			t.Errorf("Unexpected report: %+v", report)
		}

		got, _ := ReadSnapshot(path)
		if got[0].Enabled {
			t.Error("windy-1 should stay disabled")
		}
	})

	t.Run("corrupt previous file counts as empty", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.json")
		if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
			t.Fatal(err)
		}
		report, err := Persist(path, []models.Camera{testCamera("windy-1", 1, 1)})
		if err != nil {
			t.Fatalf("Persist() error = %v", err)
		}
		if !report.Written || report.Added != 1 {
			t.Errorf("Unexpected report: %+v", report)
		}
	})
}
