// Worldcams - Live Webcam Map Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/worldcams

package sync

import (
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
)

// Mode names used in logs and metrics.
const (
	ModePaged = "paged"
	ModeTiles = "tiles"
)

// Report summarizes one sync run.
type Report struct {
	Mode     string
	Path     string
	Total    int
	Enabled  int
	Added    int // current count minus previous count; negative when cameras disappeared
	Written  bool
	Fetched  int // raw records received before filtering and dedupe
	Requests int
	Partial  bool // tiles budget ran out before the queue drained
	Duration time.Duration
}

// MarshalZerologObject lets a report be attached with Event.Object.
func (r Report) MarshalZerologObject(e *zerolog.Event) {
	e.Str("mode", r.Mode).
		Str("path", r.Path).
		Int("total", r.Total).
		Int("enabled", r.Enabled).
		Int("added", r.Added).
		Bool("written", r.Written).
		Int("fetched", r.Fetched).
		Int("requests", r.Requests).
		Bool("partial", r.Partial).
		Dur("duration", r.Duration)
}

// WriteSummary prints the human-readable run summary.
func (r Report) WriteSummary(w io.Writer) {
	if !r.Written {
		fmt.Fprintln(w, "No changes detected. Skipping sync.")
		fmt.Fprintf(w, "Sync Summary:\n  Total: %d webcams\n  Enabled: %d\n", r.Total, r.Enabled)
		return
	}

	fmt.Fprintln(w, "Sync completed successfully!")
	fmt.Fprintf(w, "Sync Summary:\n  Total webcams: %d\n", r.Total)
	fmt.Fprintf(w, "  Added: %d\n", r.Added)
	fmt.Fprintf(w, "  Enabled: %d\n", r.Enabled)
	if r.Requests > 0 {
		fmt.Fprintf(w, "  Requests: %d\n", r.Requests)
	}
	if r.Partial {
		fmt.Fprintln(w, "  Partial: request budget exhausted")
	}
	fmt.Fprintf(w, "  File: %s\n", r.Path)
}
