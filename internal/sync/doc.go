// Worldcams - Live Webcam Map Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/worldcams

/*
Package sync builds the offline webcam snapshots that the catalog serves.

Two crawls are available:

  - Paged: walks the webcam collection with offset/limit pages until the
    collection is exhausted or a maximum record count is reached.
  - Tiles: covers a region with map tiles at a minimum zoom and splits any
    tile whose response still contains clusters, up to a maximum zoom and a
    request budget.

Both end in Persist, which drops cameras without finite coordinates, carries
the operator-maintained enabled flags over from the file already on disk,
and rewrites the file only when the fingerprint changed. Writes are atomic.

# Failure Handling

A failed page is skipped unless nothing has been collected yet. A failed
tile is always skipped. Running out of tile budget is not an error; the
report is marked partial. Neither crawl retries.

# Usage

	client := windy.NewClient(cfg.Windy)
	syncer := sync.NewPagedSyncer(client, sync.PagedOptionsFromConfig(cfg.Sync))
	report, err := syncer.Run(ctx)
	if err != nil {
	    return err
	}
	report.WriteSummary(os.Stdout)

ExportSnapshot converts a JSON snapshot to Parquet for offline analysis.
*/
package sync
