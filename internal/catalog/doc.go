// Worldcams - Live Webcam Map Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/worldcams

// Package catalog merges the curated camera list with directory cameras and
// answers list, lookup, search and spatial queries over the result.
//
// The merged list is built once: at construction in static mode, on the
// first request in dynamic mode. It is never refreshed while the process
// runs; a new snapshot takes effect on restart.
package catalog
