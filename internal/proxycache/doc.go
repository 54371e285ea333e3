// Worldcams - Live Webcam Map Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/worldcams

// Package proxycache holds the response store shared by the /api/windy proxy.
//
// The store maps a canonical upstream request key to the raw upstream body.
// Entries carry the TTL of the route that produced them, so a cached
// "all webcams" response lives four hours while a viewport response lives
// ten minutes. Backends:
//
//   - none: every lookup misses
//   - memory: process-local LRU (internal/cache)
//   - badger: embedded on-disk store, survives restarts
//   - redis: shared between replicas
//
// Store errors are never fatal to a request. The proxy logs them, counts
// them and falls through to the upstream API.
package proxycache
