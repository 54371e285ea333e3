// Worldcams - Live Webcam Map Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/worldcams

/*
Package models defines the camera record shared by the catalog, the Windy
client, the sync pipelines and the HTTP API.

  - Camera: one map marker. Curated cameras carry a YouTubeID; directory
    cameras carry a WindyID and an id prefixed with "windy-".
  - Category: closed display taxonomy (City, Nature, Traffic, Space, Beach,
    Animal, Live).
  - Coordinates and BoundingBox: WGS84 positions and map viewports. A box
    with West > East crosses the antimeridian.

The JSON field names are the snapshot file format and the API wire format.
*/
package models
