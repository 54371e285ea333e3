// Worldcams - Live Webcam Map Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/worldcams

/*
Package windy is the client for the Windy webcams directory API (v3).

The client has two layers:

  - Raw calls that return errors: Get (used verbatim by the /api/windy
    proxy), FetchPage (paged sync) and FetchClusters (tile sync).
  - Catalog calls that swallow errors and degrade to empty results:
    FetchByBounds, FetchByID, FetchAllSnapshot and FetchCategories. Catalog
    assembly must not fail because the directory is down.

Every call sends the key in the x-windy-api-key header and passes through a
sony/gobreaker circuit breaker. Server errors, 429 and transport failures
count against the breaker; other 4xx responses do not. An optional
golang.org/x/time/rate limiter spaces outbound calls.

# Normalization

Raw records never leave this package. ToCamera converts them using ordered
extractor chains, where the first non-empty value wins:

	NameChain:      name, title, then "Windy Webcam"
	PlayerURLChain: url.player.live, url.player.day, urls.player.live,
	                urls.player.day, player.live, player.day, player.month,
	                player.year, player.lifetime
	ThumbnailChain: image.current.thumbnail, images.current.thumbnail

The location label is "city, country" with empty parts dropped, or
"Unknown". The category comes from the first upstream tag, matched against
a fixed keyword table (see InferCategory). Missing coordinates become NaN
and such records are dropped from every list result.

Response envelopes vary between endpoints and API versions: lists appear
under result.webcams or webcams, single webcams under result.webcam,
webcam, or flat at the top level, and map/clusters returns a bare array.
Webcam ids arrive as numbers or strings.
*/
package windy
