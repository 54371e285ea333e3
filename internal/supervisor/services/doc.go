// Worldcams - Live Webcam Map Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/worldcams

/*
Package services adapts server components to suture's Serve(ctx) error
lifecycle.

  - HTTPServerService: ListenAndServe with graceful Shutdown on cancel.
  - CatalogWarmer: one-shot dynamic catalog load, retried by the supervisor
    until it succeeds, then suture.ErrDoNotRestart.
  - CacheGC: periodic BadgerDB value log GC for the proxy cache.

Every service implements fmt.Stringer so supervisor log lines name it.
*/
package services
