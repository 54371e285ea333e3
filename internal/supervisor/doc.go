// Worldcams - Live Webcam Map Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/worldcams

/*
Package supervisor runs the server's long-lived services under suture v4.

The tree has two layers:

	RootSupervisor ("worldcams")
	├── DataSupervisor ("data-layer")
	│   ├── CatalogWarmer   (dynamic mode with CATALOG_WARM_ON_START)
	│   └── CacheGC         (PROXY_CACHE_BACKEND=badger)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Crashed services are restarted with suture's backoff. Supervisor events are
logged through the zerolog-backed slog handler from internal/logging.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddDataService(services.NewCatalogWarmer(loader))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	return tree.Serve(ctx)

See internal/supervisor/services for the service wrappers.
*/
package supervisor
