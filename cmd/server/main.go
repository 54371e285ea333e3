// Worldcams - Live Webcam Map Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/worldcams

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/worldcams/internal/api"
	"github.com/tomtom215/worldcams/internal/catalog"
	"github.com/tomtom215/worldcams/internal/config"
	"github.com/tomtom215/worldcams/internal/logging"
	"github.com/tomtom215/worldcams/internal/proxycache"
	"github.com/tomtom215/worldcams/internal/supervisor"
	"github.com/tomtom215/worldcams/internal/supervisor/services"
	"github.com/tomtom215/worldcams/internal/windy"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.FromSettings(cfg.Logging, logging.ServiceServer, nil))

	logging.Info().
		Str("environment", cfg.Server.Environment).
		Str("catalog_mode", cfg.Catalog.Mode).
		Str("proxy_cache", cfg.Proxy.CacheBackend).
		Bool("windy_api_key", cfg.HasAPIKey()).
		Msg("Starting Worldcams")

	if !cfg.HasAPIKey() {
		logging.Warn().Msg("WINDY_API_KEY not configured: /api/windy will answer 500 and camera details will not be refreshed")
	}
	if cfg.IsProduction() && cfg.HasWildcardCORS() {
		logging.Warn().Msg("CORS_ORIGINS allows any origin in production")
	}

	client := windy.NewClient(cfg.Windy)

	loader, err := catalog.NewLoader(cfg.Catalog, client)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize camera catalog")
	}

	store, err := proxycache.New(cfg.Proxy)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open proxy cache")
	}
	defer func() {
		if err := store.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing proxy cache")
		}
	}()

	handler := api.NewHandler(loader, client, store)
	router := api.NewRouter(handler, api.ChiMiddlewareConfigFromSecurity(cfg.Security))

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), supervisor.TreeConfig{
		FailureThreshold: 5,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	if cfg.Catalog.WarmOnStart && loader.Mode() == catalog.ModeDynamic {
		tree.AddDataService(services.NewCatalogWarmer(loader))
	}
	if gc, ok := store.(*proxycache.Badger); ok {
		tree.AddDataService(services.NewCacheGC(gc, services.DefaultGCInterval))
	}
	tree.AddAPIService(services.NewHTTPServerService(server, server.Addr, cfg.Server.ShutdownTimeout))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	if err := tree.Run(ctx); err != nil {
		logging.Error().Err(err).Msg("Supervisor tree error")
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("Worldcams stopped")
}
