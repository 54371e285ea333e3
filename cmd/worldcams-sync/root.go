// Worldcams - Live Webcam Map Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/worldcams

package main

import (
	"context"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/tomtom215/worldcams/internal/config"
	"github.com/tomtom215/worldcams/internal/logging"
	"github.com/tomtom215/worldcams/internal/windy"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "worldcams-sync",
		Short: "Sync Windy webcams into snapshot files",
		Long: `worldcams-sync crawls the Windy webcams API and writes the snapshot
files served by the Worldcams static catalog.

Operator edits to the "enabled" flag in an existing snapshot survive re-syncs.
An unchanged result leaves the file untouched.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			_ = godotenv.Load()
		},
	}

	cmd.AddCommand(newPagedCmd())
	cmd.AddCommand(newTilesCmd())
	cmd.AddCommand(newExportCmd())

	return cmd
}

// syncEnv is what every crawling command needs.
type syncEnv struct {
	cfg    *config.Config
	client *windy.Client
	ctx    context.Context
}

// loadSyncEnv loads configuration, starts logging and builds the Windy
// client. A missing API key is an error.
func loadSyncEnv(cmd *cobra.Command) (*syncEnv, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logCfg := logging.FromSettings(cfg.Logging, logging.ServiceSync, cmd.ErrOrStderr())
	logCfg.Version = cmd.Root().Version
	logging.Init(logCfg)

	if err := cfg.RequireAPIKey(); err != nil {
		return nil, err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logging.ContextWithRunID(ctx, logging.GenerateRunID())

	return &syncEnv{
		cfg:    cfg,
		client: windy.NewClient(cfg.Windy),
		ctx:    ctx,
	}, nil
}
