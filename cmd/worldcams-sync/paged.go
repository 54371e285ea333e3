// Worldcams - Live Webcam Map Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/worldcams

package main

import (
	"github.com/spf13/cobra"

	camsync "github.com/tomtom215/worldcams/internal/sync"
)

func newPagedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "paged",
		Short: "Page through the webcam list",
		Long: `Pages through /webcams/api/v3/webcams (50 per request, 100ms apart)
until the reported total or SYNC_MAX_WEBCAMS is reached, then writes
SYNC_OUTPUT.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := loadSyncEnv(cmd)
			if err != nil {
				return err
			}

			syncer := camsync.NewPagedSyncer(env.client, camsync.PagedOptionsFromConfig(env.cfg.Sync))
			report, err := syncer.Run(env.ctx)
			if err != nil {
				return err
			}

			report.WriteSummary(cmd.OutOrStdout())
			return nil
		},
	}
}
