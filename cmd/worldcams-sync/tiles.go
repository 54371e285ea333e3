// Worldcams - Live Webcam Map Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/worldcams

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	camsync "github.com/tomtom215/worldcams/internal/sync"
)

// tilesFlags holds the tiles command line. Unset flags fall back to the
// SYNC_* configuration.
type tilesFlags struct {
	maxZoom     int
	minZoom     int
	maxRequests int
	output      string
	northLat    float64
	southLat    float64
	westLon     float64
	eastLon     float64
}

func newTilesCmd() *cobra.Command {
	var f tilesFlags

	cmd := &cobra.Command{
		Use:   "tiles",
		Short: "Crawl the map by recursively splitting clustered tiles",
		Long: `Queries /webcams/api/v3/map/clusters tile by tile, starting at
--minZoom and splitting any tile that still returns clusters until --maxZoom.
Stops with partial results after --maxRequests calls.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := loadSyncEnv(cmd)
			if err != nil {
				return err
			}

			opts := f.apply(cmd.Flags(), camsync.TilesOptionsFromConfig(env.cfg.Sync))
			if err := opts.Validate(); err != nil {
				return fmt.Errorf("invalid tiles options: %w", err)
			}
			report, err := camsync.NewTilesSyncer(env.client, opts).Run(env.ctx)
			if err != nil {
				return err
			}

			report.WriteSummary(cmd.OutOrStdout())
			return nil
		},
	}

	bindTilesFlags(cmd.Flags(), &f)
	return cmd
}

func bindTilesFlags(flags *pflag.FlagSet, f *tilesFlags) {
	flags.IntVar(&f.maxZoom, "maxZoom", 7, "deepest zoom level to split to")
	flags.IntVar(&f.minZoom, "minZoom", 4, "zoom level of the initial grid")
	flags.IntVar(&f.maxRequests, "maxRequests", 3000, "request budget for the whole crawl")
	flags.StringVar(&f.output, "output", "data/windy-webcams-tiles.json", "snapshot file to write")
	flags.Float64Var(&f.northLat, "northLat", camsync.DefaultNorthLat, "northern edge of the crawl region")
	flags.Float64Var(&f.southLat, "southLat", camsync.DefaultSouthLat, "southern edge of the crawl region")
	flags.Float64Var(&f.westLon, "westLon", camsync.DefaultWestLon, "western edge of the crawl region")
	flags.Float64Var(&f.eastLon, "eastLon", camsync.DefaultEastLon, "eastern edge of the crawl region")
}

// apply overrides opts with every flag set on the command line. The region
// always comes from the flags.
func (f tilesFlags) apply(flags *pflag.FlagSet, opts camsync.TilesOptions) camsync.TilesOptions {
	changed := flags.Changed
	if changed("maxZoom") {
		opts.MaxZoom = f.maxZoom
	}
	if changed("minZoom") {
		opts.MinZoom = f.minZoom
	}
	if changed("maxRequests") {
		opts.MaxRequests = f.maxRequests
	}
	if changed("output") {
		opts.Output = f.output
	}
	opts.Region = camsync.Region{
		North: f.northLat,
		South: f.southLat,
		West:  f.westLon,
		East:  f.eastLon,
	}
	return opts
}
