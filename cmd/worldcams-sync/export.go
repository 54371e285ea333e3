// Worldcams - Live Webcam Map Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/worldcams

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	camsync "github.com/tomtom215/worldcams/internal/sync"
)

func newExportCmd() *cobra.Command {
	var input, output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Convert a JSON snapshot to Parquet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := camsync.ExportSnapshot(input, output)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d webcams to %s\n", rows, output)
			return nil
		},
	}

	cmd.Flags().StringVar(&input, "input", "data/windy-webcams.json", "JSON snapshot to read")
	cmd.Flags().StringVar(&output, "output", "data/windy-webcams.parquet", "Parquet file to write")

	return cmd
}
