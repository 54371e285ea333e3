// Worldcams - Live Webcam Map Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/worldcams

// Command worldcams-sync builds the Windy webcam snapshot files read by the
// server's static catalog.
//
//	worldcams-sync paged                  # data/windy-webcams.json
//	worldcams-sync tiles --maxZoom 8      # data/windy-webcams-tiles.json
//	worldcams-sync export --input data/windy-webcams.json --output webcams.parquet
//
// WINDY_API_KEY is required for paged and tiles. A .env file in the working
// directory is loaded when present.
package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"
)

var version = "dev"

func main() {
	root := newRootCmd()

	if err := fang.Execute(
		context.Background(),
		root,
		fang.WithVersion(version),
		fang.WithNotifySignal(os.Interrupt, os.Kill),
	); err != nil {
		os.Exit(1)
	}
}
