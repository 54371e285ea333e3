// Worldcams - Live Webcam Map Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/worldcams

// Package logging provides zerolog-based structured logging for the server
// and the sync CLI.
//
// # Quick Start
//
//	logging.Init(logging.FromSettings(cfg.Logging, logging.ServiceServer, nil))
//	logging.Info().Str("addr", addr).Msg("Server starting")
//	logging.Ctx(ctx).Warn().Err(err).Msg("Upstream call failed")
//
// Always terminate event chains with .Msg() or .Send(); an unterminated
// chain is never written.
//
// Every entry carries an app field (worldcams or worldcams-sync). The
// package also carries request and sync-run ids through
// context.Context, and an slog.Handler adapter used by the supervisor tree.
package logging
