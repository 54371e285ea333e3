// Worldcams - Live Webcam Map Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/worldcams

// Package testinfra provides container helpers for integration tests.
//
// Everything here is behind the "integration" build tag and uses
// testcontainers-go, so plain `go test ./...` never needs Docker.
//
// # Redis Container
//
//	func TestRedisStore(t *testing.T) {
//	    rc := testinfra.StartRedis(t) // skips without Docker
//	    store, err := proxycache.NewRedis(rc.ProxyConfig("it:"))
//	    ...
//	}
//
// Run with:
//
//	go test -tags integration ./...
package testinfra
