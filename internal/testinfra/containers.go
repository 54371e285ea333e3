// Worldcams - Live Webcam Map Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/worldcams

//go:build integration

package testinfra

import (
	"context"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
)

// RequireDocker skips t when testcontainers cannot reach a Docker daemon.
func RequireDocker(t *testing.T) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	provider, err := testcontainers.NewDockerProvider()
	if err != nil {
		t.Skipf("Skipping test: Docker not available: %v", err)
	}
	defer provider.Close()

	if err := provider.Health(ctx); err != nil {
		t.Skipf("Skipping test: Docker not healthy: %v", err)
	}
}

// terminateOnCleanup stops c when t and its subtests finish.
func terminateOnCleanup(t *testing.T, c testcontainers.Container) {
	t.Helper()
	t.Cleanup(func() {
		if err := testcontainers.TerminateContainer(c); err != nil {
			t.Logf("Warning: failed to terminate container: %v", err)
		}
	})
}
