// Worldcams - Live Webcam Map Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/worldcams

//go:build integration

package testinfra

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/tomtom215/worldcams/internal/config"
)

const (
	// DefaultRedisImage is the image used by NewRedisContainer.
	DefaultRedisImage = "redis:7-alpine"

	redisPort = "6379/tcp"
)

// RedisContainer is a running Redis instance.
type RedisContainer struct {
	testcontainers.Container

	// Addr is host:port reachable from the test process.
	Addr string
}

type redisConfig struct {
	startTimeout time.Duration
}

// RedisOption configures NewRedisContainer.
type RedisOption func(*redisConfig)

// WithRedisStartTimeout overrides how long to wait for the server.
func WithRedisStartTimeout(d time.Duration) RedisOption {
	return func(c *redisConfig) {
		c.startTimeout = d
	}
}

// NewRedisContainer starts a Redis server with persistence disabled.
func NewRedisContainer(ctx context.Context, opts ...RedisOption) (*RedisContainer, error) {
	cfg := &redisConfig{
		startTimeout: 60 * time.Second,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	req := testcontainers.ContainerRequest{
		Image:        DefaultRedisImage,
		ExposedPorts: []string{redisPort},
		Cmd:          []string{"redis-server", "--save", "", "--appendonly", "no"},
		WaitingFor: wait.ForAll(
			wait.ForListeningPort(redisPort),
			wait.ForLog("Ready to accept connections"),
		).WithStartupTimeout(cfg.startTimeout),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, fmt.Errorf("create redis container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		_ = testcontainers.TerminateContainer(container)
		return nil, fmt.Errorf("get container host: %w", err)
	}

	port, err := container.MappedPort(ctx, redisPort)
	if err != nil {
		_ = testcontainers.TerminateContainer(container)
		return nil, fmt.Errorf("get mapped port: %w", err)
	}

	return &RedisContainer{
		Container: container,
		Addr:      fmt.Sprintf("%s:%s", host, port.Port()),
	}, nil
}

// StartRedis starts a Redis container for t. The test is skipped without
// Docker, and the container is terminated when t finishes.
func StartRedis(t *testing.T, opts ...RedisOption) *RedisContainer {
	t.Helper()
	RequireDocker(t)

	rc, err := NewRedisContainer(context.Background(), opts...)
	if err != nil {
		t.Fatalf("start redis: %v", err)
	}
	terminateOnCleanup(t, rc.Container)
	return rc
}

// ProxyConfig returns redis proxy cache settings for the container with
// keys under prefix.
func (r *RedisContainer) ProxyConfig(prefix string) config.ProxyConfig {
	return config.ProxyConfig{
		CacheBackend: "redis",
		RedisAddr:    r.Addr,
		KeyPrefix:    prefix,
	}
}
