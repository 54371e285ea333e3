// Worldcams - Live Webcam Map Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/worldcams

package proxycache

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tomtom215/worldcams/internal/config"
)

// Backend names accepted by New.
const (
	BackendNone   = "none"
	BackendMemory = "memory"
	BackendBadger = "badger"
	BackendRedis  = "redis"
)

// Store is a TTL key/value store for upstream response bodies.
type Store interface {
	// Get returns the stored body and true, or false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores val for ttl. A non-positive ttl is a no-op.
	Set(ctx context.Context, key string, val []byte, ttl time.Duration) error

	// Name is the backend name used in logs and metrics.
	Name() string

	Close() error
}

// New builds the store selected by cfg.CacheBackend.
func New(cfg config.ProxyConfig) (Store, error) {
	switch strings.ToLower(cfg.CacheBackend) {
	case "", BackendNone:
		return Nop{}, nil
	case BackendMemory:
		return NewMemory(cfg.MemoryCapacity), nil
	case BackendBadger:
		return NewBadger(cfg.BadgerPath, cfg.KeyPrefix)
	case BackendRedis:
		return NewRedis(cfg)
	default:
		return nil, fmt.Errorf("unknown proxy cache backend %q", cfg.CacheBackend)
	}
}

// Nop never stores anything.
type Nop struct{}

func (Nop) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (Nop) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (Nop) Name() string                                             { return BackendNone }
func (Nop) Close() error                                             { return nil }
