// Worldcams - Live Webcam Map Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/worldcams

package proxycache

import (
	"context"
	"time"

	"github.com/tomtom215/worldcams/internal/cache"
)

// Memory is a process-local store backed by an LRU.
type Memory struct {
	lru *cache.LRU[[]byte]
}

// NewMemory creates a store holding at most capacity responses.
func NewMemory(capacity int) *Memory {
	// The LRU default TTL is unused: every Set passes the route TTL.
	return &Memory{lru: cache.NewLRU[[]byte](capacity, time.Hour)}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := m.lru.Get(key)
	return v, ok, nil
}

func (m *Memory) Set(_ context.Context, key string, val []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	buf := make([]byte, len(val))
	copy(buf, val)
	m.lru.SetWithTTL(key, buf, ttl)
	return nil
}

func (m *Memory) Name() string { return BackendMemory }

func (m *Memory) Close() error {
	m.lru.Clear()
	return nil
}

// Stats exposes LRU counters.
func (m *Memory) Stats() cache.Stats {
	return m.lru.Stats()
}
