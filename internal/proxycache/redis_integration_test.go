// Worldcams - Live Webcam Map Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/worldcams

//go:build integration

package proxycache

import (
	"context"
	"testing"
	"time"

	"github.com/tomtom215/worldcams/internal/testinfra"
)

func TestRedisStore_Integration(t *testing.T) {
	rc := testinfra.StartRedis(t, testinfra.WithRedisStartTimeout(90*time.Second))
	ctx := context.Background()

	store, err := NewRedis(rc.ProxyConfig("it:"))
	if err != nil {
		t.Fatalf("NewRedis: %v", err)
	}
	defer store.Close()

	exerciseStore(t, store)

	t.Run("expires", func(t *testing.T) {
		if err := store.Set(ctx, "short", []byte("v"), time.Second); err != nil {
			t.Fatal(err)
		}
		time.Sleep(1500 * time.Millisecond)
		if _, ok, _ := store.Get(ctx, "short"); ok {
			t.Error("entry should have expired")
		}
	})

	t.Run("prefix isolates", func(t *testing.T) {
		other, err := NewRedis(rc.ProxyConfig("other:"))
		if err != nil {
			t.Fatal(err)
		}
		defer other.Close()
		if _, ok, _ := other.Get(ctx, "k1"); ok {
			t.Error("different prefix should not see k1")
		}
	})

	t.Run("selected by New", func(t *testing.T) {
		s, err := New(rc.ProxyConfig("new:"))
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}
		defer s.Close()
		if s.Name() != BackendRedis {
			t.Errorf("Name() = %q, want %q", s.Name(), BackendRedis)
		}
	})
}
