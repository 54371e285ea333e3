// Worldcams - Live Webcam Map Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/worldcams

package proxycache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// Badger stores responses in an embedded BadgerDB with native key TTL.
type Badger struct {
	db     *badger.DB
	prefix string
}

// NewBadger opens (or creates) the database at path.
func NewBadger(path, prefix string) (*Badger, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil
	return openBadger(opts, prefix)
}

func openBadger(opts badger.Options, prefix string) (*Badger, error) {
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db for proxy cache: %w", err)
	}
	return &Badger{db: db, prefix: prefix}, nil
}

func (b *Badger) key(k string) []byte {
	return []byte(b.prefix + k)
}

func (b *Badger) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	var val []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(b.key(key))
		if err != nil {
			return err
		}
		val, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("badger get: %w", err)
	}
	return val, true, nil
}

func (b *Badger) Set(ctx context.Context, key string, val []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	err := b.db.Update(func(txn *badger.Txn) error {
		return txn.SetEntry(badger.NewEntry(b.key(key), val).WithTTL(ttl))
	})
	if err != nil {
		return fmt.Errorf("badger set: %w", err)
	}
	return nil
}

// RunValueLogGC rewrites value log files until badger reports nothing left
// to reclaim. In-memory databases have no value log.
func (b *Badger) RunValueLogGC(discardRatio float64) error {
	for {
		err := b.db.RunValueLogGC(discardRatio)
		switch {
		case err == nil:
			continue
		case errors.Is(err, badger.ErrNoRewrite), errors.Is(err, badger.ErrGCInMemoryMode):
			return nil
		default:
			return fmt.Errorf("badger value log gc: %w", err)
		}
	}
}

func (b *Badger) Name() string { return BackendBadger }

func (b *Badger) Close() error {
	return b.db.Close()
}
