// Copyright 2026 The chartgeom Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cache provides a bounded, expiring, concurrency-safe cache
// of computed results. A Cache is an ordinary value handed to the
// code that uses it; there is no package-level cache.
package cache

import (
	"fmt"
	"time"

	"github.com/dgraph-io/ristretto/v2"
)

// A Cache maps string keys to values of type V. Entries expire TTL
// after they are set. Keys are hashed, so large keys such as whole
// input files cost no extra memory.
type Cache[V any] struct {
	c   *ristretto.Cache[string, V]
	ttl time.Duration
}

// New returns a cache holding about capacity entries, each living
// for ttl. A ttl of zero means entries do not expire.
func New[V any](capacity int64, ttl time.Duration) (*Cache[V], error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("cache capacity must be positive, got %d", capacity)
	}
	if ttl < 0 {
		return nil, fmt.Errorf("negative cache TTL %v", ttl)
	}
	c, err := ristretto.NewCache(&ristretto.Config[string, V]{
		NumCounters:        10 * capacity,
		MaxCost:            capacity,
		BufferItems:        64,
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, fmt.Errorf("creating cache: %w", err)
	}
	return &Cache[V]{c, ttl}, nil
}

// Get returns the value stored under key, if it is present and has
// not expired.
func (c *Cache[V]) Get(key string) (V, bool) {
	return c.c.Get(key)
}

// Set stores v under key. The cache may decline to admit it when
// full. Set returns once v is visible to Get.
func (c *Cache[V]) Set(key string, v V) {
	if c.c.SetWithTTL(key, v, 1, c.ttl) {
		c.c.Wait()
	}
}

// Close releases the cache's background goroutines. The cache must
// not be used after Close.
func (c *Cache[V]) Close() {
	c.c.Close()
}
