// Package cache stores rendered diagram artifacts.
//
// A [Cache] is a byte store with per-entry TTL. Three backends are provided:
// [FileCache] for the CLI, [RedisCache] for the HTTP service and [NullCache]
// when caching is disabled. Keys are produced by a [Keyer] so that every
// caller agrees on the key layout.
package cache

import (
	"context"
	"time"
)

// Cache is a key/value byte store with expiration.
//
// Get returns (nil, false, nil) on a miss. Implementations must be safe for
// concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Clearer is implemented by caches that can drop every entry they own.
type Clearer interface {
	Clear(ctx context.Context) (int, error)
}

// DefaultTTL is used when no TTL is configured.
const DefaultTTL = 7 * 24 * time.Hour
