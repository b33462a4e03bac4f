// Package cache stores computed layouts and rendered artifacts so that
// repeated requests with identical inputs skip the lattice walk.
//
// Backends implement [Cache]: [FileCache] for the CLI, [MemoryCache] for a
// single server process, [RedisCache] and [MongoCache] for shared
// deployments, and [NullCache] to disable caching. Keys come from a
// [Keyer], which hashes every input that affects the result.
package cache

import (
	"context"
	"time"
)

// TTLs for cached values. Layouts are deterministic for their key, so the
// TTL only bounds storage; wall entries hold the last good layout and never
// expire.
const (
	TTLLayout   = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
	TTLWall     = 0
)

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get returns the stored value and whether it was found. A missing or
	// expired entry is a miss, not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// NullCache misses on every Get and drops every Set. The CLI uses it for
// --no-cache and Open returns it for the "none" backend.
type NullCache struct{}

// NewNullCache returns a cache that stores nothing.
func NewNullCache() *NullCache { return &NullCache{} }

func (*NullCache) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (*NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (*NullCache) Delete(context.Context, string) error                     { return nil }
func (*NullCache) Close() error                                             { return nil }

var _ Cache = (*NullCache)(nil)
