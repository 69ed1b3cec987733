// Package cache provides pluggable cache backends for HTTP response and
// artifact caching.
//
// Backends implement the [Cache] interface: [FileCache] for CLI usage,
// [MemoryCache] for in-process server caching, [RedisCache] for shared
// server deployments, and [NullCache] to disable caching entirely.
//
// Cache keys are built through a [Keyer], which namespaces keys by concern
// (HTTP responses, dependency graphs, rendered artifacts). Use
// [NewScopedKeyer] to isolate key spaces per remote.
package cache

import (
	"context"
	"time"
)

// Cache is the interface implemented by all cache backends.
//
// Get returns (data, true, nil) on a hit, (nil, false, nil) on a miss.
// Expired entries are treated as misses. A ttl of 0 in Set means the entry
// never expires; a negative ttl stores an already-expired entry.
//
// Implementations must be safe for concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
