// Package cache provides byte caching for downloaded remote assets.
//
// The composition engine re-reads the same asset folder on every run; when
// assets live behind HTTP, caching the raw bytes on disk makes repeated
// runs cheap without changing render semantics (rendering itself is always
// performed in full).
//
// Two implementations are provided:
//   - FileCache: persistent, directory-backed (CLI usage)
//   - NullCache: no-op (caching disabled, tests)
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte values under string keys with per-entry TTL.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key was
	// present and fresh.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of 0 means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}
