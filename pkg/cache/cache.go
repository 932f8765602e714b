// Package cache stores generated sequences between runs.
//
// Every backend implements [Cache]: a byte store with per-entry TTL. Keys are
// built by a [Keyer] so that a sequence's key covers every generation parameter
// except its length; the incremental resolver then decides whether a cached
// entry can be extended or truncated.
//
// Backends:
//
//   - [NullCache]: stores nothing (--no-cache).
//   - [FileCache]: one JSON file per entry under the user cache directory (CLI default).
//   - [RedisCache]: shared cache for the HTTP server.
//   - [MongoCache]: shared cache with a TTL index.
package cache

import (
	"context"
	"time"
)

// Default TTLs.
const (
	SequenceTTL = 7 * 24 * time.Hour
	GraphTTL    = 30 * 24 * time.Hour
)

// Cache is a key/value byte store.
type Cache interface {
	// Get returns the stored value and true, or nil and false on a miss.
	// Expired entries are misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A zero ttl means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	Close() error
}

// Clearer is implemented by backends that can drop every entry they own.
type Clearer interface {
	Clear(ctx context.Context) error
}
