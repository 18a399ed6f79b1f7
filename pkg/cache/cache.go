// Package cache stores optimizer results and rendered artifacts by key.
//
// Backends implement [Cache]: [FileCache] for the CLI, [RedisCache] for
// shared deployments, and [NullCache] when caching is disabled. Keys are
// derived with a [Keyer] from everything that determines the cached value,
// so a hit is always safe to reuse.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get returns the value stored under key. A miss is reported with
	// hit == false and a nil error.
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the backend's resources.
	Close() error
}

// Default time-to-live values.
const (
	RunTTL      = 7 * 24 * time.Hour
	ArtifactTTL = 30 * 24 * time.Hour
)
