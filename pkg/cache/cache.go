// Package cache stores rendered artifacts keyed by the parameters that
// produced them.
//
// Rendering is deterministic: the same (k, n, selection, format, options)
// always yields the same bytes, so artifacts can be reused across CLI runs
// ([FileCache]) or server instances ([RedisCache]). [NullCache] disables
// caching.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with optional expiry.
type Cache interface {
	// Get returns the value and true on a hit, or nil and false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data. A ttl of 0 means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// ArtifactKeyOpts are the inputs that determine an artifact's bytes.
type ArtifactKeyOpts struct {
	K         int    `json:"k"`
	N         int    `json:"n"`
	Selection string `json:"selection"`
	Format    string `json:"format"`
	// Style identifies the render options, e.g. a hash of them.
	Style string `json:"style,omitempty"`
}

// ArtifactKey returns the cache key for an artifact.
func ArtifactKey(opts ArtifactKeyOpts) string {
	return hashKey("artifact", opts)
}
