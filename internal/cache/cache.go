// Package cache provides the byte cache used for extracted article text and
// generated captions. A Redis implementation is used when REDIS_ADDR is set;
// otherwise an in-process TTL map serves a single instance.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache stores opaque values under string keys with a TTL.
type Cache interface {
	// Get returns the value and whether it was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Sweeper is implemented by caches that must evict expired entries
// themselves. Redis expires keys on its own.
type Sweeper interface {
	Run(ctx context.Context, interval time.Duration)
}

// Hash returns the hex SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Key builds a namespaced key from a hashed payload, e.g. "extract:<sha>".
func Key(namespace string, payload []byte) string {
	return namespace + ":" + Hash(payload)
}
