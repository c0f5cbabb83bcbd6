package cache

import (
	"context"
	"time"
)

// Cache is the small key/value contract used for counters and short-lived flags.
// Implementations: Redis (infrastructure/cache) and an in-process MemoryCache.
type Cache interface {
	// Set stores value under key. A zero ttl means no expiry.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	Delete(ctx context.Context, keys ...string) error

	Ping(ctx context.Context) error

	// Increment adds one to the counter at key, creating it at 1.
	Increment(ctx context.Context, key string) (int64, error)
	Exists(ctx context.Context, key string) (bool, error)
	Expire(ctx context.Context, key string, ttl time.Duration) error
	// TTL returns the remaining lifetime, or a negative duration when key has none.
	TTL(ctx context.Context, key string) (time.Duration, error)
}
