// Package cache defines the cache contract used by handlers. The Redis
// implementation lives in internal/infrastructure/cache; Noop stands in when
// no cache backend is configured.
package cache

import (
	"context"
	"time"
)

// Cache is a small read-through cache contract.
type Cache interface {
	// Get unmarshals the cached value into dest. found reports a cache hit;
	// on a miss dest is left untouched.
	Get(ctx context.Context, key string, dest interface{}) (found bool, err error)

	// Set stores value under key with the given TTL.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete removes keys. Missing keys are not an error.
	Delete(ctx context.Context, keys ...string) error

	// Ping checks backend connectivity.
	Ping(ctx context.Context) error
}

type noop struct{}

// NewNoop returns a cache that never hits. Used when REDIS_HOST is unset.
func NewNoop() Cache {
	return noop{}
}

func (noop) Get(context.Context, string, interface{}) (bool, error) { return false, nil }

func (noop) Set(context.Context, string, interface{}, time.Duration) error { return nil }

func (noop) Delete(context.Context, ...string) error { return nil }

func (noop) Ping(context.Context) error { return nil }
