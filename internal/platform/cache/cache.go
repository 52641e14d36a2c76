// Package cache provides a small TTL key value cache with memory and redis backends
package cache

import (
	"context"
	"time"

	"glossrank/internal/platform/metrics"
)

// Cache stores JSON encodable values under string keys
// Get reports false with a nil error on a miss or an expired entry
type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Instrumented counts lookups for c under name
func Instrumented(name string, c Cache) Cache {
	return instrumented{name: name, inner: c}
}

type instrumented struct {
	name  string
	inner Cache
}

func (i instrumented) Get(ctx context.Context, key string, dst any) (bool, error) {
	ok, err := i.inner.Get(ctx, key, dst)
	switch {
	case err != nil:
		metrics.CacheLookups.WithLabelValues(i.name, "error").Inc()
	case ok:
		metrics.CacheLookups.WithLabelValues(i.name, "hit").Inc()
	default:
		metrics.CacheLookups.WithLabelValues(i.name, "miss").Inc()
	}
	return ok, err
}

func (i instrumented) Set(ctx context.Context, key string, v any, ttl time.Duration) error {
	return i.inner.Set(ctx, key, v, ttl)
}

func (i instrumented) Delete(ctx context.Context, key string) error {
	return i.inner.Delete(ctx, key)
}
