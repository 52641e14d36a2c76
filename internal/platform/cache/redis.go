package cache

import (
	"context"
	"errors"
	"time"

	perr "glossrank/internal/platform/errors"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

// Redis is a Cache over a go-redis client, keys are namespaced with prefix
type Redis struct {
	rdb    redis.Cmdable
	prefix string
}

// NewRedis wraps rdb; prefix may be empty
func NewRedis(rdb redis.Cmdable, prefix string) *Redis {
	if rdb == nil {
		panic("cache: nil redis client")
	}
	return &Redis{rdb: rdb, prefix: prefix}
}

func (r *Redis) key(k string) string { return r.prefix + k }

// Get reads and decodes key, redis.Nil is a miss
func (r *Redis) Get(ctx context.Context, key string, dst any) (bool, error) {
	raw, err := r.rdb.Get(ctx, r.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, perr.Wrapf(err, perr.ErrorCodeUnavailable, "redis get %s", key)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, perr.Wrapf(err, perr.ErrorCodeJSON, "decode cached %s", key)
	}
	return true, nil
}

// Set encodes v and stores it with ttl, ttl <= 0 means no expiry
func (r *Redis) Set(ctx context.Context, key string, v any, ttl time.Duration) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeJSON, "encode cached %s", key)
	}
	if ttl < 0 {
		ttl = 0
	}
	if err := r.rdb.Set(ctx, r.key(key), raw, ttl).Err(); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnavailable, "redis set %s", key)
	}
	return nil
}

// Delete removes key
func (r *Redis) Delete(ctx context.Context, key string) error {
	if err := r.rdb.Del(ctx, r.key(key)).Err(); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnavailable, "redis del %s", key)
	}
	return nil
}
