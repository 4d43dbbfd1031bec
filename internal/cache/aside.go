package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	InspirationKeyPrefix = "inspire:page:%d"
	InspirationTTL       = 10 * time.Minute
)

// InspirationKey builds the cache key for one catalog page.
func InspirationKey(page int) string {
	return fmt.Sprintf(InspirationKeyPrefix, page)
}

// Aside implements the cache-aside pattern: on a hit, dest is filled from the
// cached JSON; on a miss, load runs and its result (dest) is cached with the
// given TTL. Cache failures degrade to calling load directly.
func Aside(ctx context.Context, key string, dest interface{}, ttl time.Duration, load func() error) error {
	if client == nil {
		return load()
	}

	raw, err := client.Get(ctx, key).Result()
	if err == nil {
		if unmarshalErr := json.Unmarshal([]byte(raw), dest); unmarshalErr == nil {
			return nil
		}
		// Corrupt entry: drop it and fall through to the loader.
		client.Del(ctx, key)
	} else if err != redis.Nil {
		return load()
	}

	if err := load(); err != nil {
		return err
	}

	if data, marshalErr := json.Marshal(dest); marshalErr == nil {
		client.Set(ctx, key, data, ttl)
	}
	return nil
}

// Invalidate removes a key, ignoring errors and a nil client.
func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}
