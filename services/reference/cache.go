package reference

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// errCacheMiss is returned by Cache.Get for absent or expired collections.
var errCacheMiss = errors.New("reference cache miss")

// Cache stores encoded reference collections by scope and name. The scope is
// the caller's role, since the platform answers with the caller's token.
type Cache interface {
	Get(ctx context.Context, scope, collection string) ([]byte, error)
	Set(ctx context.Context, scope, collection string, data []byte) error
	Delete(ctx context.Context, scope string, collections ...string) error
}

type RedisReferenceCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisReferenceCache(client *redis.Client, ttl time.Duration) Cache {
	return &RedisReferenceCache{client: client, ttl: ttl}
}

const cacheKeyPrefix = "ref:"

func collectionKey(scope, name string) string {
	return fmt.Sprintf("%s%s:%s", cacheKeyPrefix, scope, name)
}

func (c *RedisReferenceCache) Get(ctx context.Context, scope, collection string) ([]byte, error) {
	data, err := c.client.Get(ctx, collectionKey(scope, collection)).Bytes()
	if err == redis.Nil {
		return nil, errCacheMiss
	}
	return data, err
}

func (c *RedisReferenceCache) Set(ctx context.Context, scope, collection string, data []byte) error {
	return c.client.Set(ctx, collectionKey(scope, collection), data, c.ttl).Err()
}

func (c *RedisReferenceCache) Delete(ctx context.Context, scope string, collections ...string) error {
	if len(collections) == 0 {
		return nil
	}
	keys := make([]string, len(collections))
	for i, name := range collections {
		keys[i] = collectionKey(scope, name)
	}
	return c.client.Del(ctx, keys...).Err()
}
