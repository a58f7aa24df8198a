// ABOUTME: Redis-backed storage for sessions shared across hosts or CI runners
// ABOUTME: Every key is prefixed with a namespace so several tools can share one database

package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// DefaultNamespace prefixes keys when Options.Namespace is empty
const DefaultNamespace = "bloghub"

// RedisStorage stores entries as plain string keys without expiry
type RedisStorage struct {
	rdb       redis.UniversalClient
	namespace string
}

// NewRedis wraps an existing client
func NewRedis(rdb redis.UniversalClient, namespace string) *RedisStorage {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return &RedisStorage{rdb: rdb, namespace: namespace}
}

// OpenRedis parses a redis:// URL and connects lazily
func OpenRedis(url, namespace string) (*RedisStorage, error) {
	if url == "" {
		return nil, errors.New("redis session store requires BLOGHUB_REDIS_URL")
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	return NewRedis(redis.NewClient(opts), namespace), nil
}

func (r *RedisStorage) key(k string) string {
	return r.namespace + ":" + k
}

func (r *RedisStorage) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := r.rdb.Get(ctx, r.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get %s: %w", key, err)
	}
	return value, true, nil
}

func (r *RedisStorage) Set(ctx context.Context, key, value string) error {
	if err := r.rdb.Set(ctx, r.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (r *RedisStorage) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	namespaced := make([]string, len(keys))
	for i, k := range keys {
		namespaced[i] = r.key(k)
	}
	if err := r.rdb.Del(ctx, namespaced...).Err(); err != nil {
		return fmt.Errorf("redis delete: %w", err)
	}
	return nil
}

// Close releases the underlying connection pool
func (r *RedisStorage) Close() error {
	return r.rdb.Close()
}
