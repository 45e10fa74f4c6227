package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
	"github.com/serroba/shortipy/internal/domain"
)

const scanBatch = 100

// RedisStore is a Redis implementation of KeyStore.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a new Redis-backed key store.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (r *RedisStore) Get(ctx context.Context, key string) (string, error) {
	value, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", fmt.Errorf("get %s: %w", key, domain.ErrNotFound)
		}

		return "", unavailable("get", err)
	}

	return value, nil
}

func (r *RedisStore) Set(ctx context.Context, key, value string) error {
	if err := r.client.Set(ctx, key, value, 0).Err(); err != nil {
		return unavailable("set", err)
	}

	return nil
}

func (r *RedisStore) SetNX(ctx context.Context, key, value string) (bool, error) {
	ok, err := r.client.SetNX(ctx, key, value, 0).Result()
	if err != nil {
		return false, unavailable("setnx", err)
	}

	return ok, nil
}

func (r *RedisStore) SetXX(ctx context.Context, key, value string) (bool, error) {
	ok, err := r.client.SetXX(ctx, key, value, 0).Result()
	if err != nil {
		return false, unavailable("setxx", err)
	}

	return ok, nil
}

func (r *RedisStore) Del(ctx context.Context, key string) (bool, error) {
	n, err := r.client.Del(ctx, key).Result()
	if err != nil {
		return false, unavailable("del", err)
	}

	return n > 0, nil
}

// Scan walks the keyspace with SCAN MATCH and resolves values with MGET.
// Keys removed between the two steps are skipped.
func (r *RedisStore) Scan(ctx context.Context, prefix string) ([]Entry, error) {
	seen := make(map[string]struct{})
	keys := make([]string, 0)

	iter := r.client.Scan(ctx, 0, escapeGlob(prefix)+"*", scanBatch).Iterator()
	for iter.Next(ctx) {
		// SCAN may return a key more than once.
		if _, dup := seen[iter.Val()]; dup {
			continue
		}

		seen[iter.Val()] = struct{}{}
		keys = append(keys, iter.Val())
	}

	if err := iter.Err(); err != nil {
		return nil, unavailable("scan", err)
	}

	entries := make([]Entry, 0, len(keys))

	for start := 0; start < len(keys); start += scanBatch {
		end := min(start+scanBatch, len(keys))
		batch := keys[start:end]

		values, err := r.client.MGet(ctx, batch...).Result()
		if err != nil {
			return nil, unavailable("mget", err)
		}

		for i, v := range values {
			s, ok := v.(string)
			if !ok {
				continue
			}

			entries = append(entries, Entry{Key: batch[i], Value: s})
		}
	}

	return entries, nil
}

// Ping checks Redis connectivity.
func (r *RedisStore) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return unavailable("ping", err)
	}

	return nil
}

func unavailable(op string, err error) error {
	return fmt.Errorf("redis %s: %w: %w", op, domain.ErrStoreUnavailable, err)
}

func escapeGlob(s string) string {
	return strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`, `[`, `\[`, `]`, `\]`).Replace(s)
}

// Compile-time check.
var _ KeyStore = (*RedisStore)(nil)
