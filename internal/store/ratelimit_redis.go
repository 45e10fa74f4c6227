package store

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RateLimitRedisStore keeps one sorted set per key, scored by request time,
// so every replica of the server shares the same window.
type RateLimitRedisStore struct {
	client *redis.Client
	prefix string
	now    func() time.Time
}

// NewRateLimitRedisStore creates a new Redis-backed rate limit store.
func NewRateLimitRedisStore(client *redis.Client) *RateLimitRedisStore {
	return &RateLimitRedisStore{
		client: client,
		prefix: "ratelimit:",
		now:    time.Now,
	}
}

// WithClock replaces the time source. Intended for tests.
func (s *RateLimitRedisStore) WithClock(now func() time.Time) *RateLimitRedisStore {
	s.now = now

	return s
}

func (s *RateLimitRedisStore) Record(ctx context.Context, key string, window time.Duration) (int64, error) {
	now := s.now()
	cutoff := now.Add(-window).UnixNano()
	redisKey := s.prefix + key

	pipe := s.client.TxPipeline()
	pipe.ZRemRangeByScore(ctx, redisKey, "-inf", strconv.FormatInt(cutoff, 10))
	pipe.ZAdd(ctx, redisKey, redis.Z{Score: float64(now.UnixNano()), Member: uuid.NewString()})
	count := pipe.ZCard(ctx, redisKey)
	pipe.PExpire(ctx, redisKey, window)

	if _, err := pipe.Exec(ctx); err != nil {
		return 0, unavailable("ratelimit record", err)
	}

	return count.Val(), nil
}
