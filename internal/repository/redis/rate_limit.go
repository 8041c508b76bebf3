package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/zoneboy/zilcycler/internal/repository"
)

// RateLimitRepository keeps per-key attempt timestamps in Redis sorted sets.
// Each key holds one rolling window; entries older than the window are
// trimmed on every write.
type RateLimitRepository struct {
	client *redis.Client
	prefix string
}

func NewRateLimitRepository(client *redis.Client, keyPrefix string) *RateLimitRepository {
	if keyPrefix == "" {
		keyPrefix = "rl"
	}
	return &RateLimitRepository{client: client, prefix: keyPrefix}
}

func (r *RateLimitRepository) CountInWindow(ctx context.Context, key string, window time.Duration, now time.Time) (int, error) {
	redisKey := r.key(key)
	min := fmt.Sprintf("%d", now.Add(-window).UnixNano())

	count, err := r.client.ZCount(ctx, redisKey, min, "+inf").Result()
	if err != nil {
		return 0, fmt.Errorf("redis zcount: %w", err)
	}
	return int(count), nil
}

func (r *RateLimitRepository) RecordAttempt(ctx context.Context, key string, window time.Duration, at time.Time) error {
	redisKey := r.key(key)
	threshold := fmt.Sprintf("%d", at.Add(-window).UnixNano())

	pipe := r.client.TxPipeline()
	pipe.ZRemRangeByScore(ctx, redisKey, "-inf", threshold)
	pipe.ZAdd(ctx, redisKey, redis.Z{Score: float64(at.UnixNano()), Member: at.UnixNano()})
	pipe.Expire(ctx, redisKey, window)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis record attempt: %w", err)
	}
	return nil
}

func (r *RateLimitRepository) key(identifier string) string {
	return fmt.Sprintf("%s:%s", r.prefix, identifier)
}

var _ repository.RateLimitRepository = (*RateLimitRepository)(nil)
