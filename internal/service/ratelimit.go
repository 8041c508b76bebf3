package service

import (
	"context"
	"fmt"
	"time"

	"github.com/zoneboy/zilcycler/internal/logger"
	"github.com/zoneboy/zilcycler/internal/repository"
)

type slidingWindowLimiter struct {
	repo       repository.RateLimitRepository
	max        int
	window     time.Duration
	failClosed bool
}

// NewRateLimiter builds a sliding-window limiter: max requests per rolling
// window, counted independently per (endpoint class, requester key). When
// the counter store is unreachable it fails open unless configured
// otherwise; availability of the product outranks throttling.
func NewRateLimiter(repo repository.RateLimitRepository, max int, window time.Duration, failClosed bool) RateLimiter {
	return &slidingWindowLimiter{
		repo:       repo,
		max:        max,
		window:     window,
		failClosed: failClosed,
	}
}

func (l *slidingWindowLimiter) Allow(ctx context.Context, class, key string) bool {
	now := time.Now()
	limiterKey := fmt.Sprintf("%s:%s", class, key)

	count, err := l.repo.CountInWindow(ctx, limiterKey, l.window, now)
	if err != nil {
		logger.Degraded("rate_limiter", err, "class", class, "fail_closed", l.failClosed)
		return !l.failClosed
	}
	if count >= l.max {
		logger.Warn("Rate limit exceeded", "class", class, "count", count, "max", l.max)
		return false
	}

	if err := l.repo.RecordAttempt(ctx, limiterKey, l.window, now); err != nil {
		logger.Degraded("rate_limiter", err, "class", class, "op", "record")
	}
	return true
}
