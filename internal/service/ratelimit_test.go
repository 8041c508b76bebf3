package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/zoneboy/zilcycler/internal/service"
)

func TestRateLimiter_Allow(t *testing.T) {
	ctx := context.Background()
	window := time.Minute

	t.Run("Under The Limit", func(t *testing.T) {
		repo := new(MockRateLimitRepo)
		limiter := service.NewRateLimiter(repo, 5, window, false)

		repo.On("CountInWindow", ctx, "login:1.2.3.4", window, mock.AnythingOfType("time.Time")).Return(2, nil)
		repo.On("RecordAttempt", ctx, "login:1.2.3.4", window, mock.AnythingOfType("time.Time")).Return(nil)

		assert.True(t, limiter.Allow(ctx, "login", "1.2.3.4"))
		repo.AssertCalled(t, "RecordAttempt", ctx, "login:1.2.3.4", window, mock.AnythingOfType("time.Time"))
	})

	t.Run("At The Limit", func(t *testing.T) {
		repo := new(MockRateLimitRepo)
		limiter := service.NewRateLimiter(repo, 5, window, false)

		repo.On("CountInWindow", ctx, "login:1.2.3.4", window, mock.AnythingOfType("time.Time")).Return(5, nil)

		assert.False(t, limiter.Allow(ctx, "login", "1.2.3.4"))
		repo.AssertNotCalled(t, "RecordAttempt", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Counter Store Down Fails Open", func(t *testing.T) {
		repo := new(MockRateLimitRepo)
		limiter := service.NewRateLimiter(repo, 5, window, false)

		repo.On("CountInWindow", ctx, "login:1.2.3.4", window, mock.AnythingOfType("time.Time")).
			Return(0, errors.New("connection refused"))

		assert.True(t, limiter.Allow(ctx, "login", "1.2.3.4"))
	})

	t.Run("Fail Closed When Configured", func(t *testing.T) {
		repo := new(MockRateLimitRepo)
		limiter := service.NewRateLimiter(repo, 5, window, true)

		repo.On("CountInWindow", ctx, "login:1.2.3.4", window, mock.AnythingOfType("time.Time")).
			Return(0, errors.New("connection refused"))

		assert.False(t, limiter.Allow(ctx, "login", "1.2.3.4"))
	})

	t.Run("Classes Are Counted Separately", func(t *testing.T) {
		repo := new(MockRateLimitRepo)
		limiter := service.NewRateLimiter(repo, 5, window, false)

		repo.On("CountInWindow", ctx, "login:1.2.3.4", window, mock.AnythingOfType("time.Time")).Return(5, nil)
		repo.On("CountInWindow", ctx, "forgot-password:1.2.3.4", window, mock.AnythingOfType("time.Time")).Return(0, nil)
		repo.On("RecordAttempt", ctx, "forgot-password:1.2.3.4", window, mock.AnythingOfType("time.Time")).Return(nil)

		assert.False(t, limiter.Allow(ctx, "login", "1.2.3.4"))
		assert.True(t, limiter.Allow(ctx, "forgot-password", "1.2.3.4"))
	})
}
