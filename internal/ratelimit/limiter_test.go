package ratelimit

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tremorlab/motorscreen/internal/monitoring"
)

func newFallbackLimiter(limit int) *RateLimiter {
	redisClient := &RedisClient{enabled: false}
	config := Config{
		SubmitLimitPerMin: limit,
		BurstMultiplier:   1,
	}
	return NewRateLimiter(redisClient, config, monitoring.NewMetrics())
}

func TestAllowIP_FallbackBurstThenBlock(t *testing.T) {
	limiter := newFallbackLimiter(10)
	ctx := context.Background()

	allowed := 0
	blocked := 0
	for i := 0; i < 20; i++ {
		result, err := limiter.AllowIP(ctx, "203.0.113.1")
		require.NoError(t, err)
		if result.Allowed {
			allowed++
		} else {
			blocked++
			assert.Greater(t, result.RetryAfter, time.Duration(0))
		}
	}

	assert.Equal(t, 10, allowed, "burst capacity equals the per-minute limit")
	assert.Equal(t, 10, blocked)
}

func TestAllowIP_IsolatesClients(t *testing.T) {
	limiter := newFallbackLimiter(5)
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		_, err := limiter.AllowIP(ctx, "203.0.113.1")
		require.NoError(t, err)
	}

	result, err := limiter.AllowIP(ctx, "203.0.113.2")
	require.NoError(t, err)
	assert.True(t, result.Allowed, "a fresh IP has its own bucket")
}

func TestIPRateLimitMiddleware(t *testing.T) {
	limiter := newFallbackLimiter(5)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(limiter.IPRateLimitMiddleware())
	router.POST("/api/v1/assess/reaction", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	var lastCode int
	for i := 0; i < 10; i++ {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/assess/reaction", nil)
		req.RemoteAddr = "203.0.113.3:1234"
		router.ServeHTTP(rec, req)
		lastCode = rec.Code

		assert.NotEmpty(t, rec.Header().Get("X-RateLimit-Limit"))
	}

	assert.Equal(t, http.StatusTooManyRequests, lastCode)
}

func TestGetStats(t *testing.T) {
	limiter := newFallbackLimiter(5)

	_, err := limiter.AllowIP(context.Background(), "203.0.113.4")
	require.NoError(t, err)

	stats := limiter.GetStats()
	assert.Equal(t, false, stats["redis_enabled"])
	assert.Equal(t, 1, stats["fallback_limiters"])
}
