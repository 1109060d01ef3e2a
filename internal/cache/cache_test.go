package cache

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tremorlab/motorscreen/internal/monitoring"
)

func TestCacheGetSet(t *testing.T) {
	c := NewCache(time.Minute)

	_, found := c.Get("missing")
	assert.False(t, found)

	c.Set("key", []byte("value"))
	data, found := c.Get("key")
	require.True(t, found)
	assert.Equal(t, []byte("value"), data)
	assert.Equal(t, 1, c.Size())

	c.Delete("key")
	_, found = c.Get("key")
	assert.False(t, found)
}

func TestCacheExpiry(t *testing.T) {
	c := NewCache(10 * time.Millisecond)
	c.Set("key", []byte("value"))

	time.Sleep(20 * time.Millisecond)

	_, found := c.Get("key")
	assert.False(t, found)
}

func newCachedRouter(t *testing.T, c *Cache, hits *int, onHit HitFunc) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	m := monitoring.NewMetrics()
	logger := monitoring.NewLogger(slog.LevelError)

	router := gin.New()
	router.Use(c.Middleware(m, logger, onHit))
	router.POST("/api/v1/assess/voice", func(ctx *gin.Context) {
		*hits++
		ctx.JSON(http.StatusOK, gin.H{"overallScore": 95.0})
	})
	return router
}

func TestCacheMiddleware_ServesRepeatedPayloadFromCache(t *testing.T) {
	c := NewCache(time.Minute)
	hits := 0
	router := newCachedRouter(t, c, &hits, nil)

	payload := `{"pitch":"natural","volume":"consistent","clarity":"crisp","tremor":"none"}`

	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/assess/voice", strings.NewReader(payload))
		router.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "overallScore")
	}

	assert.Equal(t, 1, hits, "handler should run once, repeats served from cache")
}

func TestCacheMiddleware_OnHitRunsForEachServedCopy(t *testing.T) {
	c := NewCache(time.Minute)
	hits := 0
	var hookCalls int
	var hookBody []byte
	router := newCachedRouter(t, c, &hits, func(_ *gin.Context, cached []byte) {
		hookCalls++
		hookBody = cached
	})

	payload := `{"pitch":"natural","volume":"consistent","clarity":"crisp","tremor":"none"}`

	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/assess/voice", strings.NewReader(payload))
		router.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	assert.Equal(t, 1, hits, "handler runs once")
	assert.Equal(t, 2, hookCalls, "hook runs on every cache hit")
	assert.Contains(t, string(hookBody), "overallScore")
}

func TestCacheMiddleware_DistinctPayloadsMiss(t *testing.T) {
	c := NewCache(time.Minute)
	hits := 0
	router := newCachedRouter(t, c, &hits, nil)

	for _, payload := range []string{
		`{"pitch":"natural","volume":"consistent","clarity":"crisp","tremor":"none"}`,
		`{"pitch":"monopitch","volume":"consistent","clarity":"crisp","tremor":"none"}`,
	} {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/assess/voice", strings.NewReader(payload))
		router.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	assert.Equal(t, 2, hits)
}
