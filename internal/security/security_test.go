package security

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSecurityConfig(t *testing.T) {
	config := DefaultSecurityConfig()

	assert.Equal(t, int64(1<<20), config.MaxBodyBytes)
	assert.Equal(t, 30, config.MaxRequestsPerMin)
	assert.Contains(t, config.AllowedOrigins, "http://localhost:5173")
	assert.Equal(t, 10*time.Second, config.RequestTimeout)
}

func newSecuredRouter(sm *SecurityMiddleware) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(sm.SecurityHeaders, sm.ValidateContentType, sm.MaxBodySize)
	router.POST("/api/v1/assess/reaction", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return router
}

func TestSecurityHeaders(t *testing.T) {
	router := newSecuredRouter(NewSecurityMiddleware(DefaultSecurityConfig()))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	assert.NotEmpty(t, rec.Header().Get("Content-Security-Policy"))
	assert.Empty(t, rec.Header().Get("Strict-Transport-Security"), "no HSTS without TLS")
}

func TestValidateContentType(t *testing.T) {
	router := newSecuredRouter(NewSecurityMiddleware(DefaultSecurityConfig()))

	tests := []struct {
		name        string
		contentType string
		wantStatus  int
	}{
		{"json accepted", "application/json", http.StatusOK},
		{"json with charset accepted", "application/json; charset=utf-8", http.StatusOK},
		{"missing content type accepted", "", http.StatusOK},
		{"xml rejected", "application/xml", http.StatusUnsupportedMediaType},
		{"form rejected", "application/x-www-form-urlencoded", http.StatusUnsupportedMediaType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/v1/assess/reaction",
				strings.NewReader(`{"reactionTimesMs":[300,310,320]}`))
			if tt.contentType != "" {
				req.Header.Set("Content-Type", tt.contentType)
			}
			router.ServeHTTP(rec, req)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestRateLimitByIP(t *testing.T) {
	config := DefaultSecurityConfig()
	config.MaxRequestsPerMin = 6 // burst floor of 5 applies
	sm := NewSecurityMiddleware(config)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(sm.RateLimitByIP)
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	var lastStatus int
	blocked := 0
	for i := 0; i < 10; i++ {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.RemoteAddr = "203.0.113.7:1234"
		router.ServeHTTP(rec, req)
		lastStatus = rec.Code
		if rec.Code == http.StatusTooManyRequests {
			blocked++
		}
	}

	assert.Greater(t, blocked, 0, "burst exhaustion must start blocking")
	assert.Equal(t, http.StatusTooManyRequests, lastStatus)
}

func TestRateLimitByIP_IsolatesClients(t *testing.T) {
	config := DefaultSecurityConfig()
	config.MaxRequestsPerMin = 6
	sm := NewSecurityMiddleware(config)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(sm.RateLimitByIP)
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Exhaust the first client.
	for i := 0; i < 10; i++ {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.RemoteAddr = "203.0.113.8:1234"
		router.ServeHTTP(rec, req)
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.RemoteAddr = "203.0.113.9:1234"
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code, "a fresh client must not be blocked")
}

func TestMaxBodySize(t *testing.T) {
	config := DefaultSecurityConfig()
	config.MaxBodyBytes = 64
	sm := NewSecurityMiddleware(config)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(sm.MaxBodySize)
	router.POST("/api/v1/assess/reaction", func(c *gin.Context) {
		var payload map[string]interface{}
		if err := c.ShouldBindJSON(&payload); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "request too large or malformed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	rec := httptest.NewRecorder()
	big := `{"reactionTimesMs":[` + strings.Repeat("300,", 100) + `300]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/assess/reaction", strings.NewReader(big))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
