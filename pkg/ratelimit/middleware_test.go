package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLimitedRouter(config Config) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Middleware(config))
	router.POST("/webhook", func(c *gin.Context) {
		c.Status(http.StatusAccepted)
	})
	router.GET("/health", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func doRequest(router *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	req.RemoteAddr = "203.0.113.7:1234"
	router.ServeHTTP(w, req)
	return w
}

func strictConfig() Config {
	cfg := DefaultConfig()
	cfg.RPS = 1
	cfg.Burst = 1
	cfg.CleanupInterval = time.Minute
	cfg.MaxAge = time.Minute
	return cfg
}

func TestMiddlewareLimitsPerClient(t *testing.T) {
	router := newLimitedRouter(strictConfig())

	first := doRequest(router, http.MethodPost, "/webhook")
	require.Equal(t, http.StatusAccepted, first.Code)
	assert.Equal(t, "1", first.Header().Get("X-RateLimit-Limit"))

	second := doRequest(router, http.MethodPost, "/webhook")
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Equal(t, "0", second.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, "1", second.Header().Get("Retry-After"))
}

func TestMiddlewareSkipsProbePaths(t *testing.T) {
	router := newLimitedRouter(strictConfig())

	// Exhaust the webhook budget, then verify probes still pass.
	doRequest(router, http.MethodPost, "/webhook")
	require.Equal(t, http.StatusTooManyRequests, doRequest(router, http.MethodPost, "/webhook").Code)

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, doRequest(router, http.MethodGet, "/health").Code)
	}
}

func TestDefaultConfigSkipsHealthAndMetrics(t *testing.T) {
	cfg := DefaultConfig()
	assert.Contains(t, cfg.SkipPaths, "/health")
	assert.Contains(t, cfg.SkipPaths, "/metrics")
}
