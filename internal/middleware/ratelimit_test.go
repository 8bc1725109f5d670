package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenBucketExhaustion(t *testing.T) {
	t.Parallel()

	tb := NewTokenBucket(3, 1)
	for i := 0; i < 3; i++ {
		assert.True(t, tb.Allow(), "request %d within capacity", i)
	}
	assert.False(t, tb.Allow(), "bucket must be empty after the burst")
}

func TestRateLimiterKeysAreIndependent(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter(1, 1)
	assert.True(t, rl.Allow("a"))
	assert.False(t, rl.Allow("a"))
	assert.True(t, rl.Allow("b"), "a drained bucket must not affect other keys")
}

func TestRateLimitMiddleware(t *testing.T) {
	t.Parallel()

	srv := RateLimitMiddleware(2, 1)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	do := func(path string) int {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.RemoteAddr = "10.0.0.1:5000"
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, do("/api/ai/history"))
	assert.Equal(t, http.StatusOK, do("/api/ai/history"))
	assert.Equal(t, http.StatusTooManyRequests, do("/api/ai/history"))

	// Exempt paths keep answering after the bucket drains.
	assert.Equal(t, http.StatusOK, do("/health"))
	assert.Equal(t, http.StatusOK, do("/metrics"))
}
