package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiter_Allow(t *testing.T) {
	t.Run("allows up to rate within window", func(t *testing.T) {
		rl := NewRateLimiter(3, time.Minute, setupTestLogger())
		defer rl.Stop()

		for i := 0; i < 3; i++ {
			assert.True(t, rl.Allow("10.0.0.1"), "request %d should pass", i+1)
		}
		assert.False(t, rl.Allow("10.0.0.1"), "request over the limit should be denied")
	})

	t.Run("keys are independent", func(t *testing.T) {
		rl := NewRateLimiter(1, time.Minute, setupTestLogger())
		defer rl.Stop()

		assert.True(t, rl.Allow("10.0.0.1"))
		assert.False(t, rl.Allow("10.0.0.1"))
		assert.True(t, rl.Allow("10.0.0.2"), "a fresh key has its own budget")
	})

	t.Run("tokens refill after the window", func(t *testing.T) {
		rl := NewRateLimiter(1, 30*time.Millisecond, setupTestLogger())
		defer rl.Stop()

		require.True(t, rl.Allow("10.0.0.3"))
		require.False(t, rl.Allow("10.0.0.3"))

		time.Sleep(40 * time.Millisecond)
		assert.True(t, rl.Allow("10.0.0.3"), "budget should reset after the window")
	})
}

func TestRateLimiter_CleansUpIdleBuckets(t *testing.T) {
	rl := NewRateLimiter(5, 40*time.Millisecond, setupTestLogger())
	defer rl.Stop()

	rl.Allow("10.0.0.1")
	rl.Allow("10.0.0.2")

	rl.mu.RLock()
	created := len(rl.buckets)
	rl.mu.RUnlock()
	require.Equal(t, 2, created)

	// cleanup срабатывает через window*2
	assert.Eventually(t, func() bool {
		rl.mu.RLock()
		defer rl.mu.RUnlock()
		return len(rl.buckets) == 0
	}, time.Second, 10*time.Millisecond, "idle buckets should be dropped")
}

func TestRateLimitMiddleware_Returns429OverLimit(t *testing.T) {
	wrapped := RateLimitMiddleware(2, time.Minute, setupTestLogger())(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}),
	)

	send := func(ip string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/api/messages", nil)
		req.RemoteAddr = ip
		w := httptest.NewRecorder()
		wrapped.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusOK, send("10.0.0.1:100").Code)
	assert.Equal(t, http.StatusOK, send("10.0.0.1:100").Code)

	blocked := send("10.0.0.1:100")
	assert.Equal(t, http.StatusTooManyRequests, blocked.Code)
	assert.Equal(t, "application/json", blocked.Header().Get("Content-Type"))
	assert.Contains(t, blocked.Body.String(), "rate limit exceeded")

	// Другой клиент не задет
	assert.Equal(t, http.StatusOK, send("10.0.0.2:100").Code)
}

func TestRateLimitMiddleware_LogsBlockedRequests(t *testing.T) {
	var buf strings.Builder
	wrapped := RateLimitMiddleware(1, time.Minute, captureLogger(&buf))(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}),
	)

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/messages/batch", nil)
		req.RemoteAddr = "10.0.0.9:500"
		wrapped.ServeHTTP(httptest.NewRecorder(), req)
	}

	out := buf.String()
	assert.Contains(t, out, "Rate limit exceeded")
	assert.Contains(t, out, "10.0.0.9:500")
	assert.Contains(t, out, "/api/messages/batch")
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		xff        string
		realIP     string
		want       string
	}{
		{name: "remote addr only", remoteAddr: "192.0.2.7:1234", want: "192.0.2.7:1234"},
		{name: "X-Real-IP beats remote addr", remoteAddr: "10.0.0.1:1", realIP: "192.0.2.8", want: "192.0.2.8"},
		{name: "X-Forwarded-For beats X-Real-IP", remoteAddr: "10.0.0.1:1", xff: "192.0.2.9", realIP: "192.0.2.8", want: "192.0.2.9"},
		{name: "first hop of X-Forwarded-For chain", remoteAddr: "10.0.0.1:1", xff: "192.0.2.9,10.0.0.2,10.0.0.3", want: "192.0.2.9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/messages", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.xff != "" {
				req.Header.Set("X-Forwarded-For", tt.xff)
			}
			if tt.realIP != "" {
				req.Header.Set("X-Real-IP", tt.realIP)
			}

			assert.Equal(t, tt.want, clientIP(req))
		})
	}
}
