package httpx_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aussiebroadwan/cmsadmin/pkg/httpx"
	"github.com/stretchr/testify/require"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func requestFrom(addr string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/theme.css", nil)
	req.RemoteAddr = addr
	return req
}

func TestIPKeyExtractor(t *testing.T) {
	t.Parallel()

	t.Run("falls back to RemoteAddr", func(t *testing.T) {
		require.Equal(t, "192.168.1.1", httpx.IPKeyExtractor(requestFrom("192.168.1.1:12345")))
	})

	t.Run("prefers the first X-Forwarded-For hop", func(t *testing.T) {
		req := requestFrom("10.0.0.1:1")
		req.Header.Set("X-Forwarded-For", "203.0.113.1, 10.0.0.1")
		require.Equal(t, "203.0.113.1", httpx.IPKeyExtractor(req))
	})

	t.Run("uses X-Real-IP without X-Forwarded-For", func(t *testing.T) {
		req := requestFrom("10.0.0.1:1")
		req.Header.Set("X-Real-IP", " 203.0.113.2 ")
		require.Equal(t, "203.0.113.2", httpx.IPKeyExtractor(req))
	})

	t.Run("keeps RemoteAddr without a port", func(t *testing.T) {
		require.Equal(t, "pipe", httpx.IPKeyExtractor(requestFrom("pipe")))
	})
}

func TestCompositeKeyExtractor(t *testing.T) {
	t.Parallel()

	keyOf := httpx.CompositeKeyExtractor(":",
		httpx.IPKeyExtractor,
		httpx.HeaderKeyExtractor("X-Session-ID"),
	)

	req := requestFrom("192.168.1.1:1")
	require.Equal(t, "192.168.1.1", keyOf(req))

	req.Header.Set("X-Session-ID", "s-1")
	require.Equal(t, "192.168.1.1:s-1", keyOf(req))
}

func TestRateLimitMiddleware(t *testing.T) {
	t.Parallel()

	cfg := httpx.RateLimitConfig{RequestsPerWindow: 3, Window: time.Minute, Burst: 3}

	t.Run("blocks once the burst is spent", func(t *testing.T) {
		h := httpx.RateLimitByIP(cfg)(okHandler())

		for i := range 3 {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, requestFrom("192.168.1.1:1"))
			require.Equal(t, http.StatusOK, rec.Code, "request %d", i+1)
		}

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, requestFrom("192.168.1.1:1"))
		require.Equal(t, http.StatusTooManyRequests, rec.Code)
		require.NotEmpty(t, rec.Header().Get("Retry-After"))
		require.Equal(t, "3", rec.Header().Get("X-RateLimit-Limit"))
		require.Equal(t, "1m0s", rec.Header().Get("X-RateLimit-Window"))
		require.Equal(t, "no-store", rec.Header().Get("Cache-Control"))

		var body httpx.ErrorBody
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		require.Equal(t, "rate_limit_exceeded", body.Error)
	})

	t.Run("keys are independent", func(t *testing.T) {
		h := httpx.RateLimitByIP(cfg)(okHandler())

		for range 3 {
			h.ServeHTTP(httptest.NewRecorder(), requestFrom("192.168.1.1:1"))
		}

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, requestFrom("192.168.1.2:1"))
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("requests without a key pass", func(t *testing.T) {
		h := httpx.RateLimitMiddleware(httpx.RateLimitConfig{
			RequestsPerWindow: 1, Window: time.Minute, Burst: 1,
		}, httpx.HeaderKeyExtractor("X-Session-ID"))(okHandler())

		for range 5 {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, requestFrom("192.168.1.1:1"))
			require.Equal(t, http.StatusOK, rec.Code)
		}
	})

	t.Run("concurrent requests never exceed the burst", func(t *testing.T) {
		var passed atomic.Int32
		h := httpx.RateLimitByIP(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			passed.Add(1)
		}))

		var wg sync.WaitGroup
		for range 20 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				h.ServeHTTP(httptest.NewRecorder(), requestFrom("192.168.9.9:1"))
			}()
		}
		wg.Wait()

		require.LessOrEqual(t, passed.Load(), int32(3))
	})
}

func TestParseRateLimitFromEnv(t *testing.T) {
	def := httpx.RateLimitConfig{RequestsPerWindow: 10, Window: time.Minute, Burst: 5}

	t.Run("no overrides", func(t *testing.T) {
		require.Equal(t, def, httpx.ParseRateLimitFromEnv("CMSTEST_NONE", def))
	})

	t.Run("all overrides", func(t *testing.T) {
		t.Setenv("RATELIMIT_CMSTEST_REQUESTS", "50")
		t.Setenv("RATELIMIT_CMSTEST_WINDOW_SEC", "30")
		t.Setenv("RATELIMIT_CMSTEST_BURST", "7")

		got := httpx.ParseRateLimitFromEnv("CMSTEST", def)
		require.Equal(t, httpx.RateLimitConfig{RequestsPerWindow: 50, Window: 30 * time.Second, Burst: 7}, got)
	})

	t.Run("invalid values are ignored", func(t *testing.T) {
		t.Setenv("RATELIMIT_CMSTEST_REQUESTS", "lots")
		t.Setenv("RATELIMIT_CMSTEST_WINDOW_SEC", "-1")
		t.Setenv("RATELIMIT_CMSTEST_BURST", "0")

		require.Equal(t, def, httpx.ParseRateLimitFromEnv("CMSTEST", def))
	})
}
