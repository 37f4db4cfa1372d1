package httpkit

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"merkaz_backend/platform/apperr"
	"merkaz_backend/platform/logger"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestIPRateLimiterBlocksAfterBurst(t *testing.T) {
	limiter := PerMinute(2)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if ok, _ := limiter.Allow(ctx, "10.0.0.1"); !ok {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if ok, _ := limiter.Allow(ctx, "10.0.0.1"); ok {
		t.Fatalf("third request should be limited")
	}
	if ok, _ := limiter.Allow(ctx, "10.0.0.2"); !ok {
		t.Fatalf("other IPs keep their own bucket")
	}
}

func TestIPRateLimiterSweepDropsIdleClients(t *testing.T) {
	now := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
	limiter := PerMinute(1)
	limiter.now = func() time.Time { return now }
	ctx := context.Background()

	limiter.Allow(ctx, "10.0.0.1")
	now = now.Add(5 * time.Minute)
	limiter.Allow(ctx, "10.0.0.2")

	if removed := limiter.Sweep(2 * time.Minute); removed != 1 {
		t.Fatalf("expected one idle bucket removed, got %d", removed)
	}
	if _, ok := limiter.limiters.Load("10.0.0.1"); ok {
		t.Fatalf("idle client should be forgotten")
	}
	if ok, _ := limiter.Allow(ctx, "10.0.0.2"); ok {
		t.Fatalf("active client keeps its exhausted bucket")
	}
	if ok, _ := limiter.Allow(ctx, "10.0.0.1"); !ok {
		t.Fatalf("swept client starts with a full bucket")
	}
}

func TestRedisRateLimiterFixedWindow(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	now := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
	limiter := NewRedisRateLimiter(client, 2, time.Minute)
	limiter.now = func() time.Time { return now }
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		ok, err := limiter.Allow(ctx, "10.0.0.1")
		if err != nil || !ok {
			t.Fatalf("request %d should be allowed, ok=%v err=%v", i+1, ok, err)
		}
	}
	if ok, _ := limiter.Allow(ctx, "10.0.0.1"); ok {
		t.Fatalf("third request in the window should be limited")
	}

	now = now.Add(time.Minute)
	if ok, _ := limiter.Allow(ctx, "10.0.0.1"); !ok {
		t.Fatalf("next window should reset the counter")
	}
}

func TestRedisRateLimiterFailsOpen(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()
	mr.Close()

	limiter := NewRedisRateLimiter(client, 1, time.Minute)
	ok, err := limiter.Allow(context.Background(), "10.0.0.1")
	if err == nil {
		t.Fatalf("expected an error with redis down")
	}
	if !ok {
		t.Fatalf("expected fail-open when redis is unavailable")
	}
}

type stubLimiter struct {
	allowed bool
	err     error
}

func (s stubLimiter) Allow(context.Context, string) (bool, error) { return s.allowed, s.err }

func TestRateLimitMiddleware(t *testing.T) {
	cases := []struct {
		name    string
		limiter Limiter
		want    int
	}{
		{"allowed", stubLimiter{allowed: true}, http.StatusNoContent},
		{"limited", stubLimiter{allowed: false}, http.StatusTooManyRequests},
		{"limiter error allows", stubLimiter{allowed: true, err: errors.New("down")}, http.StatusNoContent},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			engine := gin.New()
			engine.Use(RateLimit(tc.limiter, logger.Discard()))
			engine.POST("/api/lead", func(c *gin.Context) { c.Status(http.StatusNoContent) })

			w := httptest.NewRecorder()
			engine.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/lead", nil))
			if w.Code != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, w.Code)
			}
		})
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	engine := gin.New()
	engine.Use(RequestID())
	var seen string
	engine.GET("/ping", func(c *gin.Context) {
		seen, _ = c.Request.Context().Value(logger.RequestIDKey).(string)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	header := w.Header().Get(RequestIDHeader)
	if _, err := uuid.Parse(header); err != nil {
		t.Fatalf("expected generated uuid header, got %q", header)
	}
	if seen != header {
		t.Fatalf("expected request context id %q, got %q", header, seen)
	}

	incoming := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, incoming)
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	if w.Header().Get(RequestIDHeader) != incoming {
		t.Fatalf("expected incoming id to be kept")
	}
}

func TestHandleErrorMapsKinds(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{apperr.Validation("bad"), http.StatusBadRequest},
		{apperr.Internal("oops"), http.StatusInternalServerError},
		{apperr.New(apperr.KindTooManyRequests, "slow down"), http.StatusTooManyRequests},
		{errors.New("plain"), http.StatusBadRequest},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		if !HandleError(c, tc.err) {
			t.Fatalf("expected HandleError to report handling %v", tc.err)
		}
		if w.Code != tc.want {
			t.Fatalf("%v: expected %d, got %d", tc.err, tc.want, w.Code)
		}
	}

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if HandleError(c, nil) {
		t.Fatalf("nil error must not be handled")
	}
}
