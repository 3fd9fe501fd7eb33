package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/goleak"

	"github.com/p-karmelita/KARLAB-SOFTWARE/internal/apperror"
)

func TestMemoryLimiter_FixedWindow(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	l := NewMemoryLimiter(ctx, 2, time.Minute)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	for i := 0; i < 2; i++ {
		if ok, _ := l.Allow(ctx, "1.2.3.4"); !ok {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if ok, _ := l.Allow(ctx, "1.2.3.4"); ok {
		t.Fatal("third request should be rejected")
	}
	if ok, _ := l.Allow(ctx, "5.6.7.8"); !ok {
		t.Fatal("other IPs must have their own budget")
	}

	now = now.Add(61 * time.Second)
	if ok, _ := l.Allow(ctx, "1.2.3.4"); !ok {
		t.Fatal("new window should reset the budget")
	}
}

func TestMemoryLimiter_Sweep(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	l := NewMemoryLimiter(ctx, 5, time.Minute)
	now := time.Now()
	l.now = func() time.Time { return now }
	l.Allow(ctx, "1.2.3.4")

	now = now.Add(3 * time.Minute)
	l.sweep()

	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.entries) != 0 {
		t.Errorf("expected expired entries to be swept, got %d", len(l.entries))
	}
}

func TestMemoryLimiter_JanitorStopsWithContext(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	NewMemoryLimiter(ctx, 1, time.Second)
	cancel()
}

func TestRedisLimiter(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	l := NewRedisLimiter(client, 2, time.Minute)
	now := time.Date(2026, 1, 1, 12, 0, 30, 0, time.UTC)
	l.now = func() time.Time { return now }
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		ok, err := l.Allow(ctx, "1.2.3.4")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !ok {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if ok, _ := l.Allow(ctx, "1.2.3.4"); ok {
		t.Fatal("third request should be rejected")
	}

	keys := mr.Keys()
	if len(keys) != 1 {
		t.Fatalf("expected one counter key, got %v", keys)
	}
	if ttl := mr.TTL(keys[0]); ttl <= 0 || ttl > time.Minute {
		t.Errorf("expected counter to expire within the window, ttl=%v", ttl)
	}

	now = now.Add(time.Minute)
	if ok, _ := l.Allow(ctx, "1.2.3.4"); !ok {
		t.Fatal("next window should be allowed")
	}
}

func TestRedisLimiter_Unavailable(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	defer client.Close()
	mr.Close()

	l := NewRedisLimiter(client, 2, time.Minute)
	if _, err := l.Allow(context.Background(), "1.2.3.4"); err == nil {
		t.Fatal("expected error when redis is down")
	}
}

func TestRedisLimiter_ZeroWindow(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	l := NewRedisLimiter(client, 20, 0)
	if _, err := l.Allow(context.Background(), "1.2.3.4"); err == nil {
		t.Fatal("expected error for a zero window")
	}
}

// stubLimiter returns fixed answers.
type stubLimiter struct {
	allowed bool
	err     error
}

func (s stubLimiter) Allow(context.Context, string) (bool, error) {
	return s.allowed, s.err
}

func TestRateLimitMiddleware(t *testing.T) {
	tests := []struct {
		name    string
		limiter Limiter
		wantErr int
	}{
		{"allowed", stubLimiter{allowed: true}, 0},
		{"rejected", stubLimiter{allowed: false}, http.StatusTooManyRequests},
		{"limiter failure fails open", stubLimiter{err: errors.New("down")}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodPost, "/contact.html", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			called := false
			h := RateLimit(tt.limiter)(func(c echo.Context) error {
				called = true
				return c.NoContent(http.StatusOK)
			})

			err := h(c)
			if tt.wantErr == 0 {
				if err != nil || !called {
					t.Fatalf("expected handler to run, err=%v called=%v", err, called)
				}
				return
			}
			var appErr *apperror.AppError
			if !errors.As(err, &appErr) || appErr.Code != tt.wantErr {
				t.Fatalf("expected HTTP %d, got %v", tt.wantErr, err)
			}
			if called {
				t.Error("handler should not run when rate limited")
			}
		})
	}
}
