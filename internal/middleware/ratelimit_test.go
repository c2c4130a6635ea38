package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/cosmoruler/Summerbuild/internal/config"
)

func okHandler(c echo.Context) error { return c.NoContent(http.StatusOK) }

func TestFixedWindowAllowsUpToLimit(t *testing.T) {
	e := echo.New()
	cfg := config.RateLimitConfig{Enabled: true, Limit: 10, Window: time.Minute, Prefix: "rl"}
	h := NewFixedWindow(cfg, NewMemoryCounter())(okHandler)

	for i := 1; i <= 10; i++ {
		req := httptest.NewRequest(http.MethodGet, "/restaurants", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		if err := h(e.NewContext(req, rec)); err != nil {
			t.Fatalf("request %d: %v", i, err)
		}
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: got %d, want 200", i, rec.Code)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/restaurants", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	rec := httptest.NewRecorder()
	if err := h(e.NewContext(req, rec)); err != nil {
		t.Fatalf("request 11: %v", err)
	}
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("request 11: got %d, want 429", rec.Code)
	}
	if got := rec.Header().Get("Retry-After"); got != "60" {
		t.Fatalf("Retry-After = %q, want 60", got)
	}
}

func TestFixedWindowKeysPerIP(t *testing.T) {
	e := echo.New()
	cfg := config.RateLimitConfig{Enabled: true, Limit: 1, Window: time.Minute, Prefix: "rl"}
	h := NewFixedWindow(cfg, NewMemoryCounter())(okHandler)

	for _, addr := range []string{"10.0.0.1:1", "10.0.0.2:1"} {
		req := httptest.NewRequest(http.MethodGet, "/restaurants", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		if err := h(e.NewContext(req, rec)); err != nil {
			t.Fatal(err)
		}
		if rec.Code != http.StatusOK {
			t.Fatalf("first request from %s: got %d, want 200", addr, rec.Code)
		}
	}
}

func TestFixedWindowDisabledPassesThrough(t *testing.T) {
	e := echo.New()
	h := NewFixedWindow(config.RateLimitConfig{Enabled: false}, NewMemoryCounter())(okHandler)

	req := httptest.NewRequest(http.MethodGet, "/restaurants", nil)
	rec := httptest.NewRecorder()
	if err := h(e.NewContext(req, rec)); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("got %d, want 200", rec.Code)
	}
}

func TestMemoryCounterResetsAfterWindow(t *testing.T) {
	s := NewMemoryCounter()
	ctx := context.Background()
	if n, _ := s.Incr(ctx, "k", 10*time.Millisecond); n != 1 {
		t.Fatalf("first incr = %d, want 1", n)
	}
	if n, _ := s.Incr(ctx, "k", 10*time.Millisecond); n != 2 {
		t.Fatalf("second incr = %d, want 2", n)
	}
	time.Sleep(20 * time.Millisecond)
	if n, _ := s.Incr(ctx, "k", 10*time.Millisecond); n != 1 {
		t.Fatalf("incr after expiry = %d, want 1", n)
	}
}
