package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestLoginRateLimiter_DeniesAfterBurst(t *testing.T) {
	e := echo.New()
	e.POST("/auth/login", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}, LoginRateLimiter(2))

	codes := make([]int, 0, 3)
	var last *httptest.ResponseRecorder
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		last = httptest.NewRecorder()
		e.ServeHTTP(last, req)
		codes = append(codes, last.Code)
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Fatalf("unexpected status sequence: %v", codes)
	}
	if !strings.Contains(last.Body.String(), "Too many login attempts") {
		t.Fatalf("unexpected denial body: %s", last.Body.String())
	}
}

// Every client IP gets its own bucket.
func TestLoginRateLimiter_SeparatesClients(t *testing.T) {
	e := echo.New()
	e.POST("/auth/login", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}, LoginRateLimiter(1))

	for _, addr := range []string{"10.0.0.1:1234", "10.0.0.2:1234"} {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", addr, rec.Code)
		}
	}
}

func TestLoginRateLimiter_Disabled(t *testing.T) {
	called := 0
	h := LoginRateLimiter(0)(func(c echo.Context) error {
		called++
		return nil
	})
	c := echo.New().NewContext(httptest.NewRequest(http.MethodPost, "/", nil), httptest.NewRecorder())
	for i := 0; i < 5; i++ {
		_ = h(c)
	}
	if called != 5 {
		t.Fatalf("expected all calls to pass, got %d", called)
	}
}
