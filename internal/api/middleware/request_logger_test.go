package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/todoapp/todo-service/internal/core/domain"
	"github.com/todoapp/todo-service/pkg/logger"
)

func decodeLogLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var line map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line); err != nil {
		t.Fatalf("invalid log line %q: %v", buf.String(), err)
	}
	return line
}

func TestRequestLogger_FiltersAndRestoresBody(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf).Level(zerolog.DebugLevel)
	mw := RequestLogger(log, logger.NewFilter([]string{"passw", "token"}))

	e := echo.New()
	body := `{"username":"alice","password":"wonderland"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/login?reset_token=abc&page=1", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set(echo.HeaderAuthorization, "Bearer secret")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seen string
	handler := mw(func(c echo.Context) error {
		b, _ := io.ReadAll(c.Request().Body)
		seen = string(b)
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if seen != body {
		t.Fatalf("handler must see the original body, got %q", seen)
	}
	if rec.Header().Get(HeaderProcessTime) == "" {
		t.Fatalf("expected %s header", HeaderProcessTime)
	}

	line := decodeLogLine(t, &buf)
	if line["level"] != "info" || line["status"] != float64(200) {
		t.Fatalf("unexpected level/status: %v", line)
	}
	if line["url"] != "/auth/login?reset_token=[FILTERED]&page=1" {
		t.Fatalf("unexpected url: %v", line["url"])
	}
	logged := line["body"].(map[string]any)
	if logged["password"] != logger.Filtered || logged["username"] != "alice" {
		t.Fatalf("unexpected body: %v", logged)
	}
	headers := line["headers"].(map[string]any)
	if headers["Authorization"] != logger.Filtered {
		t.Fatalf("expected authorization filtered: %v", headers)
	}
	if strings.Contains(buf.String(), "wonderland") || strings.Contains(buf.String(), "Bearer secret") {
		t.Fatalf("secret leaked into log: %s", buf.String())
	}
}

func TestRequestLogger_LevelFollowsStatus(t *testing.T) {
	cases := []struct {
		err   error
		level string
	}{
		{domain.ErrForbidden, "warn"},
		{echo.NewHTTPError(http.StatusServiceUnavailable, "down"), "error"},
	}
	for _, tc := range cases {
		var buf bytes.Buffer
		mw := RequestLogger(zerolog.New(&buf).Level(zerolog.InfoLevel), logger.NewFilter(nil))

		e := echo.New()
		e.HTTPErrorHandler = func(err error, c echo.Context) {
			code := http.StatusForbidden
			if he, ok := err.(*echo.HTTPError); ok {
				code = he.Code
			}
			_ = c.NoContent(code)
		}
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/admin/todos", nil), httptest.NewRecorder())

		if err := mw(func(echo.Context) error { return tc.err })(c); err != nil {
			t.Fatalf("middleware must swallow the rendered error, got %v", err)
		}
		line := decodeLogLine(t, &buf)
		if line["level"] != tc.level {
			t.Fatalf("%v: expected level %s, got %v", tc.err, tc.level, line["level"])
		}
		if _, ok := line["headers"]; ok {
			t.Fatalf("headers must only be logged at debug level")
		}
	}
}
