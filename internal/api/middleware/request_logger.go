package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/todoapp/todo-service/pkg/logger"
)

const (
	// HeaderProcessTime carries the handler latency in seconds.
	HeaderProcessTime = "X-Process-Time"

	maxLoggedBody = 64 << 10
)

// RequestLogger logs one line per request with sensitive keys redacted by
// filter. Headers, query parameters and JSON bodies are only captured when
// the logger is at debug level.
func RequestLogger(log zerolog.Logger, filter *logger.Filter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			res := c.Response()
			start := time.Now()

			debug := log.GetLevel() <= zerolog.DebugLevel
			var body any
			if debug {
				body = captureJSONBody(req)
			}

			res.Before(func() {
				res.Header().Set(HeaderProcessTime, strconv.FormatFloat(time.Since(start).Seconds(), 'f', 6, 64))
			})

			if err := next(c); err != nil {
				c.Error(err)
			}

			status := res.Status
			evt := eventForStatus(log, status).
				Str("request_id", res.Header().Get(echo.HeaderXRequestID)).
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Str("url", filter.SanitizeURL(req.RequestURI)).
				Int("status", status).
				Float64("latency_ms", float64(time.Since(start).Microseconds())/1000).
				Int64("bytes_out", res.Size).
				Str("ip", c.RealIP()).
				Str("user_agent", req.UserAgent())

			if debug {
				evt = evt.
					Interface("headers", filter.Headers(req.Header)).
					Interface("query_params", filter.Query(req.URL.Query()))
				if body != nil {
					evt = evt.Interface("body", logger.Truncate(filter.Data(body)))
				}
			}
			evt.Msg("request completed")
			return nil
		}
	}
}

func eventForStatus(log zerolog.Logger, status int) *zerolog.Event {
	switch {
	case status >= http.StatusInternalServerError:
		return log.Error()
	case status >= http.StatusBadRequest:
		return log.Warn()
	default:
		return log.Info()
	}
}

// captureJSONBody decodes a JSON request body and restores it for the
// handler. Non-JSON and oversized bodies are skipped.
func captureJSONBody(req *http.Request) any {
	if req.Body == nil || req.ContentLength == 0 || req.ContentLength > maxLoggedBody {
		return nil
	}
	if !strings.HasPrefix(req.Header.Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		return nil
	}

	raw, err := io.ReadAll(io.LimitReader(req.Body, maxLoggedBody))
	req.Body = io.NopCloser(io.MultiReader(bytes.NewReader(raw), req.Body))
	if err != nil {
		return nil
	}

	var v any
	if json.Unmarshal(raw, &v) != nil {
		return nil
	}
	return v
}
