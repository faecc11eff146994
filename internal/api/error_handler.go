package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/todoapp/todo-service/internal/api/metrics"
	"github.com/todoapp/todo-service/internal/core/domain"
	"github.com/todoapp/todo-service/internal/pkg/clock"
)

const internalErrorMessage = "Internal server error"

// ErrorBody is the canonical error envelope for all API errors.
type ErrorBody struct {
	Message    string `json:"message"`
	StatusCode int    `json:"status_code"`
	Timestamp  string `json:"timestamp"`
}

// Respond maps err to a status code and error body stamped with now.
func Respond(err error, now time.Time) (int, ErrorBody) {
	code, body, _ := respond(err, now)
	return code, body
}

func respond(err error, now time.Time) (int, ErrorBody, string) {
	code, msg, kind := resolveError(err)
	return code, ErrorBody{
		Message:    msg,
		StatusCode: code,
		Timestamp:  now.UTC().Format(time.RFC3339),
	}, kind
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Renders taxonomy errors with their fixed status code and message.
//   - Keeps the code and message of echo's own errors (bind, 404, 405).
//   - Logs unexpected errors internally without leaking details to the client.
func NewHTTPErrorHandler(log zerolog.Logger, clk clock.Clock) echo.HTTPErrorHandler {
	if clk == nil {
		clk = clock.NewRealClock()
	}
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, body, kind := respond(err, clk.Now())
		if kind == "internal" {
			log.Error().
				Err(err).
				Str("method", c.Request().Method).
				Str("path", c.Path()).
				Msg("unhandled error")
		}
		metrics.ErrorResponsesTotal.WithLabelValues(kind, strconv.Itoa(code)).Inc()

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, body)
	}
}

func resolveError(err error) (code int, msg, kind string) {
	if de, ok := domain.AsError(err); ok {
		return de.Status, de.Message, string(de.Kind)
	}

	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message), "http"
	}

	return http.StatusInternalServerError, internalErrorMessage, "internal"
}
