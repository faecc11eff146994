package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/todoapp/todo-service/internal/core/domain"
	"github.com/todoapp/todo-service/internal/pkg/clock"
)

var now = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func TestRespond_Taxonomy(t *testing.T) {
	cases := []struct {
		err     error
		code    int
		message string
	}{
		{domain.ErrMissingToken, http.StatusUnauthorized, "Authentication Failed"},
		{domain.ErrInvalidToken, http.StatusUnauthorized, "Authentication Failed"},
		{domain.ErrExpiredToken, http.StatusUnauthorized, "Token has expired"},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized, "Could not validate user."},
		{domain.ErrActorNotFound, http.StatusUnauthorized, "Authentication Failed"},
		{domain.ErrForbidden, http.StatusForbidden, "Admin access required"},
		{domain.ErrRecordNotFound.WithMessage("Todo not found"), http.StatusNotFound, "Todo not found"},
		{domain.ErrRecordInvalid, http.StatusUnprocessableEntity, "Record is invalid"},
		{fmt.Errorf("wrapped: %w", domain.ErrForbidden), http.StatusForbidden, "Admin access required"},
	}
	for _, tc := range cases {
		code, body := Respond(tc.err, now)
		if code != tc.code || body.StatusCode != tc.code || body.Message != tc.message {
			t.Fatalf("%v: expected %d %q, got %d %+v", tc.err, tc.code, tc.message, code, body)
		}
		if body.Timestamp != "2024-05-01T12:00:00Z" {
			t.Fatalf("unexpected timestamp: %s", body.Timestamp)
		}
	}
}

func TestRespond_NonTaxonomy(t *testing.T) {
	code, body := Respond(echo.NewHTTPError(http.StatusBadRequest, "invalid payload"), now)
	if code != http.StatusBadRequest || body.Message != "invalid payload" {
		t.Fatalf("unexpected echo error mapping: %d %+v", code, body)
	}

	code, body = Respond(errors.New("mongo: connection refused"), now)
	if code != http.StatusInternalServerError || body.Message != "Internal server error" {
		t.Fatalf("unexpected internal mapping: %d %+v", code, body)
	}
}

func TestHTTPErrorHandler_RendersEnvelope(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/admin/todos", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop(), clock.NewMockClock(now))(domain.ErrForbidden, c)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if body["message"] != "Admin access required" || body["status_code"] != float64(403) || body["timestamp"] != "2024-05-01T12:00:00Z" {
		t.Fatalf("unexpected body: %v", body)
	}
	if len(body) != 3 {
		t.Fatalf("expected exactly three fields, got %v", body)
	}
}

func TestHTTPErrorHandler_SkipsCommittedResponse(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	_ = c.NoContent(http.StatusNoContent)

	NewHTTPErrorHandler(zerolog.Nop(), nil)(domain.ErrForbidden, c)

	if rec.Code != http.StatusNoContent || rec.Body.Len() != 0 {
		t.Fatalf("expected untouched response, got %d %q", rec.Code, rec.Body.String())
	}
}
