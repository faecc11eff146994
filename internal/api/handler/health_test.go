package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
)

func TestHealthHandler_Liveness(t *testing.T) {
	e := newTestEcho()
	c, rec := newJSONContext(e, http.MethodGet, "/health", "")
	if err := NewHealthHandler().Liveness(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestHealthDependenciesHandler_Readiness(t *testing.T) {
	ok := DependencyCheck{Name: "mongodb", Check: func(context.Context) error { return nil }}
	down := DependencyCheck{Name: "redis", Check: func(context.Context) error { return errors.New("connection refused") }}

	e := newTestEcho()
	c, rec := newJSONContext(e, http.MethodGet, "/health/ready", "")
	if err := NewHealthDependenciesHandler(ok).Readiness(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	c, rec = newJSONContext(e, http.MethodGet, "/health/ready", "")
	if err := NewHealthDependenciesHandler(ok, down).Readiness(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
	var resp readinessResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Status != "degraded" || resp.Dependencies["redis"].Status != "unhealthy" || resp.Dependencies["mongodb"].Status != "ok" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}
