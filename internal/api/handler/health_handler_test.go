package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"
)

func TestHealthHandler_Liveness(t *testing.T) {
	c, rec := newContext(http.MethodGet, "/health", "", nil)
	if err := NewHealthHandler().Liveness(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	wantStatus(t, rec, http.StatusOK)
}

func TestReadinessHandler(t *testing.T) {
	ok := Probe{Name: "mongodb", Check: func(context.Context) error { return nil }}
	down := Probe{Name: "redis", Check: func(context.Context) error { return errors.New("connection refused") }}

	t.Run("all up", func(t *testing.T) {
		c, rec := newContext(http.MethodGet, "/health/ready", "", nil)
		if err := NewReadinessHandler(ok).Readiness(c); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		wantStatus(t, rec, http.StatusOK)
	})

	t.Run("one down", func(t *testing.T) {
		c, rec := newContext(http.MethodGet, "/health/ready", "", nil)
		if err := NewReadinessHandler(ok, down).Readiness(c); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		wantStatus(t, rec, http.StatusServiceUnavailable)

		var resp readinessResponse
		decode(t, rec, &resp)
		if resp.Status != "degraded" {
			t.Fatalf("status = %q", resp.Status)
		}
		if resp.Dependencies["mongodb"].Status != "ok" || resp.Dependencies["redis"].Error != "connection refused" {
			t.Fatalf("unexpected dependencies: %+v", resp.Dependencies)
		}
	})
}
