package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"telepace/telepace/pkg/config"
	"telepace/telepace/pkg/limits"
	"telepace/telepace/pkg/telemetry/health"
	"telepace/telepace/pkg/telemetry/logging"
	"telepace/telepace/pkg/telemetry/metrics"
)

func testServer(t *testing.T, checker *health.Checker, collector *metrics.Collector, metricsEnabled bool) (*Server, *limits.Limiter) {
	t.Helper()

	limiter := limits.New(limits.DisabledConfig())
	adminCfg := &config.AdminConfig{
		Enabled:       true,
		ListenAddress: "127.0.0.1:0",
		ReadTimeout:   time.Second,
		WriteTimeout:  time.Second,
		IdleTimeout:   time.Second,
	}
	metricsCfg := &config.MetricsConfig{
		Enabled: metricsEnabled,
		Path:    "/metrics",
	}

	if checker == nil {
		checker = health.New(0)
	}

	return NewServer(adminCfg, metricsCfg, limiter, checker, collector, logging.Wrap(nil)), limiter
}

// ============================================================================
// Endpoint Tests
// ============================================================================

func TestServer_Healthz(t *testing.T) {
	srv, _ := testServer(t, nil, nil, false)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d", rec.Code)
	}

	var status health.Status
	if err := json.NewDecoder(rec.Body).Decode(&status); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if status.Status != "ok" {
		t.Errorf("Expected ok, got %s", status.Status)
	}
}

func TestServer_Readyz(t *testing.T) {
	checker := health.New(0)
	checker.RegisterCheck("limiter", func(ctx context.Context) error { return nil })
	srv, _ := testServer(t, checker, nil, false)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d", rec.Code)
	}
}

func TestServer_ReadyzDegraded(t *testing.T) {
	checker := health.New(0)
	checker.RegisterCheck("limiter", func(ctx context.Context) error {
		return errors.New("flood rate exceeded")
	})
	srv, _ := testServer(t, checker, nil, false)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("Expected 503 when degraded, got %d", rec.Code)
	}
}

func TestServer_Stats(t *testing.T) {
	srv, limiter := testServer(t, nil, nil, false)

	limiter.Tracker().RecordRequest()
	limiter.Tracker().RecordSuccess()

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/stats", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var snap limits.Snapshot
	if err := json.NewDecoder(rec.Body).Decode(&snap); err != nil {
		t.Fatalf("Failed to decode snapshot: %v", err)
	}
	if snap.TotalRequests != 1 || snap.SuccessfulRequests != 1 {
		t.Errorf("Unexpected snapshot counters: %+v", snap)
	}
}

func TestServer_StatsMethodNotAllowed(t *testing.T) {
	srv, _ := testServer(t, nil, nil, false)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/stats", nil))

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("Expected 405, got %d", rec.Code)
	}
}

func TestServer_MetricsEnabled(t *testing.T) {
	srv, _ := testServer(t, nil, metrics.NewCollector(), true)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("Expected 200 from metrics endpoint, got %d", rec.Code)
	}
}

func TestServer_MetricsDisabled(t *testing.T) {
	srv, _ := testServer(t, nil, nil, false)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404 when metrics disabled, got %d", rec.Code)
	}
}

func TestServer_Version(t *testing.T) {
	srv, _ := testServer(t, nil, nil, false)
	srv.SetBuildInfo("0.1.0", "abc1234", "2026-01-01")

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/version", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var info map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&info); err != nil {
		t.Fatalf("Failed to decode version info: %v", err)
	}
	if info["version"] != "0.1.0" {
		t.Errorf("Unexpected version: %v", info)
	}
}

// ============================================================================
// Lifecycle Tests
// ============================================================================

func TestServer_StartShutdown(t *testing.T) {
	srv, _ := testServer(t, nil, nil, false)

	ctx, cancel := context.WithCancel(context.Background())
	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start(ctx)
	}()

	deadline := time.Now().Add(2 * time.Second)
	for !srv.IsRunning() && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if !srv.IsRunning() {
		t.Fatal("Server did not start")
	}

	cancel()

	select {
	case err := <-errChan:
		if err != nil {
			t.Errorf("Start returned error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Server did not shut down")
	}

	if srv.IsRunning() {
		t.Error("Expected server stopped")
	}
}
