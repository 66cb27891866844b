// Package server provides the admin HTTP server exposing health,
// readiness, metrics, and usage endpoints.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"telepace/telepace/pkg/config"
	"telepace/telepace/pkg/limits"
	"telepace/telepace/pkg/telemetry/health"
	"telepace/telepace/pkg/telemetry/logging"
	"telepace/telepace/pkg/telemetry/metrics"
)

// shutdownTimeout bounds graceful shutdown.
const shutdownTimeout = 10 * time.Second

// Server is the admin HTTP server. It exposes:
//
//	/healthz  - liveness probe
//	/readyz   - readiness probe, degraded when the limiter is unhealthy
//	/metrics  - Prometheus exposition (when metrics are enabled)
//	/stats    - JSON usage snapshot
//	/version  - build information
type Server struct {
	config     *config.AdminConfig
	limiter    *limits.Limiter
	checker    *health.Checker
	collector  *metrics.Collector
	metricsCfg *config.MetricsConfig
	logger     *logging.Logger

	version   string
	commit    string
	buildDate string

	httpServer   *http.Server
	shutdownOnce sync.Once
	mu           sync.RWMutex
	isRunning    bool
}

// NewServer creates an admin server. The collector may be nil when
// metrics are disabled.
func NewServer(cfg *config.AdminConfig, metricsCfg *config.MetricsConfig, limiter *limits.Limiter, checker *health.Checker, collector *metrics.Collector, logger *logging.Logger) *Server {
	return &Server{
		config:     cfg,
		limiter:    limiter,
		checker:    checker,
		collector:  collector,
		metricsCfg: metricsCfg,
		logger:     logger,
	}
}

// SetBuildInfo attaches the build information served at /version.
func (s *Server) SetBuildInfo(version, commit, buildDate string) {
	s.version = version
	s.commit = commit
	s.buildDate = buildDate
}

// Start starts the HTTP server and blocks until the context is cancelled
// or the listener fails.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return fmt.Errorf("server is already running")
	}
	s.isRunning = true
	s.mu.Unlock()

	s.httpServer = &http.Server{
		Addr:         s.config.ListenAddress,
		Handler:      s.setupRoutes(),
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}

	errChan := make(chan error, 1)
	go func() {
		s.logger.Info("admin server starting", "address", s.config.ListenAddress)

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("admin server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("context cancelled, stopping admin server")
		return s.Shutdown(context.Background())
	case err := <-errChan:
		return err
	}
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		s.mu.Lock()
		if !s.isRunning {
			s.mu.Unlock()
			return
		}
		s.mu.Unlock()

		shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
		defer cancel()

		if s.httpServer != nil {
			if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
				s.logger.Error("error during admin server shutdown", "error", err)
				shutdownErr = fmt.Errorf("admin server shutdown error: %w", err)
			}
		}

		s.mu.Lock()
		s.isRunning = false
		s.mu.Unlock()

		s.logger.Info("admin server stopped")
	})

	return shutdownErr
}

// IsRunning returns true if the server is running.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// Handler returns the configured HTTP handler, for tests.
func (s *Server) Handler() http.Handler {
	return s.setupRoutes()
}

// setupRoutes configures HTTP routes.
func (s *Server) setupRoutes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", health.LivenessHandler(s.checker))
	mux.HandleFunc("/readyz", health.ReadinessHandler(s.checker))
	mux.HandleFunc("/stats", s.statsHandler)
	mux.HandleFunc("/version", health.VersionHandler(s.version, s.commit, s.buildDate))

	if s.collector != nil && s.metricsCfg != nil && s.metricsCfg.Enabled {
		mux.Handle(s.metricsCfg.Path, s.collector.Handler())
	}

	return mux
}

// statsHandler serves the current usage snapshot as JSON.
func (s *Server) statsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	snap := s.limiter.Stats()

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(snap); err != nil {
		http.Error(w, "failed to encode stats", http.StatusInternalServerError)
	}
}
