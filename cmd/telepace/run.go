package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"telepace/telepace/pkg/cli"
	"telepace/telepace/pkg/config"
	"telepace/telepace/pkg/limits"
	"telepace/telepace/pkg/limits/report"
	"telepace/telepace/pkg/limits/storage"
	"telepace/telepace/pkg/server"
	"telepace/telepace/pkg/telemetry/health"
	"telepace/telepace/pkg/telemetry/logging"
	"telepace/telepace/pkg/telemetry/metrics"
)

var runFlags struct {
	logLevel string
	watch    bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the telepace engine",
	Long: `Start the telepace engine with the specified configuration.

The engine restores persisted usage counters, starts the report
scheduler and admin HTTP server, and shapes all platform traffic until
stopped.

Examples:
  # Start with default config
  telepace run

  # Start with custom config
  telepace run --config /etc/telepace/config.yaml

  # Reload configuration on file change
  telepace run --watch`,
	RunE: runEngine,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&runFlags.logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	runCmd.Flags().BoolVar(&runFlags.watch, "watch", false, "reload configuration on file change")
}

func runEngine(cmd *cobra.Command, args []string) error {
	// Load configuration
	if err := config.Initialize(cfgFile); err != nil {
		return cli.NewConfigError("", fmt.Sprintf("failed to load config: %v", err))
	}
	cfg := config.GetConfig()

	// Apply flag overrides
	if runFlags.logLevel != "" {
		cfg.Telemetry.Logging.Level = runFlags.logLevel
	}

	logger, err := logging.New(logging.Config{
		Level:  cfg.Telemetry.Logging.Level,
		Format: cfg.Telemetry.Logging.Format,
		Redact: cfg.Telemetry.Logging.Redact,
	})
	if err != nil {
		return cli.NewConfigError("telemetry.logging", err.Error())
	}

	fmt.Printf("Telepace v%s\n", Version)
	fmt.Printf("Loading configuration from: %s\n", cfgFile)
	fmt.Println("✓ Configuration loaded")

	// Cancelled on SIGINT/SIGTERM
	ctx := cli.SetupSignalHandler()

	// Metrics
	var collector *metrics.Collector
	opts := []limits.Option{limits.WithLogger(logger)}
	if cfg.Telemetry.Metrics.Enabled {
		collector = metrics.NewCollector()
		opts = append(opts, limits.WithMetrics(limits.NewMetrics(collector.Registerer())))
	}

	limiter := limits.New(cfg.Limits.ToLimits(), opts...)

	// Storage backend and counter restore
	backend, err := newBackend(&cfg.Storage)
	if err != nil {
		return cli.NewCommandError("run", err)
	}
	defer backend.Close()

	snap, err := backend.LoadSnapshot(ctx)
	if err != nil {
		logger.Warn("failed to load usage snapshot", "error", err)
	} else if snap != nil {
		limiter.Tracker().Restore(*snap)
		logger.Info("usage counters restored",
			"total_requests", snap.TotalRequests,
			"resolve_requests_today", snap.ResolveRequestsToday,
		)
	}
	fmt.Printf("✓ Storage initialized (%s)\n", cfg.Storage.Backend)

	// Report scheduler
	if cfg.Report.Enabled {
		sched := report.NewScheduler(limiter, backend, cfg.Report.Schedule, logger)
		if err := sched.Start(ctx); err != nil {
			return cli.NewCommandError("run", err)
		}
		defer sched.Stop()

		if next := sched.NextRun(); next != nil {
			logger.Debug("report scheduler started", "next_run", next)
		}
		fmt.Printf("✓ Report scheduler started (%s)\n", cfg.Report.Schedule)
	}

	// Configuration hot reload
	if runFlags.watch {
		watcher, err := config.NewFileWatcher(cfgFile, logger)
		if err != nil {
			return cli.NewCommandError("run", err)
		}
		go func() {
			// Limiter ceilings are fixed at construction; a reload only
			// updates the singleton for components that re-read it.
			if err := watcher.Watch(ctx, nil); err != nil {
				logger.Error("configuration watcher failed", "error", err)
			}
		}()
		defer watcher.Stop()
	}

	// Health checks
	checker := health.New(5 * time.Second)
	checker.RegisterCheck("limiter", func(ctx context.Context) error {
		if !limiter.Healthy() {
			return errors.New("limiter unhealthy: elevated flood or failure rate")
		}
		return nil
	})

	// Admin server
	errChan := make(chan error, 1)
	if cfg.Admin.Enabled {
		srv := server.NewServer(&cfg.Admin, &cfg.Telemetry.Metrics, limiter, checker, collector, logger)
		srv.SetBuildInfo(Version, GitCommit, BuildDate)
		go func() {
			if err := srv.Start(ctx); err != nil {
				errChan <- err
			}
		}()

		fmt.Printf("✓ Admin server listening on %s\n", cfg.Admin.ListenAddress)
		fmt.Printf("  Health:  http://%s/healthz\n", cfg.Admin.ListenAddress)
		if cfg.Telemetry.Metrics.Enabled {
			fmt.Printf("  Metrics: http://%s%s\n", cfg.Admin.ListenAddress, cfg.Telemetry.Metrics.Path)
		}
	}

	fmt.Println("\nPress Ctrl+C to stop")

	select {
	case err := <-errChan:
		return cli.NewCommandError("run", err)
	case <-ctx.Done():
	}

	fmt.Println("\nShutting down gracefully...")
	limiter.LogSummary()

	// Persist final counters so the daily resolve quota survives restart
	saveCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := backend.SaveSnapshot(saveCtx, limiter.Stats()); err != nil {
		logger.Error("failed to persist final snapshot", "error", err)
	}

	fmt.Println("✓ Engine stopped")
	return nil
}

// newBackend builds the configured storage backend.
func newBackend(cfg *config.StorageConfig) (storage.Backend, error) {
	switch cfg.Backend {
	case "sqlite":
		return storage.NewSQLiteBackend(cfg.SQLite.Path)
	case "memory":
		return storage.NewMemoryBackend(), nil
	default:
		return nil, fmt.Errorf("unsupported storage backend: %s", cfg.Backend)
	}
}
