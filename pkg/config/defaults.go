package config

import "time"

// Default values for configuration fields.
const (
	// Telegram defaults
	DefaultSessionFile = "data/telepace.session"

	// Limits defaults (match the platform's documented safe rates)
	DefaultGlobalPerMinute   = 30
	DefaultChatPerSecond     = 1
	DefaultGroupPerMinute    = 20
	DefaultResolveDailyLimit = 200
	DefaultMaxRetries        = 3
	DefaultMaxFloodWait      = 5 * time.Minute
	DefaultMaxConcurrent     = 5
	DefaultMinDelay          = 100 * time.Millisecond
	DefaultMaxDelay          = 500 * time.Millisecond

	// Storage defaults
	DefaultStorageBackend = "memory"
	DefaultSQLitePath     = "data/telepace.db"

	// Report defaults
	DefaultReportSchedule = "0 * * * *"

	// Telemetry defaults
	DefaultLoggingLevel  = "info"
	DefaultLoggingFormat = "json"
	DefaultMetricsPath   = "/metrics"

	// Admin defaults
	DefaultAdminListenAddress = "127.0.0.1:8090"
	DefaultAdminReadTimeout   = 10 * time.Second
	DefaultAdminWriteTimeout  = 10 * time.Second
	DefaultAdminIdleTimeout   = 60 * time.Second
)

// ApplyDefaults applies default values to a Config struct.
// It sets defaults for any fields that have zero values.
// This function is idempotent and safe to call multiple times.
func ApplyDefaults(cfg *Config) {
	// Telegram defaults
	if cfg.Telegram.SessionFile == "" {
		cfg.Telegram.SessionFile = DefaultSessionFile
	}

	// Limits defaults. Shaping is on unless the file disables it.
	if cfg.Limits.Enabled == nil {
		enabled := true
		cfg.Limits.Enabled = &enabled
	}
	if cfg.Limits.GlobalPerMinute == 0 {
		cfg.Limits.GlobalPerMinute = DefaultGlobalPerMinute
	}
	if cfg.Limits.ChatPerSecond == 0 {
		cfg.Limits.ChatPerSecond = DefaultChatPerSecond
	}
	if cfg.Limits.GroupPerMinute == 0 {
		cfg.Limits.GroupPerMinute = DefaultGroupPerMinute
	}
	if cfg.Limits.ResolveDailyLimit == 0 {
		cfg.Limits.ResolveDailyLimit = DefaultResolveDailyLimit
	}
	if cfg.Limits.MaxRetries == 0 {
		cfg.Limits.MaxRetries = DefaultMaxRetries
	}
	if cfg.Limits.MaxFloodWait == 0 {
		cfg.Limits.MaxFloodWait = DefaultMaxFloodWait
	}
	if cfg.Limits.MaxConcurrent == 0 {
		cfg.Limits.MaxConcurrent = DefaultMaxConcurrent
	}
	if cfg.Limits.MinDelay == 0 {
		cfg.Limits.MinDelay = DefaultMinDelay
	}
	if cfg.Limits.MaxDelay == 0 {
		cfg.Limits.MaxDelay = DefaultMaxDelay
	}

	// Storage defaults
	if cfg.Storage.Backend == "" {
		cfg.Storage.Backend = DefaultStorageBackend
	}
	if cfg.Storage.SQLite.Path == "" {
		cfg.Storage.SQLite.Path = DefaultSQLitePath
	}

	// Report defaults
	if cfg.Report.Schedule == "" {
		cfg.Report.Schedule = DefaultReportSchedule
	}

	// Telemetry defaults
	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLoggingLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLoggingFormat
	}
	if cfg.Telemetry.Metrics.Path == "" {
		cfg.Telemetry.Metrics.Path = DefaultMetricsPath
	}

	// Admin defaults
	if cfg.Admin.ListenAddress == "" {
		cfg.Admin.ListenAddress = DefaultAdminListenAddress
	}
	if cfg.Admin.ReadTimeout == 0 {
		cfg.Admin.ReadTimeout = DefaultAdminReadTimeout
	}
	if cfg.Admin.WriteTimeout == 0 {
		cfg.Admin.WriteTimeout = DefaultAdminWriteTimeout
	}
	if cfg.Admin.IdleTimeout == 0 {
		cfg.Admin.IdleTimeout = DefaultAdminIdleTimeout
	}
}
