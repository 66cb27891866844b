package config

import (
	"time"

	"telepace/telepace/pkg/limits"
)

// Config is the root configuration structure for telepace.
type Config struct {
	// Telegram contains platform API credentials and session settings
	Telegram TelegramConfig `yaml:"telegram"`

	// Limits contains admission and pacing parameters
	Limits LimitsConfig `yaml:"limits"`

	// Storage contains stats snapshot persistence settings
	Storage StorageConfig `yaml:"storage"`

	// Report contains the periodic usage report schedule
	Report ReportConfig `yaml:"report"`

	// Telemetry contains logging and metrics settings
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Admin contains admin HTTP server settings
	Admin AdminConfig `yaml:"admin"`
}

// TelegramConfig contains platform API credentials and session settings.
type TelegramConfig struct {
	// APIID is the application identifier issued by the platform
	APIID int `yaml:"api_id"`

	// APIHash is the application secret issued by the platform
	APIHash string `yaml:"api_hash"`

	// SessionFile is the path to the persisted session
	SessionFile string `yaml:"session_file"`
}

// LimitsConfig contains admission and pacing parameters.
type LimitsConfig struct {
	// Enabled controls whether traffic shaping is active. Nil means unset;
	// ApplyDefaults turns it on, so shaping must be disabled explicitly.
	Enabled *bool `yaml:"enabled"`

	// GlobalPerMinute is the process-wide request ceiling per minute
	GlobalPerMinute int `yaml:"global_per_minute"`

	// ChatPerSecond is the per-chat request ceiling per second
	ChatPerSecond int `yaml:"chat_per_second"`

	// GroupPerMinute is the per-group request ceiling per minute for
	// group-directed methods
	GroupPerMinute int `yaml:"group_per_minute"`

	// ResolveDailyLimit is the daily quota for resolve-class methods
	ResolveDailyLimit int `yaml:"resolve_daily_limit"`

	// MaxRetries is the number of retries after flood errors
	MaxRetries int `yaml:"max_retries"`

	// MaxFloodWait is the largest server-mandated wait worth honoring
	MaxFloodWait time.Duration `yaml:"max_flood_wait"`

	// MaxConcurrent is the number of simultaneous in-flight requests
	MaxConcurrent int `yaml:"max_concurrent"`

	// MinDelay and MaxDelay bound the randomized pacing delay
	MinDelay time.Duration `yaml:"min_delay"`
	MaxDelay time.Duration `yaml:"max_delay"`
}

// IsEnabled reports whether traffic shaping is active. An unset field
// counts as enabled.
func (c *LimitsConfig) IsEnabled() bool {
	return c.Enabled == nil || *c.Enabled
}

// ToLimits converts the configuration section into limiter parameters.
// A disabled section yields the effectively unlimited preset.
func (c *LimitsConfig) ToLimits() limits.Config {
	if !c.IsEnabled() {
		return limits.DisabledConfig()
	}

	return limits.Config{
		GlobalPerMinute:   c.GlobalPerMinute,
		ChatPerSecond:     c.ChatPerSecond,
		GroupPerMinute:    c.GroupPerMinute,
		ResolveDailyLimit: c.ResolveDailyLimit,
		MaxRetries:        c.MaxRetries,
		MaxFloodWait:      c.MaxFloodWait,
		MaxConcurrent:     c.MaxConcurrent,
		MinDelay:          c.MinDelay,
		MaxDelay:          c.MaxDelay,
	}
}

// StorageConfig contains stats snapshot persistence settings.
type StorageConfig struct {
	// Backend selects the persistence backend ("memory" or "sqlite")
	Backend string `yaml:"backend"`

	// SQLite contains SQLite-specific settings
	SQLite SQLiteConfig `yaml:"sqlite"`
}

// SQLiteConfig contains SQLite backend settings.
type SQLiteConfig struct {
	// Path is the database file path
	Path string `yaml:"path"`
}

// ReportConfig contains the periodic usage report schedule.
type ReportConfig struct {
	// Enabled controls whether periodic reporting runs
	Enabled bool `yaml:"enabled"`

	// Schedule is a cron expression for when reports run
	Schedule string `yaml:"schedule"`
}

// TelemetryConfig contains logging and metrics settings.
type TelemetryConfig struct {
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error
	Level string `yaml:"level"`

	// Format is the output format: json or text
	Format string `yaml:"format"`

	// Redact controls whether sensitive values are masked
	Redact bool `yaml:"redact"`
}

// MetricsConfig contains metrics settings.
type MetricsConfig struct {
	// Enabled controls whether the /metrics endpoint is exposed
	Enabled bool `yaml:"enabled"`

	// Path is the exposition endpoint path
	Path string `yaml:"path"`
}

// AdminConfig contains admin HTTP server settings.
type AdminConfig struct {
	// Enabled controls whether the admin server runs
	Enabled bool `yaml:"enabled"`

	// ListenAddress is the host:port the admin server binds to
	ListenAddress string `yaml:"listen_address"`

	// ReadTimeout, WriteTimeout, and IdleTimeout configure the HTTP server
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	IdleTimeout  time.Duration `yaml:"idle_timeout"`
}
