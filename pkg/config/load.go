package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from a YAML file at the specified path.
// It applies default values, validates the configuration, and returns any
// errors. Environment variables are not consulted; use
// LoadConfigWithEnvOverrides for that.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration from a YAML file and
// applies environment variable overrides. Environment variables follow
// the naming convention TELEPACE_SECTION_FIELD (e.g.,
// TELEPACE_LIMITS_GLOBAL_PER_MINUTE) and always take precedence over
// file-based configuration.
//
// The loading sequence is:
//  1. Load YAML from file
//  2. Apply default values
//  3. Apply environment variable overrides
//  4. Validate final configuration
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides to the
// configuration. Environment variables use the format TELEPACE_SECTION_FIELD.
func applyEnvOverrides(cfg *Config) {
	// Telegram overrides
	if val := os.Getenv("TELEPACE_TELEGRAM_API_ID"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Telegram.APIID = i
		}
	}
	if val := os.Getenv("TELEPACE_TELEGRAM_API_HASH"); val != "" {
		cfg.Telegram.APIHash = val
	}
	if val := os.Getenv("TELEPACE_TELEGRAM_SESSION_FILE"); val != "" {
		cfg.Telegram.SessionFile = val
	}

	// Limits overrides
	if val := os.Getenv("TELEPACE_LIMITS_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Limits.Enabled = &b
		}
	}
	if val := os.Getenv("TELEPACE_LIMITS_GLOBAL_PER_MINUTE"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Limits.GlobalPerMinute = i
		}
	}
	if val := os.Getenv("TELEPACE_LIMITS_CHAT_PER_SECOND"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Limits.ChatPerSecond = i
		}
	}
	if val := os.Getenv("TELEPACE_LIMITS_GROUP_PER_MINUTE"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Limits.GroupPerMinute = i
		}
	}
	if val := os.Getenv("TELEPACE_LIMITS_RESOLVE_DAILY_LIMIT"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Limits.ResolveDailyLimit = i
		}
	}
	if val := os.Getenv("TELEPACE_LIMITS_MAX_RETRIES"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Limits.MaxRetries = i
		}
	}
	if val := os.Getenv("TELEPACE_LIMITS_MAX_FLOOD_WAIT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Limits.MaxFloodWait = d
		}
	}
	if val := os.Getenv("TELEPACE_LIMITS_MAX_CONCURRENT"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Limits.MaxConcurrent = i
		}
	}
	if val := os.Getenv("TELEPACE_LIMITS_MIN_DELAY"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Limits.MinDelay = d
		}
	}
	if val := os.Getenv("TELEPACE_LIMITS_MAX_DELAY"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Limits.MaxDelay = d
		}
	}

	// Storage overrides
	if val := os.Getenv("TELEPACE_STORAGE_BACKEND"); val != "" {
		cfg.Storage.Backend = val
	}
	if val := os.Getenv("TELEPACE_STORAGE_SQLITE_PATH"); val != "" {
		cfg.Storage.SQLite.Path = val
	}

	// Report overrides
	if val := os.Getenv("TELEPACE_REPORT_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Report.Enabled = b
		}
	}
	if val := os.Getenv("TELEPACE_REPORT_SCHEDULE"); val != "" {
		cfg.Report.Schedule = val
	}

	// Telemetry overrides
	if val := os.Getenv("TELEPACE_TELEMETRY_LOGGING_LEVEL"); val != "" {
		cfg.Telemetry.Logging.Level = val
	}
	if val := os.Getenv("TELEPACE_TELEMETRY_LOGGING_FORMAT"); val != "" {
		cfg.Telemetry.Logging.Format = val
	}
	if val := os.Getenv("TELEPACE_TELEMETRY_LOGGING_REDACT"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Telemetry.Logging.Redact = b
		}
	}
	if val := os.Getenv("TELEPACE_TELEMETRY_METRICS_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Telemetry.Metrics.Enabled = b
		}
	}
	if val := os.Getenv("TELEPACE_TELEMETRY_METRICS_PATH"); val != "" {
		cfg.Telemetry.Metrics.Path = val
	}

	// Admin overrides
	if val := os.Getenv("TELEPACE_ADMIN_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Admin.Enabled = b
		}
	}
	if val := os.Getenv("TELEPACE_ADMIN_LISTEN_ADDRESS"); val != "" {
		cfg.Admin.ListenAddress = val
	}
	if val := os.Getenv("TELEPACE_ADMIN_READ_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Admin.ReadTimeout = d
		}
	}
	if val := os.Getenv("TELEPACE_ADMIN_WRITE_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Admin.WriteTimeout = d
		}
	}
	if val := os.Getenv("TELEPACE_ADMIN_IDLE_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Admin.IdleTimeout = d
		}
	}
}
