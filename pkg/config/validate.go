package config

import (
	"fmt"
	"strings"

	"github.com/robfig/cron/v3"
)

// FieldError represents a validation error for a specific configuration field.
type FieldError struct {
	// Field is the dotted path to the configuration field (e.g., "limits.max_retries").
	Field string

	// Message is a human-readable error message.
	Message string
}

// Error returns the error message for this field error.
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError represents one or more validation errors in a configuration.
// It implements the error interface and provides access to all field errors.
type ValidationError struct {
	// Errors contains all validation errors found in the configuration.
	Errors []FieldError
}

// Error returns a formatted string containing all validation errors.
func (e ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "configuration validation failed"
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("configuration validation failed: %s", e.Errors[0].Error())
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("configuration validation failed with %d errors:\n", len(e.Errors)))
	for _, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
	}
	return sb.String()
}

// Validate validates the entire configuration and returns a ValidationError
// if any validation rules fail. All validation errors are collected and
// returned together.
func Validate(cfg *Config) error {
	var errs []FieldError

	errs = append(errs, validateTelegram(&cfg.Telegram)...)
	errs = append(errs, validateLimits(&cfg.Limits)...)
	errs = append(errs, validateStorage(&cfg.Storage)...)
	errs = append(errs, validateReport(&cfg.Report)...)
	errs = append(errs, validateTelemetry(&cfg.Telemetry)...)
	errs = append(errs, validateAdmin(&cfg.Admin)...)

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}

	return nil
}

// validateTelegram validates platform credential configuration.
func validateTelegram(cfg *TelegramConfig) []FieldError {
	var errs []FieldError

	if cfg.APIID < 0 {
		errs = append(errs, FieldError{
			Field:   "telegram.api_id",
			Message: "api_id must be non-negative",
		})
	}
	if cfg.SessionFile == "" {
		errs = append(errs, FieldError{
			Field:   "telegram.session_file",
			Message: "session file path is required",
		})
	}

	return errs
}

// validateLimits validates admission and pacing configuration.
func validateLimits(cfg *LimitsConfig) []FieldError {
	var errs []FieldError

	if cfg.GlobalPerMinute < 1 {
		errs = append(errs, FieldError{
			Field:   "limits.global_per_minute",
			Message: "global per-minute limit must be at least 1",
		})
	}
	if cfg.ChatPerSecond < 1 {
		errs = append(errs, FieldError{
			Field:   "limits.chat_per_second",
			Message: "per-chat per-second limit must be at least 1",
		})
	}
	if cfg.GroupPerMinute < 1 {
		errs = append(errs, FieldError{
			Field:   "limits.group_per_minute",
			Message: "per-group per-minute limit must be at least 1",
		})
	}
	if cfg.ResolveDailyLimit < 1 {
		errs = append(errs, FieldError{
			Field:   "limits.resolve_daily_limit",
			Message: "daily resolve limit must be at least 1",
		})
	}
	if cfg.MaxRetries < 0 {
		errs = append(errs, FieldError{
			Field:   "limits.max_retries",
			Message: "max retries must be non-negative",
		})
	}
	if cfg.MaxFloodWait < 0 {
		errs = append(errs, FieldError{
			Field:   "limits.max_flood_wait",
			Message: "max flood wait must be non-negative",
		})
	}
	if cfg.MaxConcurrent < 1 {
		errs = append(errs, FieldError{
			Field:   "limits.max_concurrent",
			Message: "max concurrent must be at least 1",
		})
	}
	if cfg.MinDelay < 0 {
		errs = append(errs, FieldError{
			Field:   "limits.min_delay",
			Message: "min delay must be non-negative",
		})
	}
	if cfg.MaxDelay < cfg.MinDelay {
		errs = append(errs, FieldError{
			Field:   "limits.max_delay",
			Message: "max delay must be greater than or equal to min delay",
		})
	}

	return errs
}

// validateStorage validates persistence configuration.
func validateStorage(cfg *StorageConfig) []FieldError {
	var errs []FieldError

	switch cfg.Backend {
	case "memory", "sqlite":
	default:
		errs = append(errs, FieldError{
			Field:   "storage.backend",
			Message: fmt.Sprintf("unknown backend %q (must be memory or sqlite)", cfg.Backend),
		})
	}

	if cfg.Backend == "sqlite" && cfg.SQLite.Path == "" {
		errs = append(errs, FieldError{
			Field:   "storage.sqlite.path",
			Message: "sqlite path is required when backend is sqlite",
		})
	}

	return errs
}

// validateReport validates the report schedule.
func validateReport(cfg *ReportConfig) []FieldError {
	var errs []FieldError

	if cfg.Enabled {
		if _, err := cron.ParseStandard(cfg.Schedule); err != nil {
			errs = append(errs, FieldError{
				Field:   "report.schedule",
				Message: fmt.Sprintf("invalid cron expression %q: %v", cfg.Schedule, err),
			})
		}
	}

	return errs
}

// validateTelemetry validates logging and metrics configuration.
func validateTelemetry(cfg *TelemetryConfig) []FieldError {
	var errs []FieldError

	switch cfg.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.level",
			Message: fmt.Sprintf("unknown level %q (must be debug, info, warn, or error)", cfg.Logging.Level),
		})
	}

	switch cfg.Logging.Format {
	case "json", "text":
	default:
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.format",
			Message: fmt.Sprintf("unknown format %q (must be json or text)", cfg.Logging.Format),
		})
	}

	if cfg.Metrics.Enabled && !strings.HasPrefix(cfg.Metrics.Path, "/") {
		errs = append(errs, FieldError{
			Field:   "telemetry.metrics.path",
			Message: "metrics path must start with /",
		})
	}

	return errs
}

// validateAdmin validates admin server configuration.
func validateAdmin(cfg *AdminConfig) []FieldError {
	var errs []FieldError

	if cfg.Enabled && cfg.ListenAddress == "" {
		errs = append(errs, FieldError{
			Field:   "admin.listen_address",
			Message: "listen address is required when admin server is enabled",
		})
	}
	if cfg.ReadTimeout < 0 {
		errs = append(errs, FieldError{
			Field:   "admin.read_timeout",
			Message: "read timeout must be non-negative",
		})
	}
	if cfg.WriteTimeout < 0 {
		errs = append(errs, FieldError{
			Field:   "admin.write_timeout",
			Message: "write timeout must be non-negative",
		})
	}
	if cfg.IdleTimeout < 0 {
		errs = append(errs, FieldError{
			Field:   "admin.idle_timeout",
			Message: "idle timeout must be non-negative",
		})
	}

	return errs
}
