// Package config provides configuration loading, validation, and hot
// reloading for telepace.
//
// # Overview
//
// Configuration is loaded from a YAML file, merged with defaults, and
// overridden by TELEPACE_* environment variables. The final
// configuration is validated before use; validation collects every
// problem into a single ValidationError rather than failing on the
// first one.
//
// # Sections
//
//   - telegram: API credentials and session settings
//   - limits: admission and pacing parameters
//   - storage: stats snapshot persistence backend
//   - report: periodic usage report schedule
//   - telemetry: logging and metrics settings
//   - admin: admin HTTP server settings
//
// # Usage
//
//	if err := config.Initialize("/etc/telepace/config.yaml"); err != nil {
//		log.Fatal(err)
//	}
//	cfg := config.MustGetConfig()
//
// For tests, construct a Config directly or use SetConfig to install a
// fixture. The FileWatcher supports hot reloading so that limit changes
// take effect without a restart.
package config
