// Telepace is a request admission and pacing engine for Telegram user
// accounts.
//
// It traffic-shapes outbound platform calls so a long-running account
// stays inside the platform's tolerated request rates:
//   - Sliding-window ceilings (global, per-chat, per-group)
//   - A hard daily quota on resolve-class lookups
//   - Bounded concurrency with randomized pacing delays
//   - Automatic retries on server FLOOD_WAIT signals
//
// Usage:
//
//	# Start with default configuration
//	telepace run
//
//	# Start with custom configuration file
//	telepace run --config /etc/telepace/config.yaml
//
//	# Validate configuration without starting
//	telepace validate
//
//	# Show version information
//	telepace version
package main

func main() {
	Execute()
}
