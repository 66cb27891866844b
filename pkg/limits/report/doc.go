// Package report schedules periodic usage reporting and snapshot
// persistence for the limiter.
//
// On each scheduled run the reporter logs a usage summary and, when a
// storage backend is configured, persists the current snapshot so that
// cumulative counters survive a restart. The schedule uses standard
// cron syntax.
package report
