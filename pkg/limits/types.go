package limits

import "time"

// Config contains the ceilings and pacing bounds for the admission engine.
// It is immutable for the lifetime of a Limiter; build a new Limiter to
// change limits.
type Config struct {
	// GlobalPerMinute limits calls per minute across all targets.
	GlobalPerMinute int

	// ChatPerSecond limits calls per second to a single one-to-one chat.
	ChatPerSecond int

	// GroupPerMinute limits calls per minute to a single group chat.
	GroupPerMinute int

	// ResolveDailyLimit caps resolve-class lookups per calendar day.
	// This is a hard ceiling: once reached, resolve calls are denied
	// until the daily rollover.
	ResolveDailyLimit int

	// MaxRetries is the maximum number of retries on a FLOOD_WAIT signal.
	MaxRetries int

	// MaxFloodWait is the longest server-requested backoff worth absorbing.
	// A FLOOD_WAIT asking for more aborts immediately without retrying.
	MaxFloodWait time.Duration

	// MaxConcurrent bounds in-flight calls. Acquire blocks until a slot
	// frees once the bound is reached.
	MaxConcurrent int

	// MinDelay and MaxDelay bound the randomized pacing delay applied to
	// every admitted call. The drawn delay is divided by the call's
	// priority tier, so high-priority calls wait less.
	MinDelay time.Duration
	MaxDelay time.Duration
}

// DefaultConfig returns the restrictive preset tuned to stay well inside
// Telegram's observed tolerance for user accounts.
func DefaultConfig() Config {
	return Config{
		GlobalPerMinute:   30,
		ChatPerSecond:     1,
		GroupPerMinute:    20,
		ResolveDailyLimit: 200,
		MaxRetries:        3,
		MaxFloodWait:      5 * time.Minute,
		MaxConcurrent:     5,
		MinDelay:          100 * time.Millisecond,
		MaxDelay:          500 * time.Millisecond,
	}
}

// DisabledConfig returns a pass-through preset with ceilings raised high
// enough to never bind in practice. Pacing delays are zeroed.
func DisabledConfig() Config {
	return Config{
		GlobalPerMinute:   1000,
		ChatPerSecond:     100,
		GroupPerMinute:    1000,
		ResolveDailyLimit: 10000,
		MaxRetries:        3,
		MaxFloodWait:      5 * time.Minute,
		MaxConcurrent:     100,
		MinDelay:          0,
		MaxDelay:          0,
	}
}

// Snapshot is a read-only copy of the stats tracker, suitable for JSON
// serialization and persistence.
type Snapshot struct {
	// TotalRequests counts every call attempt admitted past the
	// concurrency gate.
	TotalRequests int64 `json:"total_requests"`

	// SuccessfulRequests counts grants released without an error.
	SuccessfulRequests int64 `json:"successful_requests"`

	// RateLimitedRequests counts calls that waited out a full window.
	RateLimitedRequests int64 `json:"rate_limited_requests"`

	// FloodErrors counts FLOOD_WAIT signals observed from the platform.
	FloodErrors int64 `json:"flood_errors"`

	// LastRequest is when the most recent call was recorded.
	LastRequest time.Time `json:"last_request,omitzero"`

	// LastFlood is when the most recent FLOOD_WAIT was observed.
	LastFlood time.Time `json:"last_flood,omitzero"`

	// ResolveRequestsToday counts resolve-class calls since the last reset.
	ResolveRequestsToday int64 `json:"resolve_requests_today"`

	// ResolveLastReset is when the daily resolve counter was last reset.
	ResolveLastReset time.Time `json:"resolve_last_reset,omitzero"`

	// SuccessRate is SuccessfulRequests / TotalRequests, 0.0 when idle.
	SuccessRate float64 `json:"success_rate"`

	// FloodRate is FloodErrors / TotalRequests, 0.0 when idle.
	FloodRate float64 `json:"flood_rate"`
}
