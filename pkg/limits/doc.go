// Package limits provides the admission and pacing engine for outbound
// Telegram API calls.
//
// # Overview
//
// Telegram throttles and eventually bans accounts that call its API too
// aggressively. The limits package decides, for every outbound call,
// whether it may proceed now, must wait, or must be rejected:
//
//   - Sliding-window limits (global per-minute, per-chat per-second,
//     per-group per-minute)
//   - A daily quota for resolve-class lookups
//   - A concurrency gate bounding in-flight calls
//   - Randomized pacing delays that smooth bursts into human-like cadence
//   - Bounded retries on the platform's FLOOD_WAIT throttle signal
//
// # Usage
//
//	limiter := limits.New(limits.DefaultConfig())
//
//	grant, ok := limiter.Acquire(ctx, "send_message", "42", limits.Priority("send_message"))
//	if !ok {
//	    // Denied: daily quota exhausted or the caller canceled while queued.
//	    return
//	}
//	err := limiter.Invoke(ctx, "send_message", doSend)
//	grant.Release(err)
//
// All limits are evaluated in sequence; window limits are waited out
// internally rather than surfaced as rejections. Only the daily resolve
// quota is a hard ceiling.
//
// # Thread Safety
//
// All types are safe for concurrent use. Each sliding window is guarded by
// its own mutex; the eviction-check-record sequence is one critical section
// so two goroutines can never both observe the last free slot.
package limits
