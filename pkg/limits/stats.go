package limits

import (
	"sync"
	"time"
)

// Stats tracks the health of the outbound call stream.
//
// Counters only ever increase; the daily resolve counter is the one
// exception, rolling over to zero the first time it is touched after a
// calendar day has elapsed since its last reset.
//
// # Thread Safety
//
// Unlike the windows, stats are updated from many goroutines outside any
// shared critical section, so every method takes the tracker's own mutex.
type Stats struct {
	mu sync.Mutex

	totalRequests       int64
	successfulRequests  int64
	rateLimitedRequests int64
	floodErrors         int64

	lastRequest time.Time
	lastFlood   time.Time

	resolveRequestsToday int64
	resolveLastReset     time.Time

	nowFunc func() time.Time // for testing
}

// NewStats creates an empty stats tracker.
func NewStats() *Stats {
	return &Stats{
		nowFunc: time.Now,
	}
}

// RecordRequest counts a new call attempt and stamps it.
func (s *Stats) RecordRequest() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.totalRequests++
	s.lastRequest = s.nowFunc()
}

// RecordSuccess counts a call that completed without an error.
func (s *Stats) RecordSuccess() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.successfulRequests++
}

// RecordRateLimited counts a call that had to wait out a full window.
func (s *Stats) RecordRateLimited() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rateLimitedRequests++
}

// RecordFloodError counts a FLOOD_WAIT signal from the platform and
// stamps it.
func (s *Stats) RecordFloodError() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.floodErrors++
	s.lastFlood = s.nowFunc()
}

// RecordResolveRequest counts a resolve-class call against the daily quota,
// rolling the counter over first if a day has elapsed since the last reset.
// The first call after a rollover therefore observes a counter of exactly 1.
func (s *Stats) RecordResolveRequest() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rolloverLocked(s.nowFunc())
	s.resolveRequestsToday++
}

// TryConsumeResolve checks the daily quota and consumes one unit when it
// fits, in a single critical section so the ceiling holds under
// concurrent callers. Applies any due rollover first.
func (s *Stats) TryConsumeResolve(limit int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rolloverLocked(s.nowFunc())
	if s.resolveRequestsToday >= int64(limit) {
		return false
	}
	s.resolveRequestsToday++
	return true
}

// ResolveCount returns the daily resolve counter after applying any due
// rollover. It does not consume quota.
func (s *Stats) ResolveCount() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rolloverLocked(s.nowFunc())
	return s.resolveRequestsToday
}

// rolloverLocked resets the daily resolve counter once >= 24h have elapsed
// since the last reset. Caller must hold the mutex.
func (s *Stats) rolloverLocked(now time.Time) {
	if s.resolveLastReset.IsZero() || now.Sub(s.resolveLastReset) >= 24*time.Hour {
		s.resolveRequestsToday = 0
		s.resolveLastReset = now
	}
}

// SuccessRate returns successful/total in [0.0, 1.0], 0.0 when no calls
// have been made.
func (s *Stats) SuccessRate() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.successRateLocked()
}

func (s *Stats) successRateLocked() float64 {
	if s.totalRequests == 0 {
		return 0.0
	}
	return float64(s.successfulRequests) / float64(s.totalRequests)
}

// FloodRate returns floodErrors/total in [0.0, 1.0], 0.0 when no calls
// have been made.
func (s *Stats) FloodRate() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.floodRateLocked()
}

func (s *Stats) floodRateLocked() float64 {
	if s.totalRequests == 0 {
		return 0.0
	}
	return float64(s.floodErrors) / float64(s.totalRequests)
}

// Healthy reports whether the call stream looks sustainable: success rate
// above 80%, flood rate below 10%, and the daily resolve quota not yet
// exhausted. A tracker with zero calls is healthy by default.
func (s *Stats) Healthy(resolveDailyLimit int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.totalRequests == 0 {
		return true
	}

	successOK := s.successRateLocked() > 0.8
	floodOK := s.floodRateLocked() < 0.1
	resolveOK := s.resolveRequestsToday < int64(resolveDailyLimit)

	return successOK && floodOK && resolveOK
}

// Snapshot returns a read-only copy of all counters and derived rates.
func (s *Stats) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Snapshot{
		TotalRequests:        s.totalRequests,
		SuccessfulRequests:   s.successfulRequests,
		RateLimitedRequests:  s.rateLimitedRequests,
		FloodErrors:          s.floodErrors,
		LastRequest:          s.lastRequest,
		LastFlood:            s.lastFlood,
		ResolveRequestsToday: s.resolveRequestsToday,
		ResolveLastReset:     s.resolveLastReset,
		SuccessRate:          s.successRateLocked(),
		FloodRate:            s.floodRateLocked(),
	}
}

// Restore loads counters from a persisted snapshot, applying the daily
// rollover check against the persisted reset timestamp so a stale resolve
// day is never resurrected.
func (s *Stats) Restore(snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.totalRequests = snap.TotalRequests
	s.successfulRequests = snap.SuccessfulRequests
	s.rateLimitedRequests = snap.RateLimitedRequests
	s.floodErrors = snap.FloodErrors
	s.lastRequest = snap.LastRequest
	s.lastFlood = snap.LastFlood
	s.resolveRequestsToday = snap.ResolveRequestsToday
	s.resolveLastReset = snap.ResolveLastReset

	s.rolloverLocked(s.nowFunc())
}

// Reset zeroes the tracker. This is primarily for testing.
func (s *Stats) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.totalRequests = 0
	s.successfulRequests = 0
	s.rateLimitedRequests = 0
	s.floodErrors = 0
	s.lastRequest = time.Time{}
	s.lastFlood = time.Time{}
	s.resolveRequestsToday = 0
	s.resolveLastReset = time.Time{}
}
