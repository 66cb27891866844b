package limits

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// ============================================================================
// Counter Tests
// ============================================================================

func TestStats_Counters(t *testing.T) {
	s := NewStats()

	s.RecordRequest()
	s.RecordRequest()
	s.RecordSuccess()
	s.RecordRateLimited()
	s.RecordFloodError()

	snap := s.Snapshot()
	if snap.TotalRequests != 2 {
		t.Errorf("Expected 2 total requests, got %d", snap.TotalRequests)
	}
	if snap.SuccessfulRequests != 1 {
		t.Errorf("Expected 1 successful request, got %d", snap.SuccessfulRequests)
	}
	if snap.RateLimitedRequests != 1 {
		t.Errorf("Expected 1 rate limited request, got %d", snap.RateLimitedRequests)
	}
	if snap.FloodErrors != 1 {
		t.Errorf("Expected 1 flood error, got %d", snap.FloodErrors)
	}
	if snap.LastRequest.IsZero() {
		t.Error("Expected last request timestamp to be set")
	}
	if snap.LastFlood.IsZero() {
		t.Error("Expected last flood timestamp to be set")
	}
}

func TestStats_Rates(t *testing.T) {
	s := NewStats()

	// Idle tracker reports zero rates
	if rate := s.SuccessRate(); rate != 0.0 {
		t.Errorf("Expected 0.0 success rate when idle, got %f", rate)
	}
	if rate := s.FloodRate(); rate != 0.0 {
		t.Errorf("Expected 0.0 flood rate when idle, got %f", rate)
	}

	for i := 0; i < 10; i++ {
		s.RecordRequest()
	}
	for i := 0; i < 9; i++ {
		s.RecordSuccess()
	}
	s.RecordFloodError()

	if rate := s.SuccessRate(); rate != 0.9 {
		t.Errorf("Expected 0.9 success rate, got %f", rate)
	}
	if rate := s.FloodRate(); rate != 0.1 {
		t.Errorf("Expected 0.1 flood rate, got %f", rate)
	}
}

// ============================================================================
// Daily Resolve Quota Tests
// ============================================================================

func TestStats_ResolveRollover(t *testing.T) {
	s := NewStats()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.nowFunc = func() time.Time { return now }

	for i := 0; i < 5; i++ {
		s.RecordResolveRequest()
	}
	if got := s.ResolveCount(); got != 5 {
		t.Errorf("Expected resolve count 5, got %d", got)
	}

	// Less than 24h: no rollover
	now = now.Add(23 * time.Hour)
	if got := s.ResolveCount(); got != 5 {
		t.Errorf("Expected resolve count 5 before rollover, got %d", got)
	}

	// Past 24h: rollover, then the recording call observes exactly 1
	now = now.Add(2 * time.Hour)
	s.RecordResolveRequest()
	if got := s.ResolveCount(); got != 1 {
		t.Errorf("Expected resolve count 1 after rollover, got %d", got)
	}
}

func TestStats_ResolveRolloverOnRead(t *testing.T) {
	s := NewStats()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.nowFunc = func() time.Time { return now }

	s.RecordResolveRequest()
	s.RecordResolveRequest()

	// A pure read also applies the rollover
	now = now.Add(25 * time.Hour)
	if got := s.ResolveCount(); got != 0 {
		t.Errorf("Expected resolve count 0 after read-side rollover, got %d", got)
	}
}

func TestStats_TryConsumeResolve(t *testing.T) {
	s := NewStats()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.nowFunc = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		if !s.TryConsumeResolve(3) {
			t.Fatalf("Consume %d should fit the quota", i+1)
		}
	}
	if s.TryConsumeResolve(3) {
		t.Error("Consume past the quota should fail")
	}
	if got := s.ResolveCount(); got != 3 {
		t.Errorf("Failed consume must not count, got %d", got)
	}

	// Rollover frees the quota again
	now = now.Add(25 * time.Hour)
	if !s.TryConsumeResolve(3) {
		t.Error("Consume should fit after rollover")
	}
}

func TestStats_TryConsumeResolveConcurrent(t *testing.T) {
	s := NewStats()
	const limit = 5

	var wg sync.WaitGroup
	var consumed atomic.Int64
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if s.TryConsumeResolve(limit) {
				consumed.Add(1)
			}
		}()
	}
	wg.Wait()

	// The ceiling is hard: exactly limit consumes succeed, never more
	if got := consumed.Load(); got != limit {
		t.Errorf("Expected exactly %d consumes, got %d", limit, got)
	}
	if got := s.ResolveCount(); got != limit {
		t.Errorf("Counter overshot the ceiling: %d", got)
	}
}

// ============================================================================
// Health Predicate Tests
// ============================================================================

func TestStats_HealthyWhenIdle(t *testing.T) {
	s := NewStats()

	if !s.Healthy(200) {
		t.Error("Idle tracker should be healthy")
	}
}

func TestStats_UnhealthyLowSuccessRate(t *testing.T) {
	s := NewStats()

	for i := 0; i < 10; i++ {
		s.RecordRequest()
	}
	// 70% success is below the 80% floor
	for i := 0; i < 7; i++ {
		s.RecordSuccess()
	}

	if s.Healthy(200) {
		t.Error("Expected unhealthy with 70% success rate")
	}
}

func TestStats_UnhealthyHighFloodRate(t *testing.T) {
	s := NewStats()

	for i := 0; i < 10; i++ {
		s.RecordRequest()
		s.RecordSuccess()
	}
	s.RecordFloodError() // 10% flood rate is at the ceiling, not below it

	if s.Healthy(200) {
		t.Error("Expected unhealthy with 10% flood rate")
	}
}

func TestStats_UnhealthyResolveExhausted(t *testing.T) {
	s := NewStats()

	s.RecordRequest()
	s.RecordSuccess()
	for i := 0; i < 3; i++ {
		s.RecordResolveRequest()
	}

	if s.Healthy(3) {
		t.Error("Expected unhealthy when daily resolve quota is used up")
	}
	if !s.Healthy(4) {
		t.Error("Expected healthy while quota remains")
	}
}

// ============================================================================
// Snapshot / Restore Tests
// ============================================================================

func TestStats_RestoreRoundTrip(t *testing.T) {
	s := NewStats()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.nowFunc = func() time.Time { return now }

	s.RecordRequest()
	s.RecordSuccess()
	s.RecordResolveRequest()

	snap := s.Snapshot()

	restored := NewStats()
	restored.nowFunc = func() time.Time { return now }
	restored.Restore(snap)

	got := restored.Snapshot()
	if got.TotalRequests != 1 || got.SuccessfulRequests != 1 {
		t.Errorf("Restore lost counters: %+v", got)
	}
	if got.ResolveRequestsToday != 1 {
		t.Errorf("Expected resolve count 1 after restore, got %d", got.ResolveRequestsToday)
	}
}

func TestStats_RestoreStaleResolveDay(t *testing.T) {
	s := NewStats()

	resetAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	snap := Snapshot{
		TotalRequests:        100,
		SuccessfulRequests:   95,
		ResolveRequestsToday: 150,
		ResolveLastReset:     resetAt,
	}

	// Restoring two days later must not resurrect the stale resolve day
	s.nowFunc = func() time.Time { return resetAt.Add(48 * time.Hour) }
	s.Restore(snap)

	got := s.Snapshot()
	if got.ResolveRequestsToday != 0 {
		t.Errorf("Expected stale resolve counter reset to 0, got %d", got.ResolveRequestsToday)
	}
	if got.TotalRequests != 100 {
		t.Errorf("Expected cumulative counters preserved, got %d", got.TotalRequests)
	}
}

func TestStats_Reset(t *testing.T) {
	s := NewStats()

	s.RecordRequest()
	s.RecordFloodError()
	s.RecordResolveRequest()
	s.Reset()

	snap := s.Snapshot()
	if snap.TotalRequests != 0 || snap.FloodErrors != 0 || snap.ResolveRequestsToday != 0 {
		t.Errorf("Expected zeroed tracker, got %+v", snap)
	}
}
