package limits

import (
	"context"
	"sync"
	"testing"
	"time"
)

// fakeClock drives the limiter deterministically: sleeps advance the
// clock instead of blocking, and every slept duration is recorded.
type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	sleeps []time.Duration
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sleeps = append(c.sleeps, d)
	c.now = c.now.Add(d)
	return nil
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func (c *fakeClock) Sleeps() []time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]time.Duration, len(c.sleeps))
	copy(out, c.sleeps)
	return out
}

// testLimiter builds a limiter on a fake clock with pacing disabled
// unless the config says otherwise.
func testLimiter(t *testing.T, cfg Config) (*Limiter, *fakeClock) {
	t.Helper()

	clock := newFakeClock()
	l := New(cfg)
	l.nowFunc = clock.Now
	l.sleepFunc = clock.Sleep
	return l, clock
}

func noDelay(cfg Config) Config {
	cfg.MinDelay = 0
	cfg.MaxDelay = 0
	return cfg
}

// ============================================================================
// Global Window Tests
// ============================================================================

func TestLimiter_GlobalWindowWait(t *testing.T) {
	cfg := noDelay(DefaultConfig())
	cfg.GlobalPerMinute = 2
	l, clock := testLimiter(t, cfg)

	ctx := context.Background()

	for i := 0; i < 2; i++ {
		grant, ok := l.Acquire(ctx, "send_message", "", PriorityNormal)
		if !ok {
			t.Fatalf("Call %d should be admitted without waiting", i+1)
		}
		grant.Release(nil)
	}

	if sleeps := clock.Sleeps(); len(sleeps) != 0 {
		t.Fatalf("First two calls should not sleep, slept %v", sleeps)
	}

	// Third call finds the window full and waits out the oldest entry
	grant, ok := l.Acquire(ctx, "send_message", "", PriorityNormal)
	if !ok {
		t.Fatal("Third call should be admitted after waiting")
	}
	grant.Release(nil)

	sleeps := clock.Sleeps()
	if len(sleeps) != 1 {
		t.Fatalf("Expected exactly one sleep, got %v", sleeps)
	}
	if sleeps[0] != time.Minute {
		t.Errorf("Expected 60s wait, got %v", sleeps[0])
	}

	if got := l.Stats().RateLimitedRequests; got != 1 {
		t.Errorf("Expected 1 rate limited request, got %d", got)
	}
}

func TestLimiter_GlobalWindowSlides(t *testing.T) {
	cfg := noDelay(DefaultConfig())
	cfg.GlobalPerMinute = 2
	l, clock := testLimiter(t, cfg)

	ctx := context.Background()

	for i := 0; i < 2; i++ {
		grant, _ := l.Acquire(ctx, "send_message", "", PriorityNormal)
		grant.Release(nil)
	}

	// A minute later both entries have expired
	clock.Advance(61 * time.Second)

	grant, ok := l.Acquire(ctx, "send_message", "", PriorityNormal)
	if !ok {
		t.Fatal("Call after window slid should be admitted")
	}
	grant.Release(nil)

	if sleeps := clock.Sleeps(); len(sleeps) != 0 {
		t.Errorf("Expected no sleeps after window slid, got %v", sleeps)
	}
}

// ============================================================================
// Per-Scope Window Tests
// ============================================================================

func TestLimiter_ChatScopeWait(t *testing.T) {
	cfg := noDelay(DefaultConfig())
	cfg.ChatPerSecond = 1
	l, clock := testLimiter(t, cfg)

	ctx := context.Background()

	grant, _ := l.Acquire(ctx, "send_message", "1001", PriorityNormal)
	grant.Release(nil)

	clock.Advance(100 * time.Millisecond)

	// Second call to the same chat inside the 1s window waits the remainder
	grant, ok := l.Acquire(ctx, "send_message", "1001", PriorityNormal)
	if !ok {
		t.Fatal("Second call should be admitted after waiting")
	}
	grant.Release(nil)

	sleeps := clock.Sleeps()
	if len(sleeps) != 1 {
		t.Fatalf("Expected exactly one sleep, got %v", sleeps)
	}
	if sleeps[0] != 900*time.Millisecond {
		t.Errorf("Expected 900ms wait, got %v", sleeps[0])
	}
}

func TestLimiter_ScopesAreIndependent(t *testing.T) {
	cfg := noDelay(DefaultConfig())
	cfg.ChatPerSecond = 1
	l, clock := testLimiter(t, cfg)

	ctx := context.Background()

	grant, _ := l.Acquire(ctx, "send_message", "1001", PriorityNormal)
	grant.Release(nil)

	// A different chat has its own window
	grant, ok := l.Acquire(ctx, "send_message", "1002", PriorityNormal)
	if !ok {
		t.Fatal("Call to a different chat should be admitted")
	}
	grant.Release(nil)

	if sleeps := clock.Sleeps(); len(sleeps) != 0 {
		t.Errorf("Independent scopes should not wait, slept %v", sleeps)
	}
}

func TestLimiter_GroupScopeUsesMinuteWindow(t *testing.T) {
	cfg := noDelay(DefaultConfig())
	cfg.GroupPerMinute = 2
	l, clock := testLimiter(t, cfg)

	ctx := context.Background()

	for i := 0; i < 2; i++ {
		grant, _ := l.Acquire(ctx, "get_chat_members", "2001", PriorityMedium)
		grant.Release(nil)
	}

	grant, ok := l.Acquire(ctx, "get_chat_members", "2001", PriorityMedium)
	if !ok {
		t.Fatal("Third group call should be admitted after waiting")
	}
	grant.Release(nil)

	sleeps := clock.Sleeps()
	if len(sleeps) != 1 {
		t.Fatalf("Expected exactly one sleep, got %v", sleeps)
	}
	if sleeps[0] != time.Minute {
		t.Errorf("Expected 60s group wait, got %v", sleeps[0])
	}
}

// ============================================================================
// Resolve Quota Tests
// ============================================================================

func TestLimiter_ResolveQuotaDenied(t *testing.T) {
	cfg := noDelay(DefaultConfig())
	cfg.ResolveDailyLimit = 2
	l, _ := testLimiter(t, cfg)

	ctx := context.Background()

	for i := 0; i < 2; i++ {
		grant, ok := l.Acquire(ctx, "resolve_username", "", PriorityNormal)
		if !ok {
			t.Fatalf("Resolve call %d should be admitted", i+1)
		}
		grant.Release(nil)
	}

	if l.CheckResolveQuota() {
		t.Error("Quota should be exhausted after 2 resolve calls")
	}

	if _, ok := l.Acquire(ctx, "resolve_username", "", PriorityNormal); ok {
		t.Error("Third resolve call should be denied")
	}

	// Non-resolve calls remain unaffected
	grant, ok := l.Acquire(ctx, "send_message", "", PriorityNormal)
	if !ok {
		t.Error("Non-resolve call should still be admitted")
	}
	grant.Release(nil)
}

func TestLimiter_ResolveQuotaRollsOver(t *testing.T) {
	cfg := noDelay(DefaultConfig())
	cfg.ResolveDailyLimit = 1
	l, clock := testLimiter(t, cfg)
	l.stats.nowFunc = clock.Now

	ctx := context.Background()

	grant, ok := l.Acquire(ctx, "resolve_username", "", PriorityNormal)
	if !ok {
		t.Fatal("First resolve call should be admitted")
	}
	grant.Release(nil)

	if _, ok := l.Acquire(ctx, "resolve_username", "", PriorityNormal); ok {
		t.Fatal("Second resolve call should be denied")
	}

	clock.Advance(25 * time.Hour)

	grant, ok = l.Acquire(ctx, "resolve_username", "", PriorityNormal)
	if !ok {
		t.Fatal("Resolve call after rollover should be admitted")
	}
	grant.Release(nil)
}

func TestLimiter_ResolveQuotaConcurrent(t *testing.T) {
	cfg := noDelay(DisabledConfig())
	cfg.ResolveDailyLimit = 5
	l, _ := testLimiter(t, cfg)

	ctx := context.Background()

	var wg sync.WaitGroup
	granted := make(chan *Grant, 50)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if grant, ok := l.Acquire(ctx, "resolve_username", "", PriorityNormal); ok {
				granted <- grant
			}
		}()
	}
	wg.Wait()
	close(granted)

	// Exactly the quota is granted; racing acquires never push past it
	count := 0
	for grant := range granted {
		grant.Release(nil)
		count++
	}
	if count != 5 {
		t.Errorf("Expected exactly 5 resolve grants, got %d", count)
	}
	if got := l.Stats().ResolveRequestsToday; got != 5 {
		t.Errorf("Resolve counter overshot the ceiling: %d", got)
	}
}

// ============================================================================
// Pacing Tests
// ============================================================================

func TestLimiter_PacingScaledByPriority(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MinDelay = 100 * time.Millisecond
	cfg.MaxDelay = 500 * time.Millisecond
	l, clock := testLimiter(t, cfg)

	ctx := context.Background()

	grant, ok := l.Acquire(ctx, "send_message", "", PriorityHigh)
	if !ok {
		t.Fatal("Call should be admitted")
	}
	grant.Release(nil)

	sleeps := clock.Sleeps()
	if len(sleeps) != 1 {
		t.Fatalf("Expected one pacing sleep, got %v", sleeps)
	}

	// Drawn from [100ms, 500ms) divided by priority 5
	min := 100 * time.Millisecond / PriorityHigh
	max := 500 * time.Millisecond / PriorityHigh
	if sleeps[0] < min || sleeps[0] > max {
		t.Errorf("Pacing delay %v outside [%v, %v]", sleeps[0], min, max)
	}
}

func TestLimiter_NoPacingWhenDelaysZero(t *testing.T) {
	l, clock := testLimiter(t, noDelay(DefaultConfig()))

	grant, _ := l.Acquire(context.Background(), "send_message", "", PriorityLow)
	grant.Release(nil)

	if sleeps := clock.Sleeps(); len(sleeps) != 0 {
		t.Errorf("Expected no pacing sleeps, got %v", sleeps)
	}
}

// ============================================================================
// Concurrency Gate Tests
// ============================================================================

func TestLimiter_ConcurrencyGateBlocks(t *testing.T) {
	cfg := noDelay(DefaultConfig())
	cfg.MaxConcurrent = 1
	cfg.GlobalPerMinute = 100
	l, _ := testLimiter(t, cfg)

	ctx := context.Background()

	grant, ok := l.Acquire(ctx, "send_message", "", PriorityNormal)
	if !ok {
		t.Fatal("First call should be admitted")
	}

	admitted := make(chan *Grant)
	go func() {
		g, ok := l.Acquire(ctx, "send_message", "", PriorityNormal)
		if !ok {
			t.Error("Queued call should be admitted once the slot frees")
		}
		admitted <- g
	}()

	select {
	case <-admitted:
		t.Fatal("Second call should block while the slot is held")
	case <-time.After(50 * time.Millisecond):
	}

	grant.Release(nil)

	select {
	case g := <-admitted:
		g.Release(nil)
	case <-time.After(time.Second):
		t.Fatal("Second call was not admitted after release")
	}
}

func TestLimiter_AcquireCanceled(t *testing.T) {
	cfg := noDelay(DefaultConfig())
	cfg.MaxConcurrent = 1
	l, _ := testLimiter(t, cfg)

	grant, _ := l.Acquire(context.Background(), "send_message", "", PriorityNormal)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, ok := l.Acquire(ctx, "send_message", "", PriorityNormal); ok {
		t.Error("Acquire with canceled context should be denied")
	}

	grant.Release(nil)
}

func TestGrant_ReleaseIdempotent(t *testing.T) {
	cfg := noDelay(DefaultConfig())
	cfg.MaxConcurrent = 1
	l, _ := testLimiter(t, cfg)

	grant, _ := l.Acquire(context.Background(), "send_message", "", PriorityNormal)
	grant.Release(nil)
	grant.Release(nil) // second release must be a no-op

	if got := l.Stats().SuccessfulRequests; got != 1 {
		t.Errorf("Expected exactly 1 success, got %d", got)
	}

	// The slot must be usable again, and only once
	g2, ok := l.Acquire(context.Background(), "send_message", "", PriorityNormal)
	if !ok {
		t.Fatal("Slot should be free after release")
	}
	g2.Release(nil)
}

func TestGrant_ReleaseWithError(t *testing.T) {
	l, _ := testLimiter(t, noDelay(DefaultConfig()))

	grant, _ := l.Acquire(context.Background(), "send_message", "", PriorityNormal)
	grant.Release(context.DeadlineExceeded)

	snap := l.Stats()
	if snap.SuccessfulRequests != 0 {
		t.Errorf("Failed call must not count as success, got %d", snap.SuccessfulRequests)
	}
	if snap.TotalRequests != 1 {
		t.Errorf("Expected 1 total request, got %d", snap.TotalRequests)
	}
}

// ============================================================================
// Concurrent Admission Tests
// ============================================================================

func TestLimiter_ConcurrentAcquire(t *testing.T) {
	cfg := noDelay(DisabledConfig())
	l, _ := testLimiter(t, cfg)

	ctx := context.Background()
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			grant, ok := l.Acquire(ctx, "send_message", "1001", PriorityNormal)
			if ok {
				grant.Release(nil)
			}
		}()
	}
	wg.Wait()

	snap := l.Stats()
	if snap.TotalRequests != 50 {
		t.Errorf("Expected 50 total requests, got %d", snap.TotalRequests)
	}
	if snap.SuccessfulRequests != 50 {
		t.Errorf("Expected 50 successes, got %d", snap.SuccessfulRequests)
	}
}
