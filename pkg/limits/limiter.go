package limits

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"telepace/telepace/pkg/telemetry/logging"
)

// Limiter is the admission engine. It owns the sliding windows, the
// concurrency gate, and the stats tracker, and decides for every outbound
// call whether it may proceed now, must wait, or must be rejected.
type Limiter struct {
	config Config
	stats  *Stats

	// sem is the concurrency gate: the single back-pressure valve bounding
	// in-flight platform calls. Weighted semaphore acquisition is
	// FIFO-fair, so queued calls drain in arrival order.
	sem *semaphore.Weighted

	// global is the cross-target window, one critical section for
	// evict-check-record.
	globalMu sync.Mutex
	global   *window

	// scopes holds per-target windows, created lazily on first use and
	// never removed. The scope-id space is bounded by the account's own
	// chat count.
	scopesMu sync.Mutex
	scopes   map[string]*scopeWindow

	logger  *logging.Logger
	metrics *Metrics

	// Overridable for testing.
	nowFunc   func() time.Time
	sleepFunc func(ctx context.Context, d time.Duration) error
}

// scopeWindow pairs one target's window with its own mutex.
type scopeWindow struct {
	mu  sync.Mutex
	win *window
}

// Grant represents an admitted call attempt. The holder owns one
// concurrency slot until Release.
type Grant struct {
	limiter *Limiter
	method  string
	once    sync.Once
}

// Release frees the concurrency slot and records the call outcome: a nil
// err counts as a success. Release is idempotent.
func (g *Grant) Release(err error) {
	g.once.Do(func() {
		if err == nil {
			g.limiter.stats.RecordSuccess()
		}
		g.limiter.metrics.recordRelease(g.method, err)
		g.limiter.releaseSlot()
	})
}

// Option configures a Limiter.
type Option func(*Limiter)

// WithLogger sets the structured logger. Defaults to slog.Default wrapped.
func WithLogger(logger *logging.Logger) Option {
	return func(l *Limiter) {
		l.logger = logger
	}
}

// WithMetrics attaches Prometheus instrumentation.
func WithMetrics(m *Metrics) Option {
	return func(l *Limiter) {
		l.metrics = m
	}
}

// WithStats uses an existing stats tracker, e.g. one restored from a
// persisted snapshot.
func WithStats(stats *Stats) Option {
	return func(l *Limiter) {
		l.stats = stats
	}
}

// New creates a Limiter from an immutable config.
func New(cfg Config, opts ...Option) *Limiter {
	l := &Limiter{
		config:    cfg,
		stats:     NewStats(),
		sem:       semaphore.NewWeighted(int64(cfg.MaxConcurrent)),
		global:    newWindow(time.Minute, cfg.GlobalPerMinute),
		scopes:    make(map[string]*scopeWindow),
		nowFunc:   time.Now,
		sleepFunc: sleepCtx,
	}

	for _, opt := range opts {
		opt(l)
	}
	if l.logger == nil {
		l.logger = logging.Wrap(slog.Default())
	}

	l.logger.Info("rate limiter initialized",
		"global_per_minute", cfg.GlobalPerMinute,
		"chat_per_second", cfg.ChatPerSecond,
		"group_per_minute", cfg.GroupPerMinute,
		"max_concurrent", cfg.MaxConcurrent,
	)

	return l
}

// Config returns the limiter's immutable configuration.
func (l *Limiter) Config() Config {
	return l.config
}

// Acquire runs the admission sequence for one call attempt:
//
//  1. Resolve-class calls are denied outright when the daily quota is
//     exhausted, without consuming a concurrency slot.
//  2. Block until a concurrency slot frees (or ctx is canceled).
//  3. Wait out the global per-minute window if it is full.
//  4. Wait out the per-scope window if a scope id is supplied.
//  5. Apply the randomized pacing delay, scaled down by priority.
//
// On success the returned Grant holds the concurrency slot; the caller
// must Release it when the wrapped call completes. Denials (quota
// exhaustion or cancellation) return (nil, false); the caller treats
// every denial identically.
func (l *Limiter) Acquire(ctx context.Context, method, scopeID string, priority int) (*Grant, bool) {
	if priority < PriorityLow {
		priority = PriorityLow
	} else if priority > PriorityHigh {
		priority = PriorityHigh
	}

	if IsResolveMethod(method) {
		if !l.stats.TryConsumeResolve(l.config.ResolveDailyLimit) {
			l.logger.Warn("daily resolve limit exceeded",
				"method", method,
				"resolve_requests_today", l.stats.ResolveCount(),
			)
			l.metrics.recordDenial(method, "resolve_quota")
			return nil, false
		}
	}

	if err := l.sem.Acquire(ctx, 1); err != nil {
		l.metrics.recordDenial(method, "canceled")
		return nil, false
	}
	l.metrics.recordInFlight(1)

	l.stats.RecordRequest()

	if err := l.waitGlobal(ctx); err != nil {
		l.releaseSlot()
		l.metrics.recordDenial(method, "canceled")
		return nil, false
	}

	if scopeID != "" {
		if err := l.waitScope(ctx, scopeID, method); err != nil {
			l.releaseSlot()
			l.metrics.recordDenial(method, "canceled")
			return nil, false
		}
	}

	if err := l.pace(ctx, priority); err != nil {
		l.releaseSlot()
		l.metrics.recordDenial(method, "canceled")
		return nil, false
	}

	l.logger.Debug("admission granted", "method", method, "chat_id", scopeID)
	l.metrics.recordGrant(method)

	return &Grant{limiter: l, method: method}, true
}

func (l *Limiter) releaseSlot() {
	l.metrics.recordInFlight(-1)
	l.sem.Release(1)
}

// waitGlobal holds the global window's critical section across
// evict-check-sleep-record so concurrent callers serialize on the last
// free slot.
func (l *Limiter) waitGlobal(ctx context.Context) error {
	l.globalMu.Lock()
	defer l.globalMu.Unlock()

	now := l.nowFunc()
	l.global.evict(now)

	if l.global.full() {
		if wait := l.global.waitTime(now); wait > 0 {
			l.logger.Debug("global rate limit reached", "wait", wait)
			l.metrics.recordWait("global", wait)
			if err := l.sleepFunc(ctx, wait); err != nil {
				return err
			}
			l.stats.RecordRateLimited()
		}
	}

	l.global.record(l.nowFunc())
	return nil
}

// waitScope applies the per-target window: group-management methods get a
// per-minute group window, everything else a per-second chat window.
func (l *Limiter) waitScope(ctx context.Context, scopeID, method string) error {
	sw := l.scope(scopeID, method)

	sw.mu.Lock()
	defer sw.mu.Unlock()

	now := l.nowFunc()
	sw.win.evict(now)

	if sw.win.full() {
		if wait := sw.win.waitTime(now); wait > 0 {
			l.logger.Debug("chat rate limit reached", "chat_id", scopeID, "wait", wait)
			l.metrics.recordWait("scope", wait)
			if err := l.sleepFunc(ctx, wait); err != nil {
				return err
			}
			l.stats.RecordRateLimited()
		}
	}

	sw.win.record(l.nowFunc())
	return nil
}

// scope returns the window for a target, creating it on first use. The
// window's duration and ceiling are fixed by the first method that touches
// the scope.
func (l *Limiter) scope(scopeID, method string) *scopeWindow {
	l.scopesMu.Lock()
	defer l.scopesMu.Unlock()

	sw, ok := l.scopes[scopeID]
	if !ok {
		if IsGroupMethod(method) {
			sw = &scopeWindow{win: newWindow(time.Minute, l.config.GroupPerMinute)}
		} else {
			sw = &scopeWindow{win: newWindow(time.Second, l.config.ChatPerSecond)}
		}
		l.scopes[scopeID] = sw
	}
	return sw
}

// pace sleeps a uniform random delay from [MinDelay, MaxDelay] divided by
// the priority tier. Applied unconditionally so admitted calls keep a
// human-like cadence even when no window was full.
func (l *Limiter) pace(ctx context.Context, priority int) error {
	span := l.config.MaxDelay - l.config.MinDelay
	delay := l.config.MinDelay
	if span > 0 {
		delay += time.Duration(rand.Int64N(int64(span)))
	}
	delay /= time.Duration(priority)

	if delay <= 0 {
		return nil
	}
	return l.sleepFunc(ctx, delay)
}

// CheckResolveQuota reports whether another resolve-class call fits in the
// daily quota. It applies the rollover check but does not consume quota.
func (l *Limiter) CheckResolveQuota() bool {
	return l.stats.ResolveCount() < int64(l.config.ResolveDailyLimit)
}

// Stats returns a read-only snapshot of the tracker.
func (l *Limiter) Stats() Snapshot {
	return l.stats.Snapshot()
}

// Tracker exposes the underlying stats tracker, e.g. for persistence.
func (l *Limiter) Tracker() *Stats {
	return l.stats
}

// Healthy reports whether the call stream looks sustainable (see
// Stats.Healthy).
func (l *Limiter) Healthy() bool {
	return l.stats.Healthy(l.config.ResolveDailyLimit)
}

// LogSummary writes a one-shot stats summary at info level.
func (l *Limiter) LogSummary() {
	snap := l.stats.Snapshot()
	l.logger.Info("rate limiter summary",
		"total_requests", snap.TotalRequests,
		"successful_requests", snap.SuccessfulRequests,
		"success_rate", snap.SuccessRate,
		"rate_limited_requests", snap.RateLimitedRequests,
		"flood_errors", snap.FloodErrors,
		"flood_rate", snap.FloodRate,
		"resolve_requests_today", snap.ResolveRequestsToday,
		"resolve_daily_limit", l.config.ResolveDailyLimit,
	)
}

// sleepCtx sleeps for d or until ctx is canceled, whichever comes first.
func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
