package telegram

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"telepace/telepace/pkg/limits"
	"telepace/telepace/pkg/telemetry/logging"
)

// Sentinel errors returned by the Invoker for admission denials.
var (
	// ErrRateLimited is returned when admission is denied for a reason
	// other than a cancelled context.
	ErrRateLimited = errors.New("rate limited")

	// ErrResolveQuotaExhausted is returned when the daily resolve quota
	// is used up. The quota resets 24 hours after the last reset.
	ErrResolveQuotaExhausted = errors.New("daily resolve limit exceeded")
)

// CallFunc performs one platform interaction. It is retried on flood
// errors, so it must be safe to run more than once.
type CallFunc func(ctx context.Context) error

// Invoker runs platform calls through the admission engine.
type Invoker struct {
	limiter *limits.Limiter
	logger  *logging.Logger
}

// NewInvoker creates an invoker backed by the given limiter.
func NewInvoker(limiter *limits.Limiter, logger *logging.Logger) *Invoker {
	if logger == nil {
		logger = logging.Wrap(nil)
	}

	return &Invoker{
		limiter: limiter,
		logger:  logger,
	}
}

// Call runs fn through the full traffic-shaping sequence for the named
// method. scopeID identifies the target chat or group; pass an empty
// string for calls with no per-target ceiling.
//
// Each call gets a unique id attached to the context so that log lines
// across the admission wait, retries, and release correlate.
func (i *Invoker) Call(ctx context.Context, method, scopeID string, fn CallFunc) error {
	ctx = logging.WithCallID(ctx, uuid.NewString())
	ctx = logging.WithMethod(ctx, method)
	if scopeID != "" {
		ctx = logging.WithChatID(ctx, scopeID)
	}

	// Pre-check the daily quota so resolve-class denials carry a typed
	// error instead of the generic denial.
	if limits.IsResolveMethod(method) && !i.limiter.CheckResolveQuota() {
		i.logger.WarnContext(ctx, "resolve call denied")
		return fmt.Errorf("%s: %w", method, ErrResolveQuotaExhausted)
	}

	grant, ok := i.limiter.Acquire(ctx, method, scopeID, limits.Priority(method))
	if !ok {
		if err := ctx.Err(); err != nil {
			return err
		}
		return fmt.Errorf("%s: %w", method, ErrRateLimited)
	}

	err := i.limiter.Invoke(ctx, method, func(ctx context.Context) error {
		return MapError(method, fn(ctx))
	})
	grant.Release(err)

	return err
}

// Limiter returns the underlying limiter, for health checks and stats.
func (i *Invoker) Limiter() *limits.Limiter {
	return i.limiter
}
