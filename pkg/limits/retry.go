package limits

import (
	"context"
	"errors"
)

// Invoke runs one platform call with bounded retries on the FLOOD_WAIT
// throttle signal.
//
// When the call fails with a *FloodWaitError, the flood counter is
// incremented and then:
//
//   - a requested wait longer than MaxFloodWait aborts immediately, the
//     wait is judged not worth absorbing;
//   - otherwise Invoke sleeps exactly the requested wait and re-invokes,
//     up to MaxRetries times; exceeding the bound re-raises the signal.
//
// Any other error is not retried; it propagates immediately after being
// logged. Only the throttle signal has defined recovery semantics.
func (l *Limiter) Invoke(ctx context.Context, method string, call func(context.Context) error) error {
	for attempt := 0; ; attempt++ {
		err := call(ctx)
		if err == nil {
			return nil
		}

		var flood *FloodWaitError
		if !errors.As(err, &flood) {
			l.logger.Error("call failed", "method", method, "error", err)
			return err
		}

		l.stats.RecordFloodError()
		l.metrics.recordFlood(method)

		if flood.RetryAfter > l.config.MaxFloodWait {
			l.logger.Error("flood wait too long, aborting",
				"method", method,
				"retry_after", flood.RetryAfter,
				"max_flood_wait", l.config.MaxFloodWait,
			)
			return err
		}

		if attempt >= l.config.MaxRetries {
			l.logger.Error("flood wait retries exhausted",
				"method", method,
				"retries", attempt,
			)
			return err
		}

		l.logger.Warn("flood wait, backing off",
			"method", method,
			"retry_after", flood.RetryAfter,
			"attempt", attempt+1,
			"max_retries", l.config.MaxRetries,
		)

		if serr := l.sleepFunc(ctx, flood.RetryAfter); serr != nil {
			return serr
		}
	}
}
