// Package health provides liveness and readiness checks for the admin
// server.
//
// # Overview
//
// Components register named CheckFuncs with a Checker; the readiness
// endpoint runs them all concurrently with a per-check timeout and
// aggregates the results. The key registered check is the rate limiter's
// health predicate: a stream with a sagging success rate or a rising
// FLOOD_WAIT rate marks the process degraded before Telegram escalates.
//
// # Usage
//
//	checker := health.New(5 * time.Second)
//	checker.RegisterCheck("limiter", func(ctx context.Context) error {
//	    if !limiter.Healthy() {
//	        return errors.New("call stream unhealthy")
//	    }
//	    return nil
//	})
//
//	mux.HandleFunc("/healthz", checker.LivenessHandler())
//	mux.HandleFunc("/readyz", checker.ReadinessHandler())
package health
