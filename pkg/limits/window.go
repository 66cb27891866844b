package limits

import "time"

// window is a sliding-window log: the timestamps of recent admitted calls
// within one scope, oldest first. Timestamps are appended in non-decreasing
// order, so eviction only ever drops a prefix.
//
// window is not safe for concurrent use; each instance is guarded by its
// owning scope's mutex in the Limiter.
type window struct {
	duration time.Duration
	limit    int
	entries  []time.Time
}

func newWindow(duration time.Duration, limit int) *window {
	return &window{
		duration: duration,
		limit:    limit,
	}
}

// evict drops every entry at or older than now minus the window duration.
// After evict, every remaining entry t satisfies now.Sub(t) < duration.
func (w *window) evict(now time.Time) {
	cutoff := now.Add(-w.duration)

	i := 0
	for i < len(w.entries) && !w.entries[i].After(cutoff) {
		i++
	}
	if i > 0 {
		w.entries = append(w.entries[:0], w.entries[i:]...)
	}
}

// full reports whether the window holds at least its limit of entries.
// Callers must evict first.
func (w *window) full() bool {
	return len(w.entries) >= w.limit
}

// waitTime returns how long until the oldest entry expires, clamped to >= 0.
// Returns 0 for an empty window.
func (w *window) waitTime(now time.Time) time.Duration {
	if len(w.entries) == 0 {
		return 0
	}

	wait := w.duration - now.Sub(w.entries[0])
	if wait < 0 {
		return 0
	}
	return wait
}

// record appends a call timestamp to the window.
func (w *window) record(now time.Time) {
	w.entries = append(w.entries, now)
}

// size returns the number of recorded entries. Callers must evict first for
// the count to reflect only the live window.
func (w *window) size() int {
	return len(w.entries)
}
