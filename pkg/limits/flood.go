package limits

import (
	"fmt"
	"time"
)

// FloodWaitError is the platform's explicit throttle signal: the server
// names how long the client must wait before this call may be repeated.
// The platform client layer converts the upstream FLOOD_WAIT response into
// this type so the retry wrapper can recognize it with errors.As.
type FloodWaitError struct {
	// RetryAfter is the server-requested wait.
	RetryAfter time.Duration

	// Method is the call that triggered the signal, if known.
	Method string
}

func (e *FloodWaitError) Error() string {
	if e.Method != "" {
		return fmt.Sprintf("flood wait on %s: retry after %s", e.Method, e.RetryAfter)
	}
	return fmt.Sprintf("flood wait: retry after %s", e.RetryAfter)
}

// NewFloodWait builds a FloodWaitError from the wait in seconds as reported
// by the platform.
func NewFloodWait(method string, seconds int) *FloodWaitError {
	return &FloodWaitError{
		RetryAfter: time.Duration(seconds) * time.Second,
		Method:     method,
	}
}
