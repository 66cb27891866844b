package telegram

import (
	"errors"
	"regexp"
	"strconv"

	"telepace/telepace/pkg/limits"
)

// floodWaitPattern matches the raw RPC error form FLOOD_WAIT_23 and the
// client library's prose form "A wait of 23 seconds is required".
var (
	floodCodePattern  = regexp.MustCompile(`FLOOD_WAIT_(\d+)`)
	floodProsePattern = regexp.MustCompile(`wait of (\d+) seconds`)
)

// MapError normalizes platform errors. Flood signals in either wire form
// become *limits.FloodWaitError so the retry loop can honor the
// server-mandated wait; everything else passes through unchanged.
func MapError(method string, err error) error {
	if err == nil {
		return nil
	}

	var fw *limits.FloodWaitError
	if errors.As(err, &fw) {
		return err
	}

	msg := err.Error()
	for _, pattern := range []*regexp.Regexp{floodCodePattern, floodProsePattern} {
		if m := pattern.FindStringSubmatch(msg); m != nil {
			seconds, convErr := strconv.Atoi(m[1])
			if convErr != nil {
				continue
			}
			return limits.NewFloodWait(method, seconds)
		}
	}

	return err
}
