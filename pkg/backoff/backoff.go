// Package backoff computes retry delays.
package backoff

import "time"

// Exponential returns the delay before the given zero-based retry attempt:
// base doubled attempt times, capped at max. With base=1s and max=4s the
// sequence is 1s, 2s, 4s, 4s, ...
func Exponential(base, max time.Duration, attempt int) time.Duration {
	delay := base
	for i := 0; i < attempt; i++ {
		delay *= 2
		if delay >= max {
			return max
		}
	}
	if delay > max {
		return max
	}
	return delay
}
