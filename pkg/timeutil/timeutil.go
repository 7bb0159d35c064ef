package timeutil

import (
	"math"
	"math/rand"
	"time"
)

// ExponentialBackoffDelay computes the wait before retry number `attempt`
// (1-based): initial * multiplier^(attempt-1), capped at the configured
// maximum, plus a random jitter in [0, jitter) when jitter is positive.
func ExponentialBackoffDelay(
	attempt int,
	jitter time.Duration,
	rng *rand.Rand,
	param BackoffParam,
) time.Duration {
	if attempt < 1 {
		attempt = 1
	}

	exponent := float64(attempt - 1)
	delay := float64(param.InitialDuration()) * math.Pow(param.Multiplier(), exponent)
	if max := float64(param.MaxDuration()); max > 0 && delay > max {
		delay = max
	}

	if jitter > 0 && rng != nil {
		delay += float64(rng.Int63n(int64(jitter)))
	}

	return time.Duration(delay)
}

// DurationPtr returns a pointer to d.
func DurationPtr(d time.Duration) *time.Duration {
	return &d
}
