package retry

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/edgi-govdata-archiving/seedgen/pkg/failure"
	"github.com/edgi-govdata-archiving/seedgen/pkg/timeutil"
)

// Retry executes fn up to MaxAttempts times, sleeping an exponentially
// growing delay between attempts. Only errors reporting IsRetryable() == true
// trigger another attempt; everything else is returned to the caller as-is.
//
// Type parameter T is the return type of the function being retried.
func Retry[T any](retryParam RetryParam, fn func() (T, failure.ClassifiedError)) (T, failure.ClassifiedError) {
	var lastErr failure.ClassifiedError
	var zero T

	if retryParam.MaxAttempts < 1 {
		return zero, &RetryError{
			Message:   "max attempts cannot be 0",
			Cause:     ErrZeroAttempt,
			Retryable: false,
		}
	}

	rng := rand.New(rand.NewSource(retryParam.RandomSeed))

	for attempt := 1; attempt <= retryParam.MaxAttempts; attempt++ {
		result, err := fn()
		if err == nil {
			return result, nil
		}

		lastErr = err

		if !isErrorRetryable(err) {
			return zero, err
		}

		if attempt == retryParam.MaxAttempts {
			break
		}

		backoffDelay := timeutil.ExponentialBackoffDelay(
			attempt,
			retryParam.Jitter,
			rng,
			retryParam.BackoffParam,
		)
		time.Sleep(backoffDelay)
	}

	// Recoverable at the pipeline level: callers absorb the failure and
	// move on to the next unit of work.
	return zero, &RetryError{
		Message:   fmt.Sprintf("exhausted %d attempts, last error: %v", retryParam.MaxAttempts, lastErr),
		Cause:     ErrExhaustedAttempts,
		Retryable: true,
		Last:      lastErr,
	}
}

// isErrorRetryable reports whether err asks for another attempt.
// Errors that do not expose IsRetryable are never retried.
func isErrorRetryable(err failure.ClassifiedError) bool {
	type hasRetryable interface {
		IsRetryable() bool
	}

	if r, ok := err.(hasRetryable); ok {
		return r.IsRetryable()
	}
	return false
}
