package notify

import (
	"context"
	"time"
)

// RetryPolicy configures exponential backoff between delivery attempts.
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
	Multiplier  float64
}

// DefaultRetryPolicy returns the policy used when nothing is configured.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 3,
		BaseDelay:   200 * time.Millisecond,
		MaxDelay:    2 * time.Second,
		Multiplier:  2,
	}
}

// retry runs fn until it succeeds, attempts run out or ctx ends. It returns the
// number of attempts made and the last error.
func retry(ctx context.Context, policy RetryPolicy, fn func(context.Context) error) (int, error) {
	if policy.MaxAttempts <= 0 {
		policy.MaxAttempts = 1
	}
	if policy.Multiplier < 1 {
		policy.Multiplier = 1
	}
	backoff := policy.BaseDelay
	var lastErr error
	attempts := 0

	for attempts < policy.MaxAttempts {
		if err := ctx.Err(); err != nil {
			if lastErr == nil {
				lastErr = err
			}
			return attempts, lastErr
		}
		attempts++
		lastErr = fn(ctx)
		if lastErr == nil {
			return attempts, nil
		}
		if attempts == policy.MaxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return attempts, lastErr
		case <-time.After(backoff):
		}
		backoff = time.Duration(float64(backoff) * policy.Multiplier)
		if policy.MaxDelay > 0 && backoff > policy.MaxDelay {
			backoff = policy.MaxDelay
		}
	}
	return attempts, lastErr
}
