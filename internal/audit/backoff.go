package audit

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"
)

// maxRetryDelay bounds a single backoff step before jitter.
const maxRetryDelay = 30 * time.Second

// exponential returns base * 2^attempt, never more than maxRetryDelay.
func exponential(base time.Duration, attempt int) time.Duration {
	if base <= 0 {
		return 0
	}
	delay := min(base, maxRetryDelay)
	for i := 0; i < attempt && delay < maxRetryDelay; i++ {
		delay *= 2
	}
	return min(delay, maxRetryDelay)
}

// fullJitter returns a random duration in [0, delay).
func fullJitter(delay time.Duration) time.Duration {
	if delay <= 0 {
		return 0
	}
	return time.Duration(rand.Int64N(int64(delay)))
}

func retryDelay(base time.Duration, attempt int) time.Duration {
	return fullJitter(exponential(base, attempt))
}

func sleepWithContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("context done: %w", ctx.Err())
	}
}
