package sitegrab

import (
	"context"
	"time"
)

// LogFunc is the signature for a logging function.
type LogFunc func(format string, args ...any)

// Retry calls fn until it succeeds, making at most len(delays)+1 attempts and
// sleeping delays[i] before retry i+1. EINVALID and EUNSOLVABLE errors are
// not retried and a cancelled ctx stops retrying. The logger, if provided, is called for each retry.
func Retry(ctx context.Context, delays []time.Duration, logger LogFunc, fn func(ctx context.Context) error) error {
	maxAttempts := len(delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		err := fn(ctx)
		if err == nil {
			return nil
		}
		lastErr = err

		if !retryable(err) || attempt >= maxAttempts-1 {
			break
		}

		if ctx.Err() != nil {
			return ctx.Err()
		}

		if logger != nil {
			logger("retry (attempt %d): %v", attempt+2, err)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return lastErr
}

func retryable(err error) bool {
	switch ErrorCode(err) {
	case EINVALID, EUNSOLVABLE:
		return false
	}
	return true
}
