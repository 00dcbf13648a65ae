package store

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/go-sql-driver/mysql"

	"github.com/user/near-sql-indexer/internal/apperrors"
)

// lockWaitTimeout and deadlock are the two MySQL error numbers worth
// retrying; everything else is treated as a permanent failure of the
// statement itself.
const (
	errLockWaitTimeout uint16 = 1205
	errDeadlock        uint16 = 1213
)

// isRetryable mirrors the teacher's isRetryable in
// minis/08-http-client-retries, generalized from "any non-nil HTTP error"
// to the narrower set of MySQL conditions that are actually transient.
func isRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == errLockWaitTimeout || myErr.Number == errDeadlock
	}
	// Connection-level errors (reset, refused, driver.ErrBadConn) surface as
	// plain errors from database/sql; treat anything else as transient too,
	// since the caller only retries statements that are safe to repeat
	// (INSERT IGNORE, idempotent SELECTs).
	return true
}

// withRetry runs op up to retryCount additional times on a transient
// failure, with exponential backoff plus jitter, same formula as the
// teacher's GetJSON: delay = baseDelay * 2^attempt * (1 ± 20%).
func withRetry(ctx context.Context, retryCount int, baseDelay, maxDelay time.Duration, op func() error) error {
	var lastErr error
	for attempt := 0; attempt <= retryCount; attempt++ {
		lastErr = op()
		if lastErr == nil {
			return nil
		}
		if !isRetryable(lastErr) {
			return lastErr
		}
		if attempt == retryCount {
			break
		}

		delay := baseDelay * time.Duration(uint64(1)<<uint(attempt))
		if delay > maxDelay {
			delay = maxDelay
		}
		jitter := time.Duration((rand.Float64()*0.4 - 0.2) * float64(delay))
		delay += jitter

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return apperrors.Transient("store.withRetry", lastErr)
}
