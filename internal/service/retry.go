package service

import (
	"context"
	"time"

	"habitat-portal-backend/internal/domain"
	"habitat-portal-backend/internal/logger"
)

const (
	retryAttempts = 3
	retryBaseWait = 100 * time.Millisecond
)

// withRetry runs op, retrying transient store failures only. Permanent
// failures (not-found, permission, conflict) return immediately; nothing in
// this codebase retries those.
func withRetry(ctx context.Context, name string, op func() error) error {
	var err error
	wait := retryBaseWait
	for attempt := 1; attempt <= retryAttempts; attempt++ {
		err = op()
		if err == nil || !domain.IsTransient(err) {
			return err
		}
		if attempt == retryAttempts {
			break
		}
		logger.Warn("Transient failure, retrying", "op", name, "attempt", attempt, "error", err)
		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return ctx.Err()
		}
		wait *= 2
	}
	return err
}
