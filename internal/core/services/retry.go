package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/SscSPs/cod_ledger/internal/apperrors"
	"github.com/SscSPs/cod_ledger/internal/middleware"
)

// RetryPolicy bounds retries of an atomic claim after a transient storage conflict.
type RetryPolicy struct {
	MaxRetries int
	Backoff    time.Duration
}

// DefaultRetryPolicy is used when no policy is configured.
var DefaultRetryPolicy = RetryPolicy{MaxRetries: 3, Backoff: 25 * time.Millisecond}

// retryOnConflict runs op until it succeeds, fails with something other than ErrStorageConflict,
// or the retries are spent. The wait grows linearly with the attempt number.
func retryOnConflict[T any](ctx context.Context, policy RetryPolicy, opName string, op func() (T, error)) (T, error) {
	var zero T
	for attempt := 0; ; attempt++ {
		result, err := op()
		if err == nil || !errors.Is(err, apperrors.ErrStorageConflict) {
			return result, err
		}
		if attempt >= policy.MaxRetries {
			return zero, err
		}
		middleware.GetLoggerFromCtx(ctx).Warn("Storage conflict, retrying",
			slog.String("operation", opName),
			slog.Int("attempt", attempt+1),
			slog.Int("max_retries", policy.MaxRetries))

		wait := policy.Backoff * time.Duration(attempt+1)
		if wait <= 0 {
			continue
		}
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return zero, ctx.Err()
		case <-timer.C:
		}
	}
}
