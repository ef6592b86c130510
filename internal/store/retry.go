package store

import (
	"context"
	"time"

	"github.com/sethvargo/go-retry"
)

// withRetry runs fn and repeats it with exponential backoff while the
// dialect classifies the error as [Retryable]. It is only used for
// idempotent reads; writes are executed once.
func (db *DB) withRetry(ctx context.Context, fn func(ctx context.Context) error) error {
	backoff := retry.WithMaxRetries(db.retryAttempts, retry.NewExponential(db.retryBase))

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := fn(ctx)
		if err != nil && db.errorClassificator.Classify(err) == Retryable {
			db.logger.Warn().Err(err).Str("func", "DB.withRetry").Msg("retryable database error")
			return retry.RetryableError(err)
		}
		return err
	})
}

// ping checks connectivity, treating every failure as transient.
func (db *DB) ping(ctx context.Context, base time.Duration) error {
	backoff := retry.WithMaxRetries(db.retryAttempts, retry.NewExponential(base))

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := db.PingContext(ctx); err != nil {
			db.logger.Warn().Err(err).Str("func", "DB.ping").Msg("database is not reachable yet")
			return retry.RetryableError(err)
		}
		return nil
	})
}
