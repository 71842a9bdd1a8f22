package client

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/pkg/errors"
)

// RetryCtx runs f with exponential backoff until it succeeds, the timeout
// elapses or ctx is cancelled.
func RetryCtx(ctx context.Context, timeout time.Duration, f func() error) error {
	bo := backoff.WithContext(
		backoff.NewExponentialBackOff(
			backoff.WithMaxInterval(time.Second*1),
			backoff.WithMaxElapsedTime(timeout),
		), ctx,
	)
	if err := backoff.Retry(f, bo); err != nil {
		if bo.NextBackOff() == backoff.Stop {
			return errors.Wrap(err, "reached retry deadline")
		}
		return err
	}
	return nil
}

// Retry is RetryCtx without cancellation.
func Retry(timeout time.Duration, f func() error) error {
	return RetryCtx(context.Background(), timeout, f)
}
