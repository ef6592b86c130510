package service

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// operationTimeout bounds a single service call. Zero disables the bound.
type operationTimeout time.Duration

func (t operationTimeout) start(ctx context.Context) (context.Context, context.CancelFunc) {
	if t <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, time.Duration(t))
}

// finish converts a deadline hit anywhere below into ErrTimeout so that
// callers can tell it apart from validation and authentication failures.
func finish(err error) error {
	if err == nil || errors.Is(err, ErrTimeout) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", ErrTimeout, err)
	}
	return err
}
