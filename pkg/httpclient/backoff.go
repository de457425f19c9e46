package httpclient

import (
	"context"
	"time"
)

type Backoff interface {
	Delay(attempt int) time.Duration
}

// ExponentialBackoff doubles Base on every attempt, capped at MaxDelay.
type ExponentialBackoff struct {
	Base     time.Duration
	MaxDelay time.Duration
}

func (e ExponentialBackoff) Delay(attempt int) time.Duration {
	if attempt < 0 {
		return e.Base
	}
	if attempt > 62 {
		return e.MaxDelay
	}
	delay := e.Base << uint(attempt)
	if delay > e.MaxDelay || delay < e.Base {
		return e.MaxDelay
	}
	return delay
}

type FixedBackoff struct {
	Duration time.Duration
}

func (f FixedBackoff) Delay(int) time.Duration {
	return f.Duration
}

// SleepFunc waits for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
