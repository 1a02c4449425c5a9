// Package retry wraps repository calls with bounded retries. Errors the
// caller marks as non-retryable are returned immediately.
package retry

import (
	"context"
	"math/rand"
	"time"
)

type IsRetryableFunc func(error) bool

type Retrier interface {
	Do(ctx context.Context, fn func() error) error
}

// Backoff yields the delay before the given 1-based attempt is retried.
type Backoff interface {
	Delay(attempt int) time.Duration
}

type RetryOption func(*retrier)

func WithMaxAttempts(n int) RetryOption {
	return func(r *retrier) {
		if n > 0 {
			r.maxAttempts = n
		}
	}
}

func WithIsRetryableFunc(fn IsRetryableFunc) RetryOption {
	return func(r *retrier) {
		r.isRetryable = fn
	}
}

func WithBackoff(b Backoff) RetryOption {
	return func(r *retrier) {
		r.backoff = b
	}
}

// ExponentialBackoff grows the delay by Factor per attempt, capped at Max.
// Jitter is the fraction of the delay randomized away, in [0, 1].
type ExponentialBackoff struct {
	Base   time.Duration
	Factor float64
	Max    time.Duration
	Jitter float64
}

func (b ExponentialBackoff) Delay(attempt int) time.Duration {
	delay := float64(b.Base)
	for i := 1; i < attempt; i++ {
		delay *= b.Factor
	}
	if max := float64(b.Max); b.Max > 0 && delay > max {
		delay = max
	}
	if b.Jitter > 0 {
		delay -= delay * b.Jitter * rand.Float64()
	}
	return time.Duration(delay)
}

// NoBackoff retries immediately.
type NoBackoff struct{}

func (NoBackoff) Delay(int) time.Duration { return 0 }

type retrier struct {
	maxAttempts int
	isRetryable IsRetryableFunc
	backoff     Backoff
}

func New(opts ...RetryOption) Retrier {
	r := &retrier{
		maxAttempts: 1,
		isRetryable: func(error) bool { return true },
		backoff:     NoBackoff{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *retrier) Do(ctx context.Context, fn func() error) error {
	var err error
	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		err = fn()
		if err == nil || !r.isRetryable(err) {
			return err
		}
		if attempt == r.maxAttempts {
			break
		}

		delay := r.backoff.Delay(attempt)
		if delay <= 0 {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			continue
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
	return err
}
