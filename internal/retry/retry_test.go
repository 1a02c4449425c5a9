package retry_test

import (
	"errors"
	"testing"
	"time"

	"github.com/unsw-cse-comp99-3900/APIOverflow-sub000/internal/retry"

	"github.com/stretchr/testify/require"
)

func TestDo_SucceedsAfterRetries(t *testing.T) {
	r := retry.New(retry.WithMaxAttempts(3))

	calls := 0
	err := r.Do(t.Context(), func() error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	})

	require.NoError(t, err)
	require.Equal(t, 3, calls)
}

func TestDo_ExhaustsAttempts(t *testing.T) {
	r := retry.New(retry.WithMaxAttempts(2))
	failure := errors.New("still broken")

	calls := 0
	err := r.Do(t.Context(), func() error {
		calls++
		return failure
	})

	require.ErrorIs(t, err, failure)
	require.Equal(t, 2, calls)
}

func TestDo_NonRetryableStopsImmediately(t *testing.T) {
	fatal := errors.New("fatal")
	r := retry.New(
		retry.WithMaxAttempts(5),
		retry.WithIsRetryableFunc(func(err error) bool {
			return !errors.Is(err, fatal)
		}),
	)

	calls := 0
	err := r.Do(t.Context(), func() error {
		calls++
		return fatal
	})

	require.ErrorIs(t, err, fatal)
	require.Equal(t, 1, calls)
}

func TestExponentialBackoff(t *testing.T) {
	b := retry.ExponentialBackoff{
		Base:   10 * time.Millisecond,
		Factor: 2,
		Max:    25 * time.Millisecond,
	}

	require.Equal(t, 10*time.Millisecond, b.Delay(1))
	require.Equal(t, 20*time.Millisecond, b.Delay(2))
	require.Equal(t, 25*time.Millisecond, b.Delay(3))
}
