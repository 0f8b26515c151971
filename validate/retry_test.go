package validate_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/fwojciec/recipex/validate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetry(t *testing.T) {
	t.Parallel()

	t.Run("returns after first success", func(t *testing.T) {
		t.Parallel()

		calls := 0
		err := validate.Retry(context.Background(), "x", 5, 0, func(context.Context) error {
			calls++
			if calls < 2 {
				return errors.New("fail")
			}
			return nil
		}, nil, []time.Duration{time.Millisecond})

		require.NoError(t, err)
		assert.Equal(t, 2, calls)
	})

	t.Run("logs each retry and returns the last error", func(t *testing.T) {
		t.Parallel()

		var logs []string
		calls := 0
		err := validate.Retry(context.Background(), "a.html", 3, 0, func(context.Context) error {
			calls++
			return fmt.Errorf("fail %d", calls)
		}, func(format string, args ...any) {
			logs = append(logs, fmt.Sprintf(format, args...))
		}, nil)

		require.EqualError(t, err, "fail 3")
		assert.Equal(t, []string{
			"retry a.html (attempt 2): fail 1",
			"retry a.html (attempt 3): fail 2",
		}, logs)
	})

	t.Run("bounds each attempt with the timeout", func(t *testing.T) {
		t.Parallel()

		err := validate.Retry(context.Background(), "x", 1, 10*time.Millisecond, func(ctx context.Context) error {
			<-ctx.Done()
			return ctx.Err()
		}, nil, nil)

		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("stops when the context is canceled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		calls := 0
		err := validate.Retry(ctx, "x", 5, 0, func(context.Context) error {
			calls++
			cancel()
			return errors.New("fail")
		}, nil, []time.Duration{time.Hour})

		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, calls)
	})
}
