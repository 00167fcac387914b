package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/camride/camride/internal/pkg/logger"
)

func testRetrier(maxRetries int) *Retrier {
	return New(Config{
		MaxRetries: maxRetries,
		BaseDelay:  time.Millisecond,
		MaxDelay:   10 * time.Millisecond,
		Multiplier: 2.0,
	}, &logger.ZapLogger{Logger: zap.NewNop()})
}

func TestExecute_SucceedsAfterFailures(t *testing.T) {
	r := testRetrier(3)
	attempts := 0

	err := r.Execute(context.Background(), "flaky", func(ctx context.Context) error {
		attempts++
		if attempts < 3 {
			return errors.New("connection refused")
		}
		return nil
	})

	assert.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestExecute_ExhaustsBudget(t *testing.T) {
	r := testRetrier(2)
	attempts := 0
	boom := errors.New("still down")

	err := r.Execute(context.Background(), "down", func(ctx context.Context) error {
		attempts++
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 3, attempts)
}

func TestExecute_StopsOnCancelledContext(t *testing.T) {
	r := testRetrier(10)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := r.Execute(ctx, "cancelled", func(ctx context.Context) error {
		return errors.New("never retried")
	})

	assert.ErrorIs(t, err, context.Canceled)
}
