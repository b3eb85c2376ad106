package embedding

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetryWithBackoff_FirstAttemptSucceeds(t *testing.T) {
	attempts := 0
	operation := func() error {
		attempts++
		return nil
	}

	err := RetryWithBackoff(context.Background(), operation, 3, 5*time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, 1, attempts)
}

func TestRetryWithBackoff_EventualSuccess(t *testing.T) {
	attempts := 0
	operation := func() error {
		attempts++
		if attempts < 3 {
			return errors.New("transient failure")
		}
		return nil
	}

	err := RetryWithBackoff(context.Background(), operation, 5, 5*time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestRetryWithBackoff_BudgetExhausted(t *testing.T) {
	attempts := 0
	persistent := errors.New("persistent failure")
	operation := func() error {
		attempts++
		return persistent
	}

	err := RetryWithBackoff(context.Background(), operation, 3, 5*time.Millisecond)
	require.Error(t, err)
	assert.ErrorIs(t, err, persistent, "last attempt's error should come back")
	assert.Equal(t, 3, attempts, "should attempt exactly maxAttempts times")
}

func TestRetryWithBackoff_ContextCanceledBetweenAttempts(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	attempts := 0
	operation := func() error {
		attempts++
		if attempts == 2 {
			cancel()
		}
		return errors.New("failure")
	}

	err := RetryWithBackoff(ctx, operation, 10, 5*time.Millisecond)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.LessOrEqual(t, attempts, 2, "no attempts should run after cancellation")
}

func TestRetryWithBackoff_ContextAlreadyCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	attempts := 0
	operation := func() error {
		attempts++
		return nil
	}

	err := RetryWithBackoff(ctx, operation, 3, 5*time.Millisecond)
	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, attempts, "operation should never run with a dead context")
}

func TestRetryWithBackoff_InvalidMaxAttempts(t *testing.T) {
	for _, maxAttempts := range []int{0, -1} {
		attempts := 0
		operation := func() error {
			attempts++
			return nil
		}

		err := RetryWithBackoff(context.Background(), operation, maxAttempts, 5*time.Millisecond)
		require.ErrorIs(t, err, ErrInvalidMaxAttempts)
		assert.Zero(t, attempts)
	}
}

func TestRetryWithBackoff_DelaysGrow(t *testing.T) {
	attempts := 0
	var gaps []time.Duration
	last := time.Now()

	operation := func() error {
		attempts++
		if attempts > 1 {
			gaps = append(gaps, time.Since(last))
		}
		last = time.Now()
		if attempts < 4 {
			return errors.New("failure")
		}
		return nil
	}

	err := RetryWithBackoff(context.Background(), operation, 5, 10*time.Millisecond)
	require.NoError(t, err)
	require.Len(t, gaps, 3)
	assert.Greater(t, gaps[1], gaps[0], "second delay should exceed the first")
	assert.Greater(t, gaps[2], gaps[1], "third delay should exceed the second")
}
