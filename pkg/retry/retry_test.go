package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastConfig(attempts int) Config {
	return Config{
		MaxAttempts:  attempts,
		InitialDelay: time.Millisecond,
		MaxDelay:     5 * time.Millisecond,
		Multiplier:   2,
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 5, cfg.MaxAttempts)
	assert.Equal(t, time.Second, cfg.InitialDelay)
	assert.Equal(t, 30*time.Second, cfg.MaxDelay)
	assert.InEpsilon(t, 2.0, cfg.Multiplier, 0.001)
	assert.Empty(t, cfg.RetryableErrors)
}

func TestPostgresConfig(t *testing.T) {
	cfg := PostgresConfig()
	assert.Equal(t, PostgresRetryableErrors(), cfg.RetryableErrors)
	assert.Contains(t, cfg.RetryableErrors, "connection refused")
}

func TestDo(t *testing.T) {
	tests := []struct {
		name      string
		cfg       Config
		failures  int
		failWith  error
		wantCalls int
		wantErr   bool
	}{
		{
			name:      "succeeds first time",
			cfg:       fastConfig(3),
			wantCalls: 1,
		},
		{
			name:      "succeeds after retries",
			cfg:       fastConfig(3),
			failures:  2,
			failWith:  errors.New("connection refused"),
			wantCalls: 3,
		},
		{
			name:      "gives up after max attempts",
			cfg:       fastConfig(3),
			failures:  10,
			failWith:  errors.New("connection refused"),
			wantCalls: 3,
			wantErr:   true,
		},
		{
			name: "non retryable error stops",
			cfg: func() Config {
				c := fastConfig(5)
				c.RetryableErrors = PostgresRetryableErrors()
				return c
			}(),
			failures:  10,
			failWith:  errors.New("password authentication failed"),
			wantCalls: 1,
			wantErr:   true,
		},
		{
			name: "retryable pattern is case insensitive",
			cfg: func() Config {
				c := fastConfig(5)
				c.RetryableErrors = []string{"Too Many Connections"}
				return c
			}(),
			failures:  1,
			failWith:  errors.New("FATAL: too many connections"),
			wantCalls: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := Do(context.Background(), tt.cfg, func() error {
				calls++
				if calls <= tt.failures {
					return tt.failWith
				}
				return nil
			})

			assert.Equal(t, tt.wantCalls, calls)
			if tt.wantErr {
				assert.ErrorIs(t, err, tt.failWith)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDo_InvalidConfig(t *testing.T) {
	err := Do(context.Background(), Config{}, func() error { return nil })
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestDo_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := Do(ctx, fastConfig(3), func() error {
		calls++
		return nil
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, calls)
}

func TestDo_ContextTimeoutDuringBackoff(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	cfg := Config{MaxAttempts: 10, InitialDelay: time.Second, MaxDelay: time.Second, Multiplier: 1}
	err := Do(ctx, cfg, func() error { return errors.New("dial tcp: refused") })

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestDo_OnRetry(t *testing.T) {
	cfg := fastConfig(3)
	var attempts []int
	cfg.OnRetry = func(attempt int, delay time.Duration, err error) {
		attempts = append(attempts, attempt)
		assert.Positive(t, delay)
		assert.Error(t, err)
	}

	_ = Do(context.Background(), cfg, func() error { return errors.New("boom") })

	assert.Equal(t, []int{1, 2}, attempts)
}

func TestDoWithResult(t *testing.T) {
	calls := 0
	got, err := DoWithResult(context.Background(), fastConfig(3), func() (string, error) {
		calls++
		if calls < 2 {
			return "", errors.New("i/o timeout")
		}
		return "connected", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "connected", got)
	assert.Equal(t, 2, calls)
}

func TestBackoff(t *testing.T) {
	cfg := Config{InitialDelay: 100 * time.Millisecond, MaxDelay: time.Second, Multiplier: 2}

	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{-1, 100 * time.Millisecond},
		{0, 100 * time.Millisecond},
		{1, 200 * time.Millisecond},
		{2, 400 * time.Millisecond},
		{3, 800 * time.Millisecond},
		{4, time.Second},
		{10, time.Second},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, backoff(tt.attempt, cfg), "attempt %d", tt.attempt)
	}
}

func TestJitter(t *testing.T) {
	d := 100 * time.Millisecond
	for i := 0; i < 100; i++ {
		j := jitter(d)
		assert.GreaterOrEqual(t, j, 90*time.Millisecond)
		assert.LessOrEqual(t, j, 110*time.Millisecond)
	}
	assert.Zero(t, jitter(0))
}

func TestIsRetryable(t *testing.T) {
	cfg := Config{RetryableErrors: []string{"connection refused"}}

	assert.False(t, IsRetryable(nil, cfg))
	assert.True(t, IsRetryable(errors.New("dial: connection refused"), cfg))
	assert.False(t, IsRetryable(errors.New("syntax error"), cfg))
	assert.True(t, IsRetryable(errors.New("anything"), Config{}))
}
