//go:build !integration

package circuitbreaker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errMongoDown = errors.New("server selection timeout")

type transition struct{ from, to State }

// testBreaker returns a breaker on a manual clock and the transitions it reports.
func testBreaker(failures, successes int, timeout time.Duration) (*CircuitBreaker, func(time.Duration), *[]transition) {
	var seen []transition
	cb := New(Config{
		FailureThreshold: failures,
		SuccessThreshold: successes,
		Timeout:          timeout,
		Name:             "mongodb_rate_cards",
		OnStateChange: func(name string, from, to State) {
			seen = append(seen, transition{from, to})
		},
	})
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	cb.now = func() time.Time { return now }
	return cb, func(d time.Duration) { now = now.Add(d) }, &seen
}

func fail(cb *CircuitBreaker) error {
	return cb.Execute(context.Background(), func() error { return errMongoDown })
}

func succeed(cb *CircuitBreaker) error {
	return cb.Execute(context.Background(), func() error { return nil })
}

func TestState_String(t *testing.T) {
	for state, want := range map[State]string{
		StateClosed:   "closed",
		StateOpen:     "open",
		StateHalfOpen: "half-open",
		State(7):      "unknown",
		State(-1):     "unknown",
	} {
		assert.Equal(t, want, state.String())
	}
}

func TestDefaultConfig(t *testing.T) {
	assert.Equal(t, Config{
		FailureThreshold: 5,
		SuccessThreshold: 2,
		Timeout:          30 * time.Second,
		Name:             "circuit-breaker",
	}, DefaultConfig())
}

func TestCircuitBreaker_Opens(t *testing.T) {
	cb, _, seen := testBreaker(3, 1, time.Minute)

	require.ErrorIs(t, fail(cb), errMongoDown)
	require.ErrorIs(t, fail(cb), errMongoDown)
	assert.Equal(t, StateClosed, cb.State())

	require.NoError(t, succeed(cb), "a success resets the failure streak")
	assert.Zero(t, cb.GetStats().FailureCount)

	for i := 0; i < 3; i++ {
		_ = fail(cb)
	}
	assert.True(t, cb.IsOpen())

	called := false
	err := cb.Execute(context.Background(), func() error { called = true; return nil })
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.False(t, called)
	assert.Equal(t, []transition{{StateClosed, StateOpen}}, *seen)
}

func TestCircuitBreaker_HalfOpen(t *testing.T) {
	t.Run("probes close it after the success threshold", func(t *testing.T) {
		cb, advance, seen := testBreaker(1, 2, 30*time.Second)
		_ = fail(cb)

		advance(29 * time.Second)
		assert.ErrorIs(t, succeed(cb), ErrCircuitOpen)

		advance(time.Second)
		require.NoError(t, succeed(cb))
		assert.Equal(t, StateHalfOpen, cb.State())
		assert.Equal(t, 1, cb.GetStats().SuccessCount)

		require.NoError(t, succeed(cb))
		assert.Equal(t, StateClosed, cb.State())
		assert.Equal(t, []transition{
			{StateClosed, StateOpen},
			{StateOpen, StateHalfOpen},
			{StateHalfOpen, StateClosed},
		}, *seen)
	})

	t.Run("one failed probe reopens it", func(t *testing.T) {
		cb, advance, seen := testBreaker(2, 2, 30*time.Second)
		_ = fail(cb)
		_ = fail(cb)
		advance(30 * time.Second)

		require.NoError(t, succeed(cb))
		require.ErrorIs(t, fail(cb), errMongoDown)

		assert.True(t, cb.IsOpen())
		assert.Equal(t, 2, cb.GetStats().FailureCount)
		assert.Zero(t, cb.GetStats().SuccessCount)

		advance(10 * time.Second)
		assert.ErrorIs(t, succeed(cb), ErrCircuitOpen, "the timeout restarts from the failed probe")
		assert.Equal(t, transition{StateHalfOpen, StateOpen}, (*seen)[len(*seen)-1])
	})
}

func TestCircuitBreaker_ContextErrors(t *testing.T) {
	cancelled, cancel := context.WithCancel(context.Background())
	cancel()

	tests := []struct {
		name    string
		ctx     context.Context
		fnErr   error
		wantErr error
		called  bool
	}{
		{name: "cancelled before the call", ctx: cancelled, wantErr: context.Canceled},
		{name: "deadline inside the call", ctx: context.Background(), fnErr: context.DeadlineExceeded, wantErr: context.DeadlineExceeded, called: true},
		{name: "wrapped cancellation inside the call", ctx: context.Background(), fnErr: errors.Join(errMongoDown, context.Canceled), wantErr: context.Canceled, called: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cb, _, seen := testBreaker(1, 1, time.Minute)
			called := false

			err := cb.Execute(tt.ctx, func() error {
				called = true
				return tt.fnErr
			})

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.called, called)
			assert.Equal(t, StateClosed, cb.State())
			assert.Zero(t, cb.GetStats().FailureCount)
			assert.Empty(t, *seen)
		})
	}
}

func TestCircuitBreaker_GetStats(t *testing.T) {
	cb, advance, _ := testBreaker(2, 1, time.Minute)

	stats := cb.GetStats()
	assert.Equal(t, "mongodb_rate_cards", stats.Name)
	assert.Equal(t, "closed", stats.State)
	assert.True(t, stats.IsHealthy)
	assert.True(t, stats.LastFailure.IsZero())

	advance(time.Second)
	_ = fail(cb)
	_ = fail(cb)

	stats = cb.GetStats()
	assert.Equal(t, "open", stats.State)
	assert.False(t, stats.IsHealthy)
	assert.Equal(t, 2, stats.FailureCount)
	assert.Equal(t, cb.now(), stats.LastFailure)
}

func TestNew_RaisesThresholds(t *testing.T) {
	cb := New(Config{Name: "zero"})

	assert.Equal(t, 1, cb.cfg.FailureThreshold)
	assert.Equal(t, 1, cb.cfg.SuccessThreshold)
	assert.Equal(t, "zero", cb.Name())
}

func TestDo(t *testing.T) {
	cb, _, _ := testBreaker(1, 1, time.Minute)

	v, err := Do(context.Background(), cb, func() (float64, error) { return 72.5, nil })
	require.NoError(t, err)
	assert.Equal(t, 72.5, v)

	_, err = Do(context.Background(), cb, func() (string, error) { return "", errMongoDown })
	assert.ErrorIs(t, err, errMongoDown)

	v, err = Do(context.Background(), cb, func() (float64, error) { return 1, nil })
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.Zero(t, v)
}
