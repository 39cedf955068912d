package circuitbreaker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errRedisDown = errors.New("dial tcp: connection refused")

type transition struct{ from, to State }

func newTestBreaker(t *testing.T) (*CircuitBreaker, *time.Time, *[]transition) {
	t.Helper()

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	var changes []transition
	cb := New(Config{
		Name:        "redis",
		MaxFailures: 2,
		Cooldown:    time.Minute,
		OnStateChange: func(name string, from, to State) {
			assert.Equal(t, "redis", name)
			changes = append(changes, transition{from, to})
		},
	})
	cb.now = func() time.Time { return now }
	return cb, &now, &changes
}

func fail(context.Context) error { return errRedisDown }
func succeed(context.Context) error { return nil }

func TestCircuitBreaker_OpensAfterConsecutiveFailures(t *testing.T) {
	cb, _, changes := newTestBreaker(t)
	ctx := context.Background()

	assert.ErrorIs(t, cb.Execute(ctx, fail), errRedisDown)
	assert.Equal(t, StateClosed, cb.State())

	assert.ErrorIs(t, cb.Execute(ctx, fail), errRedisDown)
	assert.Equal(t, StateOpen, cb.State())

	called := false
	err := cb.Execute(ctx, func(context.Context) error { called = true; return nil })
	assert.ErrorIs(t, err, ErrOpen)
	assert.False(t, called)

	assert.Equal(t, []transition{{StateClosed, StateOpen}}, *changes)
}

func TestCircuitBreaker_SuccessResetsFailures(t *testing.T) {
	cb, _, _ := newTestBreaker(t)
	ctx := context.Background()

	_ = cb.Execute(ctx, fail)
	require.NoError(t, cb.Execute(ctx, succeed))
	_ = cb.Execute(ctx, fail)

	assert.Equal(t, StateClosed, cb.State())
}

func TestCircuitBreaker_ProbeAfterCooldown(t *testing.T) {
	ctx := context.Background()

	t.Run("successful probe closes", func(t *testing.T) {
		cb, now, changes := newTestBreaker(t)
		_ = cb.Execute(ctx, fail)
		_ = cb.Execute(ctx, fail)

		*now = now.Add(time.Minute)
		require.NoError(t, cb.Execute(ctx, succeed))

		assert.Equal(t, StateClosed, cb.State())
		assert.Equal(t, []transition{
			{StateClosed, StateOpen},
			{StateOpen, StateHalfOpen},
			{StateHalfOpen, StateClosed},
		}, *changes)
	})

	t.Run("failed probe reopens", func(t *testing.T) {
		cb, now, _ := newTestBreaker(t)
		_ = cb.Execute(ctx, fail)
		_ = cb.Execute(ctx, fail)

		*now = now.Add(time.Minute)
		assert.ErrorIs(t, cb.Execute(ctx, fail), errRedisDown)
		assert.Equal(t, StateOpen, cb.State())

		*now = now.Add(30 * time.Second)
		assert.ErrorIs(t, cb.Execute(ctx, succeed), ErrOpen)
	})

	t.Run("one probe at a time", func(t *testing.T) {
		cb, now, _ := newTestBreaker(t)
		_ = cb.Execute(ctx, fail)
		_ = cb.Execute(ctx, fail)
		*now = now.Add(time.Minute)

		err := cb.Execute(ctx, func(ctx context.Context) error {
			return cb.Execute(ctx, succeed)
		})
		assert.ErrorIs(t, err, ErrOpen, "nested call during probe is rejected")
	})
}

func TestCircuitBreaker_CancellationIsNotFailure(t *testing.T) {
	cb, _, _ := newTestBreaker(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_ = cb.Execute(ctx, func(context.Context) error { return context.Canceled })
	}
	assert.Equal(t, StateClosed, cb.State())
}

func TestNew_Defaults(t *testing.T) {
	cb := New(Config{Name: "x"})
	assert.Equal(t, 3, cb.config.MaxFailures)
	assert.Equal(t, 10*time.Second, cb.config.Cooldown)
	assert.Equal(t, "x", cb.Name())
	assert.Equal(t, "half-open", StateHalfOpen.String())
}
