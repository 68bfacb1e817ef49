package ports

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubChecker reports a fixed result.
type stubChecker struct {
	name string
	err  error
}

func (s stubChecker) Name() string { return s.name }

func (s stubChecker) Check(context.Context) error { return s.err }

// waitingChecker blocks until its context ends or delay elapses.
type waitingChecker struct {
	name  string
	delay time.Duration
}

func (w waitingChecker) Name() string { return w.name }

func (w waitingChecker) Check(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(w.delay):
		return nil
	}
}

func TestRegister(t *testing.T) {
	registry := NewHealthRegistry()

	require.NoError(t, registry.Register(stubChecker{name: "catalog"}))
	require.NoError(t, registry.Register(stubChecker{name: "devotional-api"}))

	err := registry.Register(stubChecker{name: "catalog"})
	require.ErrorIs(t, err, ErrDuplicateChecker)
	assert.Contains(t, err.Error(), "catalog")

	assert.Equal(t, []string{"catalog", "devotional-api"}, registry.Names())
}

func TestCheckAll(t *testing.T) {
	tests := []struct {
		name     string
		checkers []HealthChecker
		want     HealthStatus
		messages map[string]string
	}{
		{
			name: "no checkers",
			want: HealthStatusHealthy,
		},
		{
			name:     "catalog loaded",
			checkers: []HealthChecker{stubChecker{name: "catalog"}},
			want:     HealthStatusHealthy,
			messages: map[string]string{"catalog": ""},
		},
		{
			name: "catalog not loaded",
			checkers: []HealthChecker{
				stubChecker{name: "catalog", err: errors.New("catalog unavailable: not loaded")},
				stubChecker{name: "devotional-api"},
			},
			want: HealthStatusUnhealthy,
			messages: map[string]string{
				"catalog":        "catalog unavailable: not loaded",
				"devotional-api": "",
			},
		},
		{
			name: "failure does not cancel slower checks",
			checkers: []HealthChecker{
				stubChecker{name: "broken", err: errors.New("boom")},
				waitingChecker{name: "slow-upstream", delay: 50 * time.Millisecond},
			},
			want:     HealthStatusUnhealthy,
			messages: map[string]string{"broken": "boom", "slow-upstream": ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registry := NewHealthRegistry()
			for _, c := range tt.checkers {
				require.NoError(t, registry.Register(c))
			}

			result := registry.CheckAll(context.Background())

			assert.Equal(t, tt.want, result.Status)
			assert.False(t, result.Timestamp.IsZero())
			require.Len(t, result.Checks, len(tt.messages))

			for name, msg := range tt.messages {
				check := result.Checks[name]
				require.NotNil(t, check, name)
				assert.Equal(t, msg, check.Message, name)
				assert.Equal(t, msg == "", check.Status == HealthStatusHealthy, name)
			}
		})
	}
}

func TestCheckAll_CanceledContext(t *testing.T) {
	registry := NewHealthRegistry()
	require.NoError(t, registry.Register(waitingChecker{name: "slow-upstream", delay: time.Minute}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := registry.CheckAll(ctx)

	assert.Equal(t, HealthStatusUnhealthy, result.Status)
	assert.Contains(t, result.Checks["slow-upstream"].Message, "context canceled")
}

func TestCheckAll_PerCheckTimeout(t *testing.T) {
	registry := NewHealthRegistry()
	registry.timeout = 20 * time.Millisecond

	require.NoError(t, registry.Register(waitingChecker{name: "stuck", delay: time.Minute}))
	require.NoError(t, registry.Register(stubChecker{name: "catalog"}))

	start := time.Now()
	result := registry.CheckAll(context.Background())

	assert.Less(t, time.Since(start), 5*time.Second)
	assert.Equal(t, HealthStatusUnhealthy, result.Status)
	assert.Contains(t, result.Checks["stuck"].Message, "deadline exceeded")
	assert.Equal(t, HealthStatusHealthy, result.Checks["catalog"].Status)
}

func TestRegistry_ConcurrentUse(t *testing.T) {
	registry := NewHealthRegistry()

	var wg sync.WaitGroup
	for _, name := range []string{"a", "b", "c", "d"} {
		wg.Add(2)

		go func() {
			defer wg.Done()
			_ = registry.Register(stubChecker{name: name})
		}()

		go func() {
			defer wg.Done()
			_ = registry.CheckAll(context.Background())
		}()
	}

	wg.Wait()

	assert.ElementsMatch(t, []string{"a", "b", "c", "d"}, registry.Names())
	assert.Equal(t, HealthStatusHealthy, registry.CheckAll(context.Background()).Status)
}
