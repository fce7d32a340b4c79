package schedule

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewCronTrigger(t *testing.T) {
	noop := func(context.Context) error { return nil }

	tests := []struct {
		name    string
		spec    string
		wantErr bool
	}{
		{name: "daily at 2am", spec: "0 2 * * *"},
		{name: "every 15 minutes", spec: "*/15 * * * *"},
		{name: "every minute", spec: "* * * * *"},
		{name: "empty", spec: "", wantErr: true},
		{name: "wrong format", spec: "not a cron spec", wantErr: true},
		{name: "too few fields", spec: "0 2 *", wantErr: true},
		{name: "seconds field not accepted", spec: "0 0 2 * * *", wantErr: true},
		{name: "invalid value", spec: "60 2 * * *", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trigger, err := NewCronTrigger(tt.spec, noop, quietLogger())
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidCronSpec)
				assert.Nil(t, trigger)
				assert.ErrorIs(t, Validate(tt.spec), ErrInvalidCronSpec)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, trigger)
			assert.NoError(t, Validate(tt.spec))
		})
	}
}

func TestCronTrigger_NextRun(t *testing.T) {
	trigger, err := NewCronTrigger("0 2 * * *", func(context.Context) error { return nil }, quietLogger())
	require.NoError(t, err)

	fixed := time.Date(2024, 5, 1, 13, 30, 0, 0, time.UTC)
	trigger.now = func() time.Time { return fixed }

	assert.Equal(t, time.Date(2024, 5, 2, 2, 0, 0, 0, time.UTC), trigger.NextRun())
}

func TestCronTrigger_RunUntilCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var runs atomic.Int32
	run := func(context.Context) error {
		if runs.Add(1) == 3 {
			cancel()
		}
		return errors.New("failing runs keep the schedule alive")
	}

	trigger, err := NewCronTrigger("* * * * *", run, quietLogger())
	require.NoError(t, err)

	fired := make(chan time.Time)
	close(fired)
	trigger.after = func(time.Duration) <-chan time.Time { return fired }

	done := make(chan struct{})
	go func() {
		trigger.Run(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("trigger did not stop after cancellation")
	}
	assert.GreaterOrEqual(t, runs.Load(), int32(3))
}

func TestCronTrigger_StartReturnsImmediately(t *testing.T) {
	trigger, err := NewCronTrigger("0 2 * * *", func(context.Context) error { return nil }, quietLogger())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	trigger.Start(ctx)
	cancel()
}
