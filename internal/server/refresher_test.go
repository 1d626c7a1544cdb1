package server

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefresherRequiresScheduledJob(t *testing.T) {
	refresher := NewRefresher(func(context.Context) error { return nil }, quietLogger())
	assert.Error(t, refresher.Start())
}

func TestRefresherRejectsBadExpression(t *testing.T) {
	refresher := NewRefresher(func(context.Context) error { return nil }, quietLogger())
	assert.Error(t, refresher.Schedule("not a cron expression"))
}

func TestRefresherStartStop(t *testing.T) {
	refresher := NewRefresher(func(context.Context) error { return nil }, quietLogger())

	require.NoError(t, refresher.Schedule("@every 1h"))
	require.NoError(t, refresher.Start())
	assert.True(t, refresher.IsRunning())

	// Double start is rejected
	assert.Error(t, refresher.Start())

	next := refresher.NextRun()
	assert.False(t, next.IsZero())
	assert.WithinDuration(t, time.Now().Add(time.Hour), next, 2*time.Minute)

	refresher.Stop()
	assert.False(t, refresher.IsRunning())
	assert.True(t, refresher.NextRun().IsZero())
}

func TestRefresherRunsReload(t *testing.T) {
	var calls atomic.Int32
	refresher := NewRefresher(func(context.Context) error {
		calls.Add(1)
		return nil
	}, quietLogger())

	require.NoError(t, refresher.Schedule("@every 1s"))
	require.NoError(t, refresher.Start())
	defer refresher.Stop()

	assert.Eventually(t, func() bool {
		return calls.Load() >= 1
	}, 5*time.Second, 50*time.Millisecond, "reload never ran")
}
