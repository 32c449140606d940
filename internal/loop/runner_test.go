package loop

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RejectsInvalidSpec(t *testing.T) {
	_, err := New("not a schedule", func(context.Context) error { return nil }, nil)
	require.Error(t, err)
}

func TestNew_EmptySpecUsesDefault(t *testing.T) {
	runner, err := New("", func(context.Context) error { return nil }, nil)
	require.NoError(t, err)
	require.NotNil(t, runner)
}

func TestRunner_FiresOnSchedule(t *testing.T) {
	var calls atomic.Int32
	runner, err := New("@every 10ms", func(context.Context) error {
		calls.Add(1)
		return nil
	}, nil)
	require.NoError(t, err)

	runner.Start()
	defer runner.Stop()

	assert.Eventually(t, func() bool {
		return calls.Load() >= 1
	}, 2*time.Second, 5*time.Millisecond)
}

func TestRunner_StopHaltsFiring(t *testing.T) {
	var calls atomic.Int32
	runner, err := New("@every 10ms", func(context.Context) error {
		calls.Add(1)
		return nil
	}, nil)
	require.NoError(t, err)

	runner.Start()
	assert.Eventually(t, func() bool { return calls.Load() >= 1 }, 2*time.Second, 5*time.Millisecond)
	runner.Stop()

	settled := calls.Load()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, settled, calls.Load())
}
