package signal

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOneShot_SignalBeforeWait(t *testing.T) {
	s := New()
	require.NoError(t, s.Signal())
	assert.True(t, s.Signaled())
	assert.NoError(t, s.Wait(context.Background()))
}

func TestOneShot_WaitBlocksUntilSignal(t *testing.T) {
	s := New()
	done := make(chan error, 1)
	go func() { done <- s.Wait(context.Background()) }()

	select {
	case <-done:
		t.Fatal("wait returned before signal")
	case <-time.After(20 * time.Millisecond):
	}

	require.NoError(t, s.Signal())
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("wait did not return after signal")
	}
}

func TestOneShot_DoubleSignal(t *testing.T) {
	s := New()
	require.NoError(t, s.Signal())
	assert.ErrorIs(t, s.Signal(), ErrAlreadySignaled)
}

func TestOneShot_SignaledAfterWait(t *testing.T) {
	s := New()
	assert.False(t, s.Signaled())
	require.NoError(t, s.Signal())
	require.NoError(t, s.Wait(context.Background()))
	assert.True(t, s.Signaled(), "a consumed wakeup still counts as delivered")

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, s.Wait(ctx), context.DeadlineExceeded)
}
