package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"logvault/internal/usage"
)

type countingPoller struct {
	polls atomic.Int32
}

func (p *countingPoller) Poll(context.Context) []usage.Snapshot {
	n := p.polls.Add(1)
	return []usage.Snapshot{{Period: int64(n)}}
}

func TestNewRequiresPoller(t *testing.T) {
	_, err := New(nil)
	assert.Error(t, err)
}

func TestRunOnce(t *testing.T) {
	poller := &countingPoller{}
	w, err := New(poller)
	require.NoError(t, err)

	snaps := w.RunOnce(context.Background())
	require.Len(t, snaps, 1)
	assert.Equal(t, int64(1), snaps[0].Period)
}

func TestStartPollsUntilCancelled(t *testing.T) {
	poller := &countingPoller{}
	w, err := New(poller, WithInterval(5*time.Millisecond))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Start(ctx) }()

	require.Eventually(t, func() bool { return poller.polls.Load() >= 3 }, time.Second, time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.True(t, errors.Is(err, context.Canceled))
	case <-time.After(time.Second):
		t.Fatal("worker did not stop")
	}
}
