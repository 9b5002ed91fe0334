package reporter

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"logvault/internal/platform/kafka/producer"
	"logvault/internal/usage"
	"logvault/pkg/platform/circuit"
)

func TestGuardedSkipsWhileOpen(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	pub := &capturePublisher{err: errors.New("broker down")}
	breaker := circuit.New("usage",
		circuit.WithFailureThreshold(2),
		circuit.WithCooldown(time.Minute),
		circuit.WithClock(func() time.Time { return now }),
	)
	rep := NewGuarded(NewKafka(pub, "t", "n"), breaker, slog.New(slog.NewTextHandler(io.Discard, nil)))
	ctx := context.Background()

	require.Error(t, rep.Report(ctx, usage.Snapshot{Period: 1}))
	require.Error(t, rep.Report(ctx, usage.Snapshot{Period: 2}))
	assert.Len(t, pub.messages, 2)

	err := rep.Report(ctx, usage.Snapshot{Period: 3})
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.Len(t, pub.messages, 2, "open circuit must not reach the publisher")

	now = now.Add(time.Minute)
	pub.err = nil
	require.NoError(t, rep.Report(ctx, usage.Snapshot{Period: 4}))
	assert.Len(t, pub.messages, 3)
	assert.Equal(t, circuit.StateClosed, breaker.State())
}

func TestGuardedPassesThrough(t *testing.T) {
	pub := &capturePublisher{}
	rep := NewGuarded(NewKafka(pub, "t", "n"), circuit.New("usage"), nil)

	require.NoError(t, rep.Report(context.Background(), usage.Snapshot{Period: 7}))
	require.Len(t, pub.messages, 1)
	assert.Equal(t, "7", string(pub.messages[0].Key))

	pub.err = producer.ErrClosed
	assert.ErrorIs(t, rep.Report(context.Background(), usage.Snapshot{Period: 8}), producer.ErrClosed)
}
