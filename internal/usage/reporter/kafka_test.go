package reporter

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"logvault/internal/platform/kafka/producer"
	"logvault/internal/usage"
)

type capturePublisher struct {
	messages []*producer.Message
	err      error
}

func (p *capturePublisher) Produce(_ context.Context, msg *producer.Message) error {
	p.messages = append(p.messages, msg)
	return p.err
}

func TestKafkaReport(t *testing.T) {
	pub := &capturePublisher{}
	rep := NewKafka(pub, "logvault.usage", "node-a")

	snap := usage.Snapshot{
		Period:      19875,
		PeriodStart: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:   time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC),
		TotalAdded:  42,
		Added:       10,
	}
	require.NoError(t, rep.Report(context.Background(), snap))

	require.Len(t, pub.messages, 1)
	msg := pub.messages[0]
	assert.Equal(t, "logvault.usage", msg.Topic)
	assert.Equal(t, "19875", string(msg.Key))
	assert.Equal(t, EventType, msg.Headers["event_type"])
	assert.Equal(t, "node-a", msg.Headers["source"])

	var decoded usage.Snapshot
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, snap, decoded)
}

func TestKafkaReportError(t *testing.T) {
	pub := &capturePublisher{err: producer.ErrClosed}
	err := NewKafka(pub, "t", "n").Report(context.Background(), usage.Snapshot{Period: 3})
	require.Error(t, err)
	assert.True(t, errors.Is(err, producer.ErrClosed))
	assert.Contains(t, err.Error(), "snapshot 3")
}
