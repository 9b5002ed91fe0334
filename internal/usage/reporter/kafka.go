package reporter

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"logvault/internal/platform/kafka/producer"
	"logvault/internal/usage"
)

// EventType tags every usage message so consumers can route on headers alone.
const EventType = "logvault.usage.snapshot"

// Kafka publishes usage snapshots to a topic, keyed by period index so a
// compacted topic keeps one record per period.
type Kafka struct {
	publisher producer.Publisher
	topic     string
	source    string
}

func NewKafka(publisher producer.Publisher, topic, source string) *Kafka {
	return &Kafka{publisher: publisher, topic: topic, source: source}
}

func (k *Kafka) Report(ctx context.Context, snap usage.Snapshot) error {
	value, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal usage snapshot: %w", err)
	}
	msg := &producer.Message{
		Topic: k.topic,
		Key:   []byte(strconv.FormatInt(snap.Period, 10)),
		Value: value,
		Headers: map[string]string{
			"event_type": EventType,
			"source":     k.source,
		},
	}
	if err := k.publisher.Produce(ctx, msg); err != nil {
		return fmt.Errorf("publish usage snapshot %d: %w", snap.Period, err)
	}
	return nil
}

var _ usage.Reporter = (*Kafka)(nil)
