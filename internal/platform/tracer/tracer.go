// Package tracer provides a lightweight tracing abstraction.
//
// Callers depend on the Tracer interface rather than OpenTelemetry directly,
// so tests run with NoopTracer or Recorder and production wires OTelTracer.
package tracer

import (
	"context"
	"time"
)

// Span represents an active trace span.
type Span interface {
	// End completes the span, recording any error that occurred.
	// End must be called exactly once, typically via defer.
	End(err error)

	SetAttributes(attrs ...Attribute)

	// AddEvent records a timestamped event within the span.
	AddEvent(name string, attrs ...Attribute)
}

// Tracer creates spans. Implementations must be safe for concurrent use.
type Tracer interface {
	// Start creates a new span with the given name and attributes.
	//
	// Example:
	//   ctx, span := t.Start(ctx, tracer.SpanCheckpoint,
	//       tracer.String(tracer.AttrBackend, "file"),
	//   )
	//   defer func() { span.End(err) }()
	Start(ctx context.Context, name string, attrs ...Attribute) (context.Context, Span)
}

// Attribute represents a key-value pair attached to spans.
type Attribute struct {
	Key   string
	Value any
}

func String(key, value string) Attribute {
	return Attribute{Key: key, Value: value}
}

func Bool(key string, value bool) Attribute {
	return Attribute{Key: key, Value: value}
}

func Int64(key string, value int64) Attribute {
	return Attribute{Key: key, Value: value}
}

func Int(key string, value int) Attribute {
	return Attribute{Key: key, Value: int64(value)}
}

// Duration creates a duration attribute in milliseconds.
func Duration(key string, value time.Duration) Attribute {
	return Attribute{Key: key, Value: value.Milliseconds()}
}

// Span names.
const (
	SpanCheckpoint = "logstore.checkpoint"
	SpanRestore    = "logstore.restore"
	SpanUsagePoll  = "usage.poll"
)

// Attribute keys.
const (
	AttrBackend      = "persistence.backend"
	AttrEntries      = "logstore.entries"
	AttrCapacity     = "logstore.capacity"
	AttrImageFound   = "persistence.image_found"
	AttrSnapshots    = "usage.snapshots"
	AttrCheckpointID = "checkpoint.id"
)

// Event names.
const (
	EventImageDiscarded = "persistence.image_discarded"
)
