package tracer_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"

	"logvault/internal/platform/tracer"
)

func TestNoopTracer_Start(t *testing.T) {
	tr := tracer.NewNoop()
	ctx := context.Background()

	newCtx, span := tr.Start(ctx, tracer.SpanCheckpoint, tracer.String(tracer.AttrBackend, "file"))

	assert.Equal(t, ctx, newCtx)
	require.NotNil(t, span)
	span.SetAttributes(tracer.Int(tracer.AttrEntries, 3))
	span.AddEvent(tracer.EventImageDiscarded)
	span.End(errors.New("boom"))
}

func TestOTelTracer_WithInjectedTracer(t *testing.T) {
	tr := tracer.NewOTel(tracer.WithOTelTracer(noop.NewTracerProvider().Tracer("test")))

	_, span := tr.Start(context.Background(), tracer.SpanRestore,
		tracer.Bool(tracer.AttrImageFound, true),
		tracer.Int64(tracer.AttrCapacity, 1000),
	)
	require.NotNil(t, span)
	span.SetAttributes(tracer.Duration("elapsed", 1500*1e6))
	span.End(nil)
}

func TestRecorder(t *testing.T) {
	rec := tracer.NewRecorder()

	_, span := rec.Start(context.Background(), tracer.SpanCheckpoint, tracer.String(tracer.AttrBackend, "memory"))
	span.SetAttributes(tracer.Int(tracer.AttrEntries, 12))
	span.AddEvent(tracer.EventImageDiscarded)
	span.End(errors.New("disk full"))

	_, other := rec.Start(context.Background(), tracer.SpanUsagePoll)
	other.End(nil)

	spans := rec.Spans()
	require.Len(t, spans, 2)
	assert.Equal(t, "memory", spans[0].Attributes[tracer.AttrBackend])
	assert.Equal(t, int64(12), spans[0].Attributes[tracer.AttrEntries])
	assert.Equal(t, []string{tracer.EventImageDiscarded}, spans[0].Events)
	assert.EqualError(t, spans[0].Err, "disk full")

	assert.Len(t, rec.Named(tracer.SpanUsagePoll), 1)
}

func TestAttributeConstructors(t *testing.T) {
	assert.Equal(t, int64(150), tracer.Duration("latency", 150*1e6).Value)
	assert.Equal(t, int64(7), tracer.Int("n", 7).Value)
	assert.Equal(t, true, tracer.Bool("flag", true).Value)
}
