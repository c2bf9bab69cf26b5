package trace

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	capability "github.com/ipfs/go-capability"
	captest "github.com/ipfs/go-capability/test"
)

func TestTraceAll(t *testing.T) {
	tracer := otel.Tracer("tracer")
	captest.SubtestAll(t, Decorator(tracer))
}

func TestTraceSpans(t *testing.T) {
	ctx := context.Background()
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	defer tp.Shutdown(ctx)

	c, err := New(captest.NewProbe(nil), tp.Tracer("test"))
	require.NoError(t, err)
	require.NoError(t, c.Perform(ctx))
	require.NoError(t, c.Close())

	spans := sr.Ended()
	require.Len(t, spans, 2)
	require.Equal(t, "Perform", spans[0].Name())
	require.Equal(t, "Close", spans[1].Name())
	require.Equal(t, "*captest.Probe", spans[0].Attributes()[0].Value.AsString())
}

func TestTraceRecordsError(t *testing.T) {
	ctx := context.Background()
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	defer tp.Shutdown(ctx)

	c, err := New(captest.NewFailingProbe(nil, captest.ErrTest), tp.Tracer("test"))
	require.NoError(t, err)
	require.ErrorIs(t, c.Perform(ctx), captest.ErrTest)

	spans := sr.Ended()
	require.Len(t, spans, 1)
	require.Equal(t, codes.Error, spans[0].Status().Code)
	require.Equal(t, captest.ErrTest.Error(), spans[0].Status().Description)
}

func TestTraceNilInner(t *testing.T) {
	_, err := New(nil, otel.Tracer("tracer"))
	require.ErrorIs(t, err, capability.ErrNilCapability)
}
