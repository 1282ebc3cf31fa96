package observability

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestInitTelemetry_Disabled(t *testing.T) {
	shutdown, err := InitTelemetry(context.Background(), "voxeld", false)
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestInstall_RecordsSpans(t *testing.T) {
	prev := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	rec := tracetest.NewSpanRecorder()
	shutdown, err := install(context.Background(), "voxeld-test", trace.WithSpanProcessor(rec))
	require.NoError(t, err)

	_, span := Tracer().Start(context.Background(), "engine.tick")
	span.End()

	spans := rec.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "engine.tick", spans[0].Name())

	assert.NoError(t, shutdown(context.Background()))
}
