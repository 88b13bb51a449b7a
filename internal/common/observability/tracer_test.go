package observability

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTracer_NoCollectorFallsBackToNoop(t *testing.T) {
	tracer := NewTracer("test-service", "")

	require.NotNil(t, tracer)
	assert.Nil(t, tracer.provider)

	// Shutdown without a provider must be a no-op
	tracer.Shutdown()
}

func TestStartJobSpan(t *testing.T) {
	tracer := NewTracer("test-service", "")

	ctx, span := tracer.StartJobSpan(context.Background(), "calculate-garage-score", 12345)

	require.NotNil(t, span)
	assert.NotNil(t, ctx)
	span.End()
}
