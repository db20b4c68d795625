package tracer

import (
	"context"
	"testing"

	"github.com/Abdurahmanit/GroupProject/lostpets/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
)

func TestInitTracerWithoutEndpoint(t *testing.T) {
	tp := InitTracer("lostpets", "", logger.NewNop())
	require.NotNil(t, tp)
	assert.Contains(t, otel.GetTextMapPropagator().Fields(), "traceparent")
	assert.NoError(t, tp.Shutdown(context.Background()))
}
