package tracer

import (
	"bytes"
	"context"
	"testing"

	"bizarre-bazaar/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExporterKind(t *testing.T) {
	t.Parallel()

	assert.Equal(t, ExporterNone, ExporterKind(&config.Config{}))
	assert.Equal(t, ExporterStdout, ExporterKind(&config.Config{TraceStdout: true}))
	assert.Equal(t, ExporterOTLP, ExporterKind(&config.Config{RemoteTraceRpcURI: "tempo:4317", TraceStdout: true}))
}

func TestStdoutProviderWritesSpans(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	var buf bytes.Buffer
	tp, err := NewProvider(ctx, &config.Config{AppName: "bazaar-test", Env: "test", TraceStdout: true}, &buf)
	require.NoError(t, err)

	_, span := tp.Tracer("test").Start(ctx, "CatalogService.AddReview")
	assert.True(t, span.SpanContext().IsValid())
	span.End()

	require.NoError(t, tp.Shutdown(ctx))
	assert.Contains(t, buf.String(), "CatalogService.AddReview")
	assert.Contains(t, buf.String(), "bazaar-test")
}

func TestProviderWithoutExporterStillTraces(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	tp, err := NewProvider(ctx, &config.Config{AppName: "bazaar-test"}, nil)
	require.NoError(t, err)
	defer func() { _ = tp.Shutdown(ctx) }()

	_, span := tp.Tracer("test").Start(ctx, "op")
	defer span.End()
	assert.True(t, span.SpanContext().TraceID().IsValid())
}
