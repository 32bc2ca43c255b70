package engine

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// tracerName identifies spans emitted by the engine in whatever
// TracerProvider the host process installed with otel.SetTracerProvider
// (internal/engine/otelsetup.go does this for cmd/stormcast). With no
// provider installed, otel.Tracer falls back to a no-op tracer: spans are
// created and ended but never exported.
const tracerName = "github.com/stormcast-dev/stormcast/internal/engine"

var tracer = otel.Tracer(tracerName)

// startActionSpan opens a span named after the action's key for the
// duration of one Action.run call.
func startActionSpan(ctx context.Context, key string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "action."+key)
}
