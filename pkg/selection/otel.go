package selection

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// The store instruments through the global otel providers, so embedding
// applications that never install providers pay only no-op calls.
const instrumentationName = "docketry.selection"

var tracer trace.Tracer = otel.Tracer(instrumentationName)

var (
	instrumentsOnce sync.Once
	mutationCounter metric.Int64Counter
	warningCounter  metric.Int64Counter
)

func instruments() (metric.Int64Counter, metric.Int64Counter) {
	instrumentsOnce.Do(func() {
		meter := otel.Meter(instrumentationName)
		mutationCounter, _ = meter.Int64Counter("docketry.selection.mutations.total",
			metric.WithDescription("Total number of selection store mutations"),
			metric.WithUnit("{mutation}"),
		)
		warningCounter, _ = meter.Int64Counter("docketry.selection.warnings.total",
			metric.WithDescription("Total number of recomputations that produced warnings"),
			metric.WithUnit("{recompute}"),
		)
	})
	return mutationCounter, warningCounter
}

func recordMutation(ctx context.Context, op string, warned bool) {
	mutations, warnings := instruments()
	attrs := metric.WithAttributes(attribute.String("selection.op", op))
	if mutations != nil {
		mutations.Add(ctx, 1, attrs)
	}
	if warned && warnings != nil {
		warnings.Add(ctx, 1, attrs)
	}
}
