package parallel

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/andriiyaremenko/streamable/parallel"

type metrics struct {
	elements metric.Int64Counter
	splits   metric.Int64Counter
	workers  metric.Int64Counter
	attrs    metric.MeasurementOption
}

func newMetrics(mp metric.MeterProvider, executorID string) (*metrics, error) {
	meter := mp.Meter(meterName)

	elements, err := meter.Int64Counter("streamable.executor.elements",
		metric.WithDescription("Number of elements folded by executor workers"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating elements counter: %w", err)
	}

	splits, err := meter.Int64Counter("streamable.executor.splits",
		metric.WithDescription("Number of times a worker handed part of its work over"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating splits counter: %w", err)
	}

	workers, err := meter.Int64Counter("streamable.executor.workers",
		metric.WithDescription("Number of started workers"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating workers counter: %w", err)
	}

	return &metrics{
		elements: elements,
		splits:   splits,
		workers:  workers,
		attrs:    metric.WithAttributes(attribute.String("executor.id", executorID)),
	}, nil
}

func (m *metrics) workerStarted(ctx context.Context) {
	m.workers.Add(ctx, 1, m.attrs)
}

func (m *metrics) split(ctx context.Context) {
	m.splits.Add(ctx, 1, m.attrs)
}

func (m *metrics) folded(ctx context.Context, n int64) {
	m.elements.Add(ctx, n, m.attrs)
}
