package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/Alijeyrad/reqtrace/pkg/reqctx"
)

// ScopeMetrics records request scope lifecycle metrics.
// It implements reqctx.Observer.
type ScopeMetrics struct {
	opened   metric.Int64Counter
	active   metric.Int64UpDownCounter
	duration metric.Float64Histogram
}

var _ reqctx.Observer = (*ScopeMetrics)(nil)

// NewScopeMetrics creates the instruments on mp, or on the global meter
// provider when mp is nil.
func NewScopeMetrics(mp metric.MeterProvider) (*ScopeMetrics, error) {
	if mp == nil {
		mp = otel.GetMeterProvider()
	}
	meter := mp.Meter(tracerName)

	opened, err := meter.Int64Counter(
		"reqctx_scopes_opened",
		metric.WithDescription("Request scopes opened, by whether the request id was generated"),
		metric.WithUnit("{scope}"),
	)
	if err != nil {
		return nil, err
	}

	active, err := meter.Int64UpDownCounter(
		"reqctx_scopes_active",
		metric.WithDescription("Request scopes currently open"),
		metric.WithUnit("{scope}"),
	)
	if err != nil {
		return nil, err
	}

	duration, err := meter.Float64Histogram(
		"reqctx_scope_duration_ms",
		metric.WithDescription("Time between scope open and close in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	return &ScopeMetrics{opened: opened, active: active, duration: duration}, nil
}

func (m *ScopeMetrics) ScopeOpened(ctx context.Context, header string, generated bool) {
	m.opened.Add(ctx, 1, metric.WithAttributes(
		attribute.String("header", header),
		attribute.Bool("generated", generated),
	))
	m.active.Add(ctx, 1)
}

func (m *ScopeMetrics) ScopeClosed(ctx context.Context, header string, elapsed time.Duration, failed bool) {
	m.active.Add(ctx, -1)
	m.duration.Record(ctx, float64(elapsed.Microseconds())/1000, metric.WithAttributes(
		attribute.String("header", header),
		attribute.Bool("failed", failed),
	))
}
