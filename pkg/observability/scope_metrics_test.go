package observability

import (
	"context"
	"errors"
	"testing"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/Alijeyrad/reqtrace/pkg/reqctx"
)

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Metrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	out := make(map[string]metricdata.Metrics)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m
		}
	}
	return out
}

func TestScopeMetrics(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer func() { _ = mp.Shutdown(context.Background()) }()

	sm, err := NewScopeMetrics(mp)
	if err != nil {
		t.Fatalf("NewScopeMetrics() error = %v", err)
	}
	store := reqctx.NewStore(reqctx.WithObserver(sm))

	_ = store.Run(context.Background(), reqctx.Values{}, func(ctx context.Context) error { return nil })
	_ = store.Run(context.Background(), reqctx.Values{reqctx.DefaultHeader: "given"}, func(ctx context.Context) error {
		return errors.New("failed")
	})

	metrics := collect(t, reader)

	opened, ok := metrics["reqctx_scopes_opened"].Data.(metricdata.Sum[int64])
	if !ok {
		t.Fatalf("reqctx_scopes_opened missing or wrong type: %T", metrics["reqctx_scopes_opened"].Data)
	}
	var total int64
	for _, dp := range opened.DataPoints {
		total += dp.Value
	}
	if total != 2 {
		t.Errorf("scopes opened = %d, want 2", total)
	}
	if len(opened.DataPoints) != 2 {
		t.Errorf("opened data points = %d, want 2 (generated true/false)", len(opened.DataPoints))
	}

	active, ok := metrics["reqctx_scopes_active"].Data.(metricdata.Sum[int64])
	if !ok {
		t.Fatalf("reqctx_scopes_active missing or wrong type")
	}
	for _, dp := range active.DataPoints {
		if dp.Value != 0 {
			t.Errorf("active scopes = %d after all closed, want 0", dp.Value)
		}
	}

	hist, ok := metrics["reqctx_scope_duration_ms"].Data.(metricdata.Histogram[float64])
	if !ok {
		t.Fatalf("reqctx_scope_duration_ms missing or wrong type")
	}
	var count uint64
	for _, dp := range hist.DataPoints {
		count += dp.Count
	}
	if count != 2 {
		t.Errorf("duration samples = %d, want 2", count)
	}
}
