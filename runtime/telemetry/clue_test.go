package telemetry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
	"goa.design/clue/log"
)

// countingMeter counts instrument creations.
type countingMeter struct {
	metricnoop.Meter
	counters   int
	histograms int
	failFirst  bool
}

func (m *countingMeter) Float64Counter(name string, opts ...metric.Float64CounterOption) (metric.Float64Counter, error) {
	m.counters++
	if m.failFirst && m.counters == 1 {
		return nil, errors.New("meter unavailable")
	}
	return m.Meter.Float64Counter(name, opts...)
}

func (m *countingMeter) Float64Histogram(name string, opts ...metric.Float64HistogramOption) (metric.Float64Histogram, error) {
	m.histograms++
	return m.Meter.Float64Histogram(name, opts...)
}

func TestMetricsCacheInstruments(t *testing.T) {
	t.Parallel()

	meter := &countingMeter{}
	m := newOTELMetrics(meter)
	for range 3 {
		m.IncCounter("searchattr.reconcile.outcome", 1, "outcome", "added")
		m.RecordTimer("searchattr.reconcile.duration", time.Millisecond, "outcome", "added")
	}
	m.IncCounter("searchattr.attributes.added", 2)

	require.Equal(t, 2, meter.counters)
	require.Equal(t, 1, meter.histograms)
}

func TestMetricsRetryFailedInstrument(t *testing.T) {
	t.Parallel()

	meter := &countingMeter{failFirst: true}
	m := newOTELMetrics(meter)
	m.IncCounter("searchattr.reconcile.outcome", 1)
	require.Empty(t, m.counters)

	m.IncCounter("searchattr.reconcile.outcome", 1)
	m.IncCounter("searchattr.reconcile.outcome", 1)
	require.Len(t, m.counters, 1)
	require.Equal(t, 2, meter.counters)
}

func TestFielders(t *testing.T) {
	t.Parallel()

	got := fielders("registration failed", []any{"namespace", "default", 42, "skipped", "error", errors.New("boom"), "dangling"})
	require.Equal(t, []log.Fielder{
		log.KV{K: "msg", V: "registration failed"},
		log.KV{K: "namespace", V: "default"},
		log.KV{K: "error", V: "boom"},
		log.KV{K: "dangling", V: nil},
	}, got)
}

func TestTagAttrs(t *testing.T) {
	t.Parallel()

	got := tagAttrs([]string{"outcome", "added", "namespace"})
	require.Equal(t, []attribute.KeyValue{
		attribute.String("outcome", "added"),
		attribute.String("namespace", ""),
	}, got)
}

func TestToAttr(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		v    any
		want attribute.KeyValue
	}{
		{name: "string slice", v: []string{"postId"}, want: attribute.StringSlice("k", []string{"postId"})},
		{name: "int", v: 2, want: attribute.Int("k", 2)},
		{name: "bool", v: true, want: attribute.Bool("k", true)},
		{name: "float", v: 1.5, want: attribute.Float64("k", 1.5)},
		{name: "nil", v: nil, want: attribute.String("k", "")},
		{name: "stringer", v: time.Second, want: attribute.String("k", "1s")},
		{name: "other", v: struct{ N int }{N: 1}, want: attribute.String("k", "{1}")},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tc.want, toAttr("k", tc.v))
		})
	}
}

func TestPairsStopsEarly(t *testing.T) {
	t.Parallel()

	var keys []string
	for k := range pairs([]any{"a", 1, "b", 2, "c", 3}) {
		keys = append(keys, k)
		if k == "b" {
			break
		}
	}
	require.Equal(t, []string{"a", "b"}, keys)
}

func TestTracerSpanAdapter(t *testing.T) {
	t.Parallel()

	tr := otelTracer{tracer: tracenoop.NewTracerProvider().Tracer(scope)}
	ctx, span := tr.Start(context.Background(), "searchattr.reconcile")
	require.NotNil(t, ctx)
	require.NotPanics(t, func() {
		span.AddEvent("reconciled", "outcome", "added", "missing", []string{"postId"})
		span.RecordError(errors.New("boom"))
		span.SetStatus(codes.Error, "add_search_attributes")
		span.End()
	})
}

func TestNoopIsInert(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	got, span := NewNoopTracer().Start(ctx, "searchattr.reconcile")
	require.Equal(t, ctx, got)
	require.Equal(t, Noop{}, span)
	require.NotPanics(t, func() {
		NewNoopLogger().Warn(ctx, "ignored", "k", "v")
		NewNoopMetrics().IncCounter("ignored", 1)
		span.End()
	})
}
