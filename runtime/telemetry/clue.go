package telemetry

import (
	"context"
	"fmt"
	"iter"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"goa.design/clue/log"
)

// scope names the meter and tracer obtained from the global OTEL providers.
const scope = "github.com/postiz/searchattrs/runtime"

type (
	// clueLogger writes through goa.design/clue/log. Format and debug level
	// come from the context (log.Context with log.WithFormat/log.WithDebug).
	clueLogger struct{}

	// otelMetrics records into instruments created once per name.
	otelMetrics struct {
		meter metric.Meter

		mu         sync.Mutex
		counters   map[string]metric.Float64Counter
		histograms map[string]metric.Float64Histogram
	}

	otelTracer struct {
		tracer trace.Tracer
	}

	// otelSpan adapts trace.Span to Span; only AddEvent differs in shape.
	otelSpan struct {
		trace.Span
	}
)

// NewClueLogger returns a Logger backed by goa.design/clue/log.
func NewClueLogger() Logger {
	return clueLogger{}
}

// NewClueMetrics returns a Metrics recorder backed by the global OTEL
// MeterProvider.
func NewClueMetrics() Metrics {
	return newOTELMetrics(otel.Meter(scope))
}

// NewClueTracer returns a Tracer backed by the global OTEL TracerProvider.
func NewClueTracer() Tracer {
	return otelTracer{tracer: otel.Tracer(scope)}
}

func (clueLogger) Debug(ctx context.Context, msg string, keyvals ...any) {
	log.Debug(ctx, fielders(msg, keyvals)...)
}

func (clueLogger) Info(ctx context.Context, msg string, keyvals ...any) {
	log.Info(ctx, fielders(msg, keyvals)...)
}

func (clueLogger) Warn(ctx context.Context, msg string, keyvals ...any) {
	log.Warn(ctx, fielders(msg, keyvals)...)
}

func (clueLogger) Error(ctx context.Context, msg string, keyvals ...any) {
	log.Error(ctx, nil, fielders(msg, keyvals)...)
}

func newOTELMetrics(meter metric.Meter) *otelMetrics {
	return &otelMetrics{
		meter:      meter,
		counters:   make(map[string]metric.Float64Counter),
		histograms: make(map[string]metric.Float64Histogram),
	}
}

func (m *otelMetrics) IncCounter(name string, value float64, tags ...string) {
	c, err := instrument(m, m.counters, name, func() (metric.Float64Counter, error) {
		return m.meter.Float64Counter(name)
	})
	if err != nil {
		return
	}
	c.Add(context.Background(), value, metric.WithAttributes(tagAttrs(tags)...))
}

// RecordTimer records duration in seconds.
func (m *otelMetrics) RecordTimer(name string, duration time.Duration, tags ...string) {
	h, err := instrument(m, m.histograms, name, func() (metric.Float64Histogram, error) {
		return m.meter.Float64Histogram(name, metric.WithUnit("s"))
	})
	if err != nil {
		return
	}
	h.Record(context.Background(), duration.Seconds(), metric.WithAttributes(tagAttrs(tags)...))
}

// instrument returns the cached instrument for name, creating it on first use.
// Creation errors are not cached so a later call can retry.
func instrument[T any](m *otelMetrics, cache map[string]T, name string, create func() (T, error)) (T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if inst, ok := cache[name]; ok {
		return inst, nil
	}
	inst, err := create()
	if err != nil {
		return inst, err
	}
	cache[name] = inst
	return inst, nil
}

func (t otelTracer) Start(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, Span) {
	ctx, span := t.tracer.Start(ctx, name, opts...)
	return ctx, otelSpan{Span: span}
}

func (s otelSpan) AddEvent(name string, keyvals ...any) {
	attrs := make([]attribute.KeyValue, 0, len(keyvals)/2)
	for k, v := range pairs(keyvals) {
		attrs = append(attrs, toAttr(k, v))
	}
	s.Span.AddEvent(name, trace.WithAttributes(attrs...))
}

// fielders prefixes msg to the structured pairs. Errors are logged by their
// message since clue renders arbitrary values with %v.
func fielders(msg string, keyvals []any) []log.Fielder {
	out := make([]log.Fielder, 0, 1+len(keyvals)/2)
	out = append(out, log.KV{K: "msg", V: msg})
	for k, v := range pairs(keyvals) {
		if err, ok := v.(error); ok {
			v = err.Error()
		}
		out = append(out, log.KV{K: k, V: v})
	}
	return out
}

// pairs walks k1, v1, k2, v2, ... Non-string keys are skipped along with
// their value and a trailing key yields nil.
func pairs(keyvals []any) iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		for i := 0; i < len(keyvals); i += 2 {
			key, ok := keyvals[i].(string)
			if !ok {
				continue
			}
			var v any
			if i+1 < len(keyvals) {
				v = keyvals[i+1]
			}
			if !yield(key, v) {
				return
			}
		}
	}
}

func tagAttrs(tags []string) []attribute.KeyValue {
	attrs := make([]attribute.KeyValue, 0, (len(tags)+1)/2)
	for i := 0; i < len(tags); i += 2 {
		var v string
		if i+1 < len(tags) {
			v = tags[i+1]
		}
		attrs = append(attrs, attribute.String(tags[i], v))
	}
	return attrs
}

func toAttr(key string, v any) attribute.KeyValue {
	switch val := v.(type) {
	case string:
		return attribute.String(key, val)
	case []string:
		return attribute.StringSlice(key, val)
	case bool:
		return attribute.Bool(key, val)
	case int:
		return attribute.Int(key, val)
	case int64:
		return attribute.Int64(key, val)
	case float64:
		return attribute.Float64(key, val)
	case nil:
		return attribute.String(key, "")
	case fmt.Stringer:
		return attribute.Stringer(key, val)
	default:
		return attribute.String(key, fmt.Sprint(val))
	}
}
