package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Noop discards everything. It satisfies Logger, Metrics, Tracer and Span so a
// single value can stand in for any collaborator left unconfigured.
type Noop struct{}

var (
	_ Logger  = Noop{}
	_ Metrics = Noop{}
	_ Tracer  = Noop{}
	_ Span    = Noop{}
)

// NewNoopLogger returns a Logger that drops every message.
func NewNoopLogger() Logger { return Noop{} }

// NewNoopMetrics returns a Metrics recorder that drops every sample.
func NewNoopMetrics() Metrics { return Noop{} }

// NewNoopTracer returns a Tracer whose spans record nothing.
func NewNoopTracer() Tracer { return Noop{} }

func (Noop) Debug(context.Context, string, ...any) {}
func (Noop) Info(context.Context, string, ...any)  {}
func (Noop) Warn(context.Context, string, ...any)  {}
func (Noop) Error(context.Context, string, ...any) {}

func (Noop) IncCounter(string, float64, ...string)        {}
func (Noop) RecordTimer(string, time.Duration, ...string) {}

// Start returns ctx unchanged along with the receiver as the span.
func (n Noop) Start(ctx context.Context, _ string, _ ...trace.SpanStartOption) (context.Context, Span) {
	return ctx, n
}

func (Noop) End(...trace.SpanEndOption)              {}
func (Noop) AddEvent(string, ...any)                 {}
func (Noop) SetStatus(codes.Code, string)            {}
func (Noop) RecordError(error, ...trace.EventOption) {}
