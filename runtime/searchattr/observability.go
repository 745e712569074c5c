package searchattr

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/postiz/searchattrs/runtime/telemetry"
)

// Operation identifies a step of the reconciliation pipeline.
type Operation string

const (
	// OpAcquireOperator obtains the operator API from the connection.
	OpAcquireOperator Operation = "acquire_operator_service"
	// OpListSearchAttributes reads the registered custom attributes.
	OpListSearchAttributes Operation = "list_search_attributes"
	// OpAddSearchAttributes registers the missing attributes.
	OpAddSearchAttributes Operation = "add_search_attributes"
)

// Outcome classifies how a reconciliation run ended.
type Outcome string

const (
	// OutcomeNotReady means no operator API was available; nothing was done.
	OutcomeNotReady Outcome = "not_ready"
	// OutcomeUpToDate means every required attribute was already registered.
	OutcomeUpToDate Outcome = "up_to_date"
	// OutcomeAdded means the missing attributes were registered.
	OutcomeAdded Outcome = "added"
	// OutcomeAlreadyExists means the add call reported the attributes as
	// registered, typically by a concurrently starting replica.
	OutcomeAlreadyExists Outcome = "already_exists"
	// OutcomeConnectFailed means acquiring the operator API failed abnormally.
	OutcomeConnectFailed Outcome = "connect_failed"
	// OutcomeListFailed means listing the registered attributes failed.
	OutcomeListFailed Outcome = "list_failed"
	// OutcomeAddFailed means registering the missing attributes failed.
	OutcomeAddFailed Outcome = "add_failed"
)

// Failed reports whether the outcome is a non-fatal failure.
func (o Outcome) Failed() bool {
	switch o {
	case OutcomeConnectFailed, OutcomeListFailed, OutcomeAddFailed:
		return true
	default:
		return false
	}
}

// Result describes a single reconciliation run.
type Result struct {
	// RunID correlates the logs, metrics and span of one run.
	RunID string
	// Namespace is the Temporal namespace that was reconciled.
	Namespace string
	// Outcome is how the run ended.
	Outcome Outcome
	// Operation is the step that failed, set only when Outcome.Failed().
	Operation Operation
	// Registered is the number of custom attributes found in the namespace.
	Registered int
	// Missing lists the required attributes found absent, sorted.
	Missing []string
	// Err is the failure cause, set only when Outcome.Failed().
	Err error
}

// Metric names recorded for each run.
const (
	metricDuration = "searchattr.reconcile.duration"
	metricOutcome  = "searchattr.reconcile.outcome"
	metricAdded    = "searchattr.attributes.added"
)

// failureMessage is the warning emitted for every non-fatal failure.
const failureMessage = "search attributes registration failed (non-fatal)"

type observer struct {
	logger  telemetry.Logger
	metrics telemetry.Metrics
	tracer  telemetry.Tracer
}

// startSpan opens the reconcile span. A panicking tracer degrades to a noop
// span so tracing can never abort a run.
func (o *observer) startSpan(ctx context.Context, res Result) (sctx context.Context, span telemetry.Span) {
	defer func() {
		if recover() != nil {
			sctx, span = telemetry.NewNoopTracer().Start(ctx, "")
		}
	}()
	return o.tracer.Start(ctx, "searchattr.reconcile",
		trace.WithAttributes(
			attribute.String("temporal.namespace", res.Namespace),
			attribute.String("searchattr.run_id", res.RunID),
		),
	)
}

// finish reports the run and ends its span. Panics raised by the telemetry
// collaborators are dropped.
func (o *observer) finish(ctx context.Context, span telemetry.Span, res Result, duration time.Duration) {
	defer func() { _ = recover() }()
	defer span.End()
	o.report(ctx, span, res, duration)
}

// report records metrics and span status for every run. The logger is only
// written to on failure.
func (o *observer) report(ctx context.Context, span telemetry.Span, res Result, duration time.Duration) {
	tags := []string{"outcome", string(res.Outcome), "namespace", res.Namespace}
	o.metrics.RecordTimer(metricDuration, duration, tags...)
	o.metrics.IncCounter(metricOutcome, 1, tags...)
	if res.Outcome == OutcomeAdded {
		o.metrics.IncCounter(metricAdded, float64(len(res.Missing)), "namespace", res.Namespace)
	}

	span.AddEvent("reconciled", "outcome", string(res.Outcome), "missing", res.Missing)
	if !res.Outcome.Failed() {
		span.SetStatus(codes.Ok, string(res.Outcome))
		return
	}
	span.RecordError(res.Err)
	span.SetStatus(codes.Error, string(res.Operation))

	keyvals := []any{
		"operation", string(res.Operation),
		"namespace", res.Namespace,
		"run_id", res.RunID,
		"outcome", string(res.Outcome),
		"duration_ms", duration.Milliseconds(),
	}
	if len(res.Missing) > 0 {
		keyvals = append(keyvals, "missing", res.Missing)
	}
	keyvals = append(keyvals, "error", res.Err)
	o.logger.Warn(ctx, failureMessage, keyvals...)
}
