package searchattr

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"go.temporal.io/api/operatorservice/v1"

	"github.com/postiz/searchattrs/runtime/telemetry"
)

// DefaultNamespace is reconciled when an empty namespace is given.
const DefaultNamespace = "default"

type (
	// Provider exposes the operator API of a Temporal connection. A nil
	// return means the connection is not ready. Any go.temporal.io/sdk
	// client.Client satisfies Provider.
	Provider interface {
		OperatorService() operatorservice.OperatorServiceClient
	}

	// Reconciler ensures the required custom search attributes exist.
	Reconciler struct {
		provider Provider
		required []string
		obs      *observer
	}

	// Option configures a Reconciler.
	Option func(*Reconciler)
)

// WithRequired overrides the attribute names to reconcile. Duplicates are
// collapsed.
func WithRequired(names ...string) Option {
	return func(r *Reconciler) {
		r.required = slices.Clone(names)
	}
}

// WithLogger sets the logger used to report run outcomes.
func WithLogger(l telemetry.Logger) Option {
	return func(r *Reconciler) {
		if l != nil {
			r.obs.logger = l
		}
	}
}

// WithMetrics sets the metrics recorder.
func WithMetrics(m telemetry.Metrics) Option {
	return func(r *Reconciler) {
		if m != nil {
			r.obs.metrics = m
		}
	}
}

// WithTracer sets the tracer used for the reconcile span.
func WithTracer(t telemetry.Tracer) Option {
	return func(r *Reconciler) {
		if t != nil {
			r.obs.tracer = t
		}
	}
}

// New returns a Reconciler reading the operator API from provider. A nil
// provider is treated as never ready.
func New(provider Provider, opts ...Option) *Reconciler {
	r := &Reconciler{
		provider: provider,
		required: slices.Clone(DefaultRequired),
		obs: &observer{
			logger:  telemetry.NewNoopLogger(),
			metrics: telemetry.NewNoopMetrics(),
			tracer:  telemetry.NewNoopTracer(),
		},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Required returns a copy of the attribute names the reconciler ensures.
func (r *Reconciler) Required() []string {
	return slices.Clone(r.required)
}

// Start launches Reconcile on a detached goroutine and returns immediately.
// The run is not bound to ctx cancellation. The returned channel receives
// the Result and is then closed; callers on a startup path may ignore it.
func (r *Reconciler) Start(ctx context.Context, namespace string) <-chan Result {
	done := make(chan Result, 1)
	ctx = context.WithoutCancel(ctx)
	go func() {
		defer close(done)
		done <- r.Reconcile(ctx, namespace)
	}()
	return done
}

// Reconcile lists the custom search attributes of namespace and registers the
// required ones that are missing. It never returns an error: failures are
// logged as non-fatal warnings and described by the returned Result. Nothing
// is logged when the run succeeds or the connection is not ready.
func (r *Reconciler) Reconcile(ctx context.Context, namespace string) (res Result) {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	res = Result{RunID: uuid.NewString(), Namespace: namespace}
	start := time.Now()
	op := OpAcquireOperator
	var span telemetry.Span
	defer func() {
		if p := recover(); p != nil {
			res = failed(res, op, fmt.Errorf("panic: %v", p))
		}
		r.obs.finish(ctx, span, res, time.Since(start))
	}()
	ctx, span = r.obs.startSpan(ctx, res)

	var operator operatorservice.OperatorServiceClient
	if r.provider != nil {
		operator = r.provider.OperatorService()
	}
	if operator == nil {
		res.Outcome = OutcomeNotReady
		return res
	}

	op = OpListSearchAttributes
	listed, err := operator.ListSearchAttributes(ctx, &operatorservice.ListSearchAttributesRequest{
		Namespace: namespace,
	})
	if err != nil {
		return failed(res, op, err)
	}
	registered := listed.GetCustomAttributes()
	res.Registered = len(registered)

	missing := Missing(r.required, registered)
	if len(missing) == 0 {
		res.Outcome = OutcomeUpToDate
		return res
	}
	res.Missing = sortedNames(missing)

	op = OpAddSearchAttributes
	_, err = operator.AddSearchAttributes(ctx, &operatorservice.AddSearchAttributesRequest{
		Namespace:        namespace,
		SearchAttributes: missing,
	})
	switch {
	case err == nil:
		res.Outcome = OutcomeAdded
	case IsAlreadyExists(err):
		res.Outcome = OutcomeAlreadyExists
	default:
		return failed(res, op, err)
	}
	return res
}

func failed(res Result, op Operation, err error) Result {
	res.Operation = op
	res.Err = err
	switch op {
	case OpAcquireOperator:
		res.Outcome = OutcomeConnectFailed
	case OpListSearchAttributes:
		res.Outcome = OutcomeListFailed
	case OpAddSearchAttributes:
		res.Outcome = OutcomeAddFailed
	}
	return res
}
