// Package searchattr reconciles the custom search attributes an application
// relies on against the attributes registered in a Temporal namespace.
//
// A Reconciler runs one linear pipeline: it obtains the operator API from the
// connection, lists the custom attributes of the namespace, computes which
// required attributes are absent and, when any are, registers them in a single
// AddSearchAttributes call using the keyword type. Existing attributes are
// never removed or retyped.
//
// Reconciliation is non-fatal by construction. Reconcile never returns an error
// and never panics: failures are logged as warnings and reported in the
// returned Result. Start runs the pipeline on a detached goroutine so that
// application startup never waits on the Temporal server:
//
//	rec := searchattr.New(cli, searchattr.WithLogger(telemetry.NewClueLogger()))
//	rec.Start(ctx, cli.Namespace())
//	// continue startup without waiting
//
// Replicas starting concurrently may race to add the same attribute. The race
// is not coordinated; an "already exists" response from the server is treated
// as success.
package searchattr
