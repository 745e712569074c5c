// Package temporal owns the Temporal client connection used by the bootstrap
// runtime. It builds a lazily dialed SDK client with OpenTelemetry tracing and
// metrics interceptors installed, and exposes the operator (administrative)
// API surface consumed by the search attribute reconciler.
//
// # Constructing a Client
//
//	cli, err := temporal.New(temporal.Options{
//	    ClientOptions: &client.Options{
//	        HostPort:  "temporal:7233",
//	        Namespace: "default",
//	    },
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer cli.Close()
//
// A pre-configured SDK client may be passed via Options.Client instead; in that
// case Close leaves the client open and its lifecycle to the caller.
//
// # Readiness
//
// OperatorService returns nil only after Close, or when the Client itself is
// nil. A lazily built client hands out an operator surface before any dial,
// so an unreachable server is not reported as "not ready": it surfaces as an
// error from the first operator call, which the reconciler records as a list
// failure.
package temporal
