package temporal

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"go.temporal.io/api/operatorservice/v1"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"

	"github.com/postiz/searchattrs/runtime/telemetry"
)

// DefaultNamespace is used when no namespace is configured.
const DefaultNamespace = "default"

// Options configures the Temporal client connection. Either a pre-configured
// Client or ClientOptions must be provided.
type Options struct {
	// Client is an optional pre-configured Temporal client. When set, the
	// instrumentation options are ignored and Close does not close it.
	Client client.Client

	// ClientOptions describe how to construct the Temporal client when Client
	// is nil. Only connection fields (HostPort, Namespace, credentials) need to
	// be set; OTEL interceptors are configured automatically.
	ClientOptions *client.Options

	// Instrumentation toggles OTEL tracing and metrics on the constructed
	// client. Both are enabled by default.
	Instrumentation InstrumentationOptions

	// Logger receives connection lifecycle logs. Defaults to a noop logger.
	Logger telemetry.Logger
}

// InstrumentationOptions configures how OpenTelemetry tracing and metrics are
// wired into the constructed Temporal client.
type InstrumentationOptions struct {
	// DisableTracing skips installing the OTEL tracing interceptor.
	DisableTracing bool

	// DisableMetrics skips installing the OTEL metrics handler.
	DisableMetrics bool

	// TracerOptions customize the OTEL tracing interceptor.
	TracerOptions temporalotel.TracerOptions

	// MetricsOptions customize the OTEL metrics handler.
	MetricsOptions temporalotel.MetricsHandlerOptions
}

// Client holds the Temporal SDK client for the lifetime of the process.
//
// Thread-safety: all methods are safe for concurrent use.
type Client struct {
	namespace   string
	closeClient bool
	logger      telemetry.Logger

	mu     sync.RWMutex
	client client.Client
}

// New constructs a Client. The underlying SDK client is created lazily: no
// connection is attempted until the first API call.
func New(opts Options) (*Client, error) {
	logger := opts.Logger
	if logger == nil {
		logger = telemetry.NewNoopLogger()
	}
	if opts.Client != nil {
		namespace := ""
		if opts.ClientOptions != nil {
			namespace = opts.ClientOptions.Namespace
		}
		return &Client{
			namespace: resolveNamespace(namespace),
			logger:    logger,
			client:    opts.Client,
		}, nil
	}
	if opts.ClientOptions == nil {
		return nil, fmt.Errorf("temporal client: client options are required when Client is nil")
	}

	clientOpts := *opts.ClientOptions
	clientOpts.Namespace = resolveNamespace(clientOpts.Namespace)
	if err := opts.Instrumentation.install(&clientOpts); err != nil {
		return nil, err
	}

	cli, err := client.NewLazyClient(clientOpts)
	if err != nil {
		return nil, fmt.Errorf("temporal client: create client: %w", err)
	}
	logger.Debug(context.Background(), "temporal client created",
		"host_port", clientOpts.HostPort,
		"namespace", clientOpts.Namespace,
	)
	return &Client{
		namespace:   clientOpts.Namespace,
		closeClient: true,
		logger:      logger,
		client:      cli,
	}, nil
}

// Namespace returns the namespace the client was configured with.
func (c *Client) Namespace() string {
	return c.namespace
}

// SDK returns the underlying Temporal SDK client, or nil once closed.
func (c *Client) SDK() client.Client {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.client
}

// OperatorService returns the operator API surface of the connection. It is
// nil only once the Client is closed or when c is nil; a lazy client that has
// not dialed yet still returns a surface whose calls fail until the server is
// reachable.
func (c *Client) OperatorService() operatorservice.OperatorServiceClient {
	if c == nil {
		return nil
	}
	cli := c.SDK()
	if cli == nil {
		return nil
	}
	return cli.OperatorService()
}

// Close releases the SDK client when it was constructed by New. A client
// supplied through Options.Client is detached but left open. Close is
// idempotent.
func (c *Client) Close() {
	c.mu.Lock()
	cli := c.client
	c.client = nil
	c.mu.Unlock()
	if cli != nil && c.closeClient {
		cli.Close()
		c.logger.Debug(context.Background(), "temporal client closed", "namespace", c.namespace)
	}
}

// install adds the OTEL interceptor and metrics handler to opts. The
// interceptor is appended after any caller interceptors, while a caller
// metrics handler takes precedence over the OTEL one.
func (i InstrumentationOptions) install(opts *client.Options) error {
	if !i.DisableTracing {
		tracing, err := temporalotel.NewTracingInterceptor(i.TracerOptions)
		if err != nil {
			return fmt.Errorf("temporal client: configure tracing interceptor: %w", err)
		}
		opts.Interceptors = append(slices.Clip(opts.Interceptors), tracing)
	}
	if !i.DisableMetrics && opts.MetricsHandler == nil {
		opts.MetricsHandler = temporalotel.NewMetricsHandler(i.MetricsOptions)
	}
	return nil
}

func resolveNamespace(ns string) string {
	if ns == "" {
		return DefaultNamespace
	}
	return ns
}
