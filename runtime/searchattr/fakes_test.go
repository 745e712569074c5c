package searchattr

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel/trace"
	enums "go.temporal.io/api/enums/v1"
	"go.temporal.io/api/operatorservice/v1"
	"google.golang.org/grpc"

	"github.com/postiz/searchattrs/runtime/telemetry"
)

// fakeOperator records operator calls. Unimplemented methods panic through
// the nil embedded interface.
type fakeOperator struct {
	operatorservice.OperatorServiceClient

	registered map[string]enums.IndexedValueType
	listErr    error
	addErr     error
	listFunc   func(ctx context.Context) error

	mu        sync.Mutex
	listCalls []*operatorservice.ListSearchAttributesRequest
	addCalls  []*operatorservice.AddSearchAttributesRequest
}

func (f *fakeOperator) ListSearchAttributes(ctx context.Context, req *operatorservice.ListSearchAttributesRequest, _ ...grpc.CallOption) (*operatorservice.ListSearchAttributesResponse, error) {
	f.mu.Lock()
	f.listCalls = append(f.listCalls, req)
	f.mu.Unlock()
	if f.listFunc != nil {
		if err := f.listFunc(ctx); err != nil {
			return nil, err
		}
	}
	if f.listErr != nil {
		return nil, f.listErr
	}
	return &operatorservice.ListSearchAttributesResponse{CustomAttributes: f.registered}, nil
}

func (f *fakeOperator) AddSearchAttributes(_ context.Context, req *operatorservice.AddSearchAttributesRequest, _ ...grpc.CallOption) (*operatorservice.AddSearchAttributesResponse, error) {
	f.mu.Lock()
	f.addCalls = append(f.addCalls, req)
	f.mu.Unlock()
	if f.addErr != nil {
		return nil, f.addErr
	}
	return &operatorservice.AddSearchAttributesResponse{}, nil
}

func (f *fakeOperator) lists() []*operatorservice.ListSearchAttributesRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*operatorservice.ListSearchAttributesRequest(nil), f.listCalls...)
}

func (f *fakeOperator) adds() []*operatorservice.AddSearchAttributesRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*operatorservice.AddSearchAttributesRequest(nil), f.addCalls...)
}

// staticProvider returns a fixed operator, which may be nil.
type staticProvider struct {
	operator operatorservice.OperatorServiceClient
}

func (p staticProvider) OperatorService() operatorservice.OperatorServiceClient {
	return p.operator
}

type panicProvider struct{}

func (panicProvider) OperatorService() operatorservice.OperatorServiceClient {
	panic("connection torn down")
}

type logEntry struct {
	level   string
	msg     string
	keyvals []any
}

type recordingLogger struct {
	mu      sync.Mutex
	entries []logEntry
}

func (l *recordingLogger) record(level, msg string, keyvals []any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, logEntry{level: level, msg: msg, keyvals: keyvals})
}

func (l *recordingLogger) Debug(_ context.Context, msg string, keyvals ...any) {
	l.record("debug", msg, keyvals)
}

func (l *recordingLogger) Info(_ context.Context, msg string, keyvals ...any) {
	l.record("info", msg, keyvals)
}

func (l *recordingLogger) Warn(_ context.Context, msg string, keyvals ...any) {
	l.record("warn", msg, keyvals)
}

func (l *recordingLogger) Error(_ context.Context, msg string, keyvals ...any) {
	l.record("error", msg, keyvals)
}

func (l *recordingLogger) level(level string) []logEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []logEntry
	for _, e := range l.entries {
		if e.level == level {
			out = append(out, e)
		}
	}
	return out
}

func (l *recordingLogger) all() []logEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]logEntry(nil), l.entries...)
}

// value returns the value logged for key, or nil.
func (e logEntry) value(key string) any {
	for i := 0; i+1 < len(e.keyvals); i += 2 {
		if e.keyvals[i] == key {
			return e.keyvals[i+1]
		}
	}
	return nil
}

type recordingMetrics struct {
	mu       sync.Mutex
	counters map[string]float64
	timers   []string
}

func newRecordingMetrics() *recordingMetrics {
	return &recordingMetrics{counters: make(map[string]float64)}
}

func (m *recordingMetrics) IncCounter(name string, value float64, tags ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counters[fmt.Sprint(name, tags)] += value
}

func (m *recordingMetrics) RecordTimer(name string, _ time.Duration, _ ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.timers = append(m.timers, name)
}

// panicTelemetry panics from every logger, metrics and tracer method.
type panicTelemetry struct{}

func (panicTelemetry) Debug(context.Context, string, ...any) { panic("logger") }
func (panicTelemetry) Info(context.Context, string, ...any)  { panic("logger") }
func (panicTelemetry) Warn(context.Context, string, ...any)  { panic("logger") }
func (panicTelemetry) Error(context.Context, string, ...any) { panic("logger") }

func (panicTelemetry) IncCounter(string, float64, ...string)        { panic("metrics") }
func (panicTelemetry) RecordTimer(string, time.Duration, ...string) { panic("metrics") }

func (panicTelemetry) Start(context.Context, string, ...trace.SpanStartOption) (context.Context, telemetry.Span) {
	panic("tracer")
}

var (
	_ telemetry.Logger  = panicTelemetry{}
	_ telemetry.Metrics = panicTelemetry{}
	_ telemetry.Tracer  = panicTelemetry{}
	_ telemetry.Logger  = (*recordingLogger)(nil)
	_ telemetry.Metrics = (*recordingMetrics)(nil)
)
