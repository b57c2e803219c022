// tracer.go defines the tracing facade. The core depends only on the Tracer
// interface; the OpenTelemetry adapter in otel.go plugs the real backend in.
package metrics

import (
	"context"
	"sync"
	"time"
)

// Tracer provides distributed tracing capabilities.
type Tracer interface {
	// StartSpan starts a new span with the given name.
	// Returns a context containing the span and a function to end the span.
	StartSpan(ctx context.Context, name string, opts ...SpanOption) (context.Context, SpanEnder)
}

// SpanEnder ends a span. Call with nil for success, or with an error to mark
// the span as failed.
type SpanEnder func(err error)

// SpanOption configures span behavior.
type SpanOption func(*spanConfig)

type spanConfig struct {
	attributes map[string]interface{}
}

// WithAttributes sets span attributes.
func WithAttributes(attrs map[string]interface{}) SpanOption {
	return func(c *spanConfig) {
		c.attributes = attrs
	}
}

func applySpanOptions(opts []SpanOption) *spanConfig {
	cfg := &spanConfig{attributes: make(map[string]interface{})}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// NoOpTracer is a tracer that does nothing. It is the default when tracing
// is not configured.
type NoOpTracer struct{}

// StartSpan returns the context unchanged and a no-op end function.
func (NoOpTracer) StartSpan(ctx context.Context, name string, opts ...SpanOption) (context.Context, SpanEnder) {
	return ctx, func(err error) {}
}

// RecordingTracer records completed spans in memory, for tests and debugging.
type RecordingTracer struct {
	mu    sync.Mutex
	spans []RecordedSpan
}

// RecordedSpan is one completed span.
type RecordedSpan struct {
	Name       string
	StartTime  time.Time
	Duration   time.Duration
	Attributes map[string]interface{}
	Error      error
}

// NewRecordingTracer creates an empty RecordingTracer.
func NewRecordingTracer() *RecordingTracer {
	return &RecordingTracer{}
}

// StartSpan starts a new in-memory span.
func (t *RecordingTracer) StartSpan(ctx context.Context, name string, opts ...SpanOption) (context.Context, SpanEnder) {
	cfg := applySpanOptions(opts)
	start := time.Now()
	return ctx, func(err error) {
		t.mu.Lock()
		t.spans = append(t.spans, RecordedSpan{
			Name:       name,
			StartTime:  start,
			Duration:   time.Since(start),
			Attributes: cfg.attributes,
			Error:      err,
		})
		t.mu.Unlock()
	}
}

// Spans returns a copy of all recorded spans.
func (t *RecordingTracer) Spans() []RecordedSpan {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]RecordedSpan, len(t.spans))
	copy(out, t.spans)
	return out
}

// Reset clears all recorded spans.
func (t *RecordingTracer) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.spans = t.spans[:0]
}

// --- Global Tracer ---

var (
	globalTracer   Tracer = NoOpTracer{}
	globalTracerMu sync.RWMutex
)

// SetTracer sets the global tracer.
func SetTracer(t Tracer) {
	globalTracerMu.Lock()
	defer globalTracerMu.Unlock()
	globalTracer = t
}

// GetTracer returns the global tracer.
func GetTracer() Tracer {
	globalTracerMu.RLock()
	defer globalTracerMu.RUnlock()
	return globalTracer
}

// StartSpan starts a span using the global tracer.
func StartSpan(ctx context.Context, name string, opts ...SpanOption) (context.Context, SpanEnder) {
	return GetTracer().StartSpan(ctx, name, opts...)
}

// Standard span names for channel operations.
const (
	SpanTransportPut = "ledgerstream.transport.put"
	SpanTransportGet = "ledgerstream.transport.get"
	SpanDeriveKey    = "ledgerstream.prng.derive"
	SpanNextMsgIDs   = "ledgerstream.channel.next_msg_ids"
)
