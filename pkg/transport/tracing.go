// tracing.go decorates a Transport with spans.
package transport

import (
	"context"

	"github.com/ledgerstream/streams-go/pkg/channel"
	"github.com/ledgerstream/streams-go/pkg/metrics"
)

// Traced wraps a Transport and emits one span per operation through the
// given tracer. Transport calls carry no context of their own (this layer has
// no cancellation concept), so spans are rooted at Background.
type Traced struct {
	inner  Transport
	tracer metrics.Tracer
}

var _ Transport = (*Traced)(nil)

// NewTraced wraps inner with tracing. A nil tracer falls back to the global
// tracer.
func NewTraced(inner Transport, tracer metrics.Tracer) *Traced {
	if tracer == nil {
		tracer = metrics.GetTracer()
	}
	return &Traced{inner: inner, tracer: tracer}
}

// Put stores a message, recording the operation as a span.
func (t *Traced) Put(addr channel.Address, msg []byte) error {
	_, end := t.tracer.StartSpan(context.Background(), metrics.SpanTransportPut,
		metrics.WithAttributes(map[string]interface{}{
			"channel.address": addr.String(),
			"message.bytes":   len(msg),
		}))
	err := t.inner.Put(addr, msg)
	end(err)
	return err
}

// Get retrieves a message, recording the operation as a span.
func (t *Traced) Get(addr channel.Address) ([]byte, error) {
	_, end := t.tracer.StartSpan(context.Background(), metrics.SpanTransportGet,
		metrics.WithAttributes(map[string]interface{}{
			"channel.address": addr.String(),
		}))
	msg, err := t.inner.Get(addr)
	end(err)
	return msg, err
}
