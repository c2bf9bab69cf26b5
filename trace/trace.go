// Package trace wraps a capability so that every call is traced with open
// telemetry.
package trace

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	otel "go.opentelemetry.io/otel/trace"

	capability "github.com/ipfs/go-capability"
)

// New returns a new traced capability owning c.
func New(c capability.Capability, tracer otel.Tracer) (*Capability, error) {
	w, err := capability.NewWrapper(c, capability.WithName("trace"))
	if err != nil {
		return nil, err
	}
	return &Capability{Wrapper: w, tracer: tracer, kind: fmt.Sprintf("%T", c)}, nil
}

// Capability is an adapter that traces calls to the inner capability.
type Capability struct {
	*capability.Wrapper
	tracer otel.Tracer
	kind   string
}

var _ capability.Shim = (*Capability)(nil)

// Perform implements the capability.Capability interface.
func (t *Capability) Perform(ctx context.Context) error {
	ctx, span := t.tracer.Start(ctx, "Perform", otel.WithAttributes(attribute.String("capability", t.kind)))
	defer span.End()

	err := t.Wrapper.Perform(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

// Close ends the inner capability's life inside a span of its own.
func (t *Capability) Close() error {
	_, span := t.tracer.Start(context.Background(), "Close", otel.WithAttributes(attribute.String("capability", t.kind)))
	defer span.End()
	return t.Wrapper.Close()
}

// Decorator returns a capability.Decorator tracing with tracer.
func Decorator(tracer otel.Tracer) capability.Decorator {
	return func(c capability.Capability) (capability.Capability, error) {
		t, err := New(c, tracer)
		if err != nil {
			return nil, err
		}
		return t, nil
	}
}
