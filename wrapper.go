package capability

import (
	"context"
	"fmt"

	"go.uber.org/multierr"
)

// Hook runs before or after a wrapper delegates to its inner capability.
type Hook func(ctx context.Context) error

// WrapperOption configures a Wrapper at construction.
type WrapperOption func(*Wrapper)

// WithBefore appends hooks run, in order, before the delegated call.
func WithBefore(hooks ...Hook) WrapperOption {
	return func(w *Wrapper) {
		w.before = append(w.before, hooks...)
	}
}

// WithAfter appends hooks run, in order, after the delegated call.
func WithAfter(hooks ...Hook) WrapperOption {
	return func(w *Wrapper) {
		w.after = append(w.after, hooks...)
	}
}

// WithRelease appends a function run once when the wrapper is closed,
// before the inner capability is released.
func WithRelease(fn func() error) WrapperOption {
	return func(w *Wrapper) {
		w.release = append(w.release, fn)
	}
}

// WithName sets the name used in log output.
func WithName(name string) WrapperOption {
	return func(w *Wrapper) {
		w.name = name
	}
}

// Wrapper implements Capability by delegating to the one inner capability
// it owns. The inner capability is released when the wrapper is closed and
// by nothing else.
//
// Wrapper is not safe for concurrent use; see the sync package.
type Wrapper struct {
	name    string
	inner   Capability
	before  []Hook
	after   []Hook
	release []func() error
	state   State
}

var (
	_ Capability = (*Wrapper)(nil)
	_ Shim       = (*Wrapper)(nil)
)

// NewWrapper takes ownership of inner. It fails with ErrNilCapability when
// inner is nil so that a broken graph never reaches Perform.
func NewWrapper(inner Capability, opts ...WrapperOption) (*Wrapper, error) {
	if IsNil(inner) {
		return nil, ErrNilCapability
	}
	w := &Wrapper{
		inner: inner,
		state: Constructed,
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.name == "" {
		w.name = fmt.Sprintf("%T", inner)
	}
	return w, nil
}

// Perform runs the before hooks, delegates to the inner capability exactly
// once, then runs the after hooks. The first error stops the chain and is
// returned as is.
func (w *Wrapper) Perform(ctx context.Context) error {
	if w.state == Destroyed {
		return ErrClosed
	}
	for _, h := range w.before {
		if err := h(ctx); err != nil {
			log.Debugw("before hook failed", "wrapper", w.name, "error", err)
			return err
		}
	}
	if err := w.inner.Perform(ctx); err != nil {
		return err
	}
	for _, h := range w.after {
		if err := h(ctx); err != nil {
			log.Debugw("after hook failed", "wrapper", w.name, "error", err)
			return err
		}
	}
	return nil
}

// Close releases the wrapper and then the inner capability. Only the first
// call does anything.
func (w *Wrapper) Close() error {
	if w.state == Destroyed {
		return nil
	}
	w.state = Destroyed

	var err error
	for _, fn := range w.release {
		err = multierr.Append(err, fn())
	}
	err = multierr.Append(err, Close(w.inner))
	if err != nil {
		log.Warnw("release failed", "wrapper", w.name, "error", err)
	}
	return err
}

// Unwrap returns the inner capability.
func (w *Wrapper) Unwrap() Capability {
	return w.inner
}

// Children implements Shim.
func (w *Wrapper) Children() []Capability {
	return []Capability{w.inner}
}

// State reports whether the wrapper has been closed.
func (w *Wrapper) State() State {
	return w.state
}

// Name returns the name the wrapper logs under.
func (w *Wrapper) Name() string {
	return w.name
}
