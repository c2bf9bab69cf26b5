package proxy

import (
	"context"
	"errors"
	"sync"

	capability "github.com/ipfs/go-capability"
)

// ErrNilFactory is returned by NewLazy when no factory is given.
var ErrNilFactory = errors.New("proxy: nil factory")

// LazyState tells whether a lazy proxy has built its subject yet.
type LazyState int

const (
	Uninitialized LazyState = iota
	Ready
)

func (s LazyState) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Ready:
		return "ready"
	default:
		return "unknown"
	}
}

// Factory builds the real subject of a lazy proxy.
type Factory func(ctx context.Context) (capability.Capability, error)

// Lazy is a proxy that builds its real subject on first use. Unlike Proxy,
// a broken subject surfaces from the first Perform, not from construction.
// A failed build leaves the proxy Uninitialized and is retried by the next
// Perform.
type Lazy struct {
	*guard

	mu      sync.Mutex
	factory Factory
	state   LazyState
	subject capability.Capability
	closed  bool
}

var _ capability.Shim = (*Lazy)(nil)

// NewLazy returns a proxy that calls factory on its first Perform.
func NewLazy(factory Factory, e capability.Emitter, opts ...Option) (*Lazy, error) {
	if factory == nil {
		return nil, ErrNilFactory
	}
	return &Lazy{
		guard:   newGuard(e, opts),
		factory: factory,
		state:   Uninitialized,
	}, nil
}

// Subject returns the real subject, building it if this is the first use.
func (l *Lazy) Subject(ctx context.Context) (capability.Capability, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.subjectLocked(ctx)
}

func (l *Lazy) subjectLocked(ctx context.Context) (capability.Capability, error) {
	if l.closed {
		return nil, capability.ErrClosed
	}
	if l.state == Ready {
		return l.subject, nil
	}

	s, err := l.factory(ctx)
	if err != nil {
		return nil, err
	}
	if capability.IsNil(s) {
		return nil, capability.ErrNilCapability
	}
	l.subject = s
	l.state = Ready
	log.Debug("lazy proxy subject ready")
	return s, nil
}

// Perform builds the subject if needed, then checks access, forwards the
// call and logs it. The lock is only held while the subject is looked up
// or built, so the checker and the subject may call back into the proxy.
func (l *Lazy) Perform(ctx context.Context) error {
	s, err := l.Subject(ctx)
	if err != nil {
		return err
	}
	if err := l.checkAccess(ctx); err != nil {
		return err
	}
	if err := s.Perform(ctx); err != nil {
		return err
	}
	return l.logAccess(ctx)
}

// State reports whether the subject has been built.
func (l *Lazy) State() LazyState {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Children implements capability.Shim. It is empty until the subject is
// built.
func (l *Lazy) Children() []capability.Capability {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.state != Ready {
		return nil
	}
	return []capability.Capability{l.subject}
}

// Close releases the subject if it was ever built. Only the first call
// does anything.
func (l *Lazy) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return nil
	}
	l.closed = true
	if l.state != Ready {
		return nil
	}
	return capability.Close(l.subject)
}
