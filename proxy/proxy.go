// Package proxy provides a capability wrapper that controls access to the
// capability it stands in for. Every call is checked before it is
// forwarded and logged after it returns.
package proxy

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	logging "github.com/ipfs/go-log/v2"

	capability "github.com/ipfs/go-capability"
)

var log = logging.Logger("capability/proxy")

// ErrAccessDenied is returned, wrapping the checker's error, when the
// access check rejects a call.
var ErrAccessDenied = errors.New("proxy: access denied")

const (
	checkLine = "Proxy: checking access prior to firing a real request."
	logLine   = "Proxy: logging access time of request."
)

// Checker decides whether a call may go through. A non-nil error denies it.
type Checker func(ctx context.Context) error

// AllowAll is the default Checker. It lets every call through.
func AllowAll(context.Context) error {
	return nil
}

// Request is the record kept for the last forwarded call.
type Request struct {
	ID   uuid.UUID
	Time time.Time
}

// Option configures a proxy.
type Option func(*guard)

// WithChecker replaces the default AllowAll access check.
func WithChecker(c Checker) Option {
	return func(g *guard) {
		if c != nil {
			g.checker = c
		}
	}
}

// WithClock sets the clock used to timestamp requests.
func WithClock(now func() time.Time) Option {
	return func(g *guard) {
		if now != nil {
			g.now = now
		}
	}
}

// guard holds the access check and the access log shared by the eager and
// the lazy proxy.
type guard struct {
	emit    capability.Emitter
	checker Checker
	now     func() time.Time

	mu   sync.Mutex
	last Request
}

func newGuard(e capability.Emitter, opts []Option) *guard {
	if e == nil {
		e = capability.Discard
	}
	g := &guard{
		emit:    e,
		checker: AllowAll,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *guard) checkAccess(ctx context.Context) error {
	g.emit.Emit(checkLine)
	if err := g.checker(ctx); err != nil {
		log.Debugw("access denied", "error", err)
		return fmt.Errorf("%w: %w", ErrAccessDenied, err)
	}
	return nil
}

func (g *guard) logAccess(context.Context) error {
	req := Request{ID: uuid.New(), Time: g.now()}
	g.mu.Lock()
	g.last = req
	g.mu.Unlock()
	g.emit.Emit(logLine)
	log.Debugw("request", "id", req.ID.String(), "time", req.Time)
	return nil
}

// LastRequest returns the record of the last call that went through. It is
// the zero Request until then.
func (g *guard) LastRequest() Request {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.last
}

// Proxy owns its real subject from construction on.
type Proxy struct {
	*capability.Wrapper
	*guard
}

var _ capability.Shim = (*Proxy)(nil)

// New returns a proxy owning subject. Trace lines go to e.
func New(subject capability.Capability, e capability.Emitter, opts ...Option) (*Proxy, error) {
	g := newGuard(e, opts)
	w, err := capability.NewWrapper(subject,
		capability.WithName("proxy"),
		capability.WithBefore(g.checkAccess),
		capability.WithAfter(g.logAccess),
	)
	if err != nil {
		return nil, err
	}
	return &Proxy{Wrapper: w, guard: g}, nil
}

// Decorator returns a capability.Decorator building eager proxies.
func Decorator(e capability.Emitter, opts ...Option) capability.Decorator {
	return func(c capability.Capability) (capability.Capability, error) {
		p, err := New(c, e, opts...)
		if err != nil {
			return nil, err
		}
		return p, nil
	}
}
