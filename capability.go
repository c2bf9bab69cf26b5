// Package capability composes behavior at runtime around a one-method
// interface. A base capability performs the real action; wrappers own
// exactly one inner capability and run hooks before and after delegating
// to it. Wrappers may wrap wrappers.
package capability

import (
	"context"
	"errors"
	"io"
	"reflect"
)

var (
	// ErrNilCapability is returned when a wrapper is constructed without
	// an inner capability.
	ErrNilCapability = errors.New("capability: nil inner capability")

	// ErrClosed is returned by Perform once a wrapper has been closed.
	ErrClosed = errors.New("capability: use of closed capability")
)

/*
Capability is the single operation every component in this module
implements. Perform has no preconditions. The error return only carries
failures of wrapped capabilities up to the caller unchanged; base
capabilities in this package never fail.

Capabilities that own resources also implement io.Closer. Use Close to
release any capability without caring whether it owns anything.
*/
type Capability interface {
	Perform(ctx context.Context) error
}

// Shim is a capability which wraps other capabilities.
type Shim interface {
	Capability

	Children() []Capability
}

// Close releases c if it implements io.Closer.
func Close(c Capability) error {
	if closer, ok := c.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// IsNil reports whether c is nil or a typed nil pointer hiding behind the
// interface.
func IsNil(c Capability) bool {
	if c == nil {
		return true
	}
	v := reflect.ValueOf(c)
	switch v.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Func, reflect.Chan, reflect.Slice, reflect.Interface:
		return v.IsNil()
	}
	return false
}

// State is the lifecycle state of an owning capability.
type State int

const (
	Constructed State = iota
	Destroyed
)

func (s State) String() string {
	switch s {
	case Constructed:
		return "constructed"
	case Destroyed:
		return "destroyed"
	default:
		return "unknown"
	}
}
