// Package failstore implements a capability which can produce
// custom failures on calls by calling a user-provided
// error function.
package failstore

import (
	"context"

	capability "github.com/ipfs/go-capability"
)

// Failstore is a capability which fails according to a user-provided
// function.
type Failstore struct {
	*capability.Wrapper
	errfunc func(string) error
}

var _ capability.Shim = (*Failstore)(nil)

// NewFailstore creates a new capability with the given error function.
// The efunc will be called with "perform" before every call is forwarded
// and with "close" before the inner capability is released.
func NewFailstore(c capability.Capability, efunc func(string) error) (*Failstore, error) {
	d := &Failstore{errfunc: efunc}
	w, err := capability.NewWrapper(c,
		capability.WithName("failstore"),
		capability.WithBefore(func(context.Context) error {
			return d.errfunc("perform")
		}),
	)
	if err != nil {
		return nil, err
	}
	d.Wrapper = w
	return d, nil
}

// Close releases the inner capability unless the error function fails it,
// in which case nothing is released and a later Close may try again.
func (d *Failstore) Close() error {
	if d.State() == capability.Destroyed {
		return nil
	}
	if err := d.errfunc("close"); err != nil {
		return err
	}
	return d.Wrapper.Close()
}

// Decorator returns a capability.Decorator building failstores.
func Decorator(efunc func(string) error) capability.Decorator {
	return func(c capability.Capability) (capability.Capability, error) {
		d, err := NewFailstore(c, efunc)
		if err != nil {
			return nil, err
		}
		return d, nil
	}
}
