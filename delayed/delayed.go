// Package delayed wraps a capability allowing to artificially
// delay all calls.
package delayed

import (
	"context"

	delay "github.com/ipfs/go-ipfs-delay"

	capability "github.com/ipfs/go-capability"
)

// New returns a new delayed capability owning c.
func New(c capability.Capability, delay delay.D) (*Delayed, error) {
	d := &Delayed{delay: delay}
	w, err := capability.NewWrapper(c,
		capability.WithName("delayed"),
		capability.WithBefore(d.wait),
	)
	if err != nil {
		return nil, err
	}
	d.Wrapper = w
	return d, nil
}

// Delayed is an adapter that delays calls to the inner capability.
type Delayed struct {
	*capability.Wrapper
	delay delay.D
}

var _ capability.Shim = (*Delayed)(nil)

func (dc *Delayed) wait(context.Context) error {
	dc.delay.Wait()
	return nil
}

// Decorator returns a capability.Decorator delaying by d.
func Decorator(d delay.D) capability.Decorator {
	return func(c capability.Capability) (capability.Capability, error) {
		dc, err := New(c, d)
		if err != nil {
			return nil, err
		}
		return dc, nil
	}
}
