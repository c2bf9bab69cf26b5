package sync

import (
	"context"
	"sync"

	capability "github.com/ipfs/go-capability"
)

// MutexCapability contains a child capability and a mutex.
// It is used for coarse sync over a capability.
type MutexCapability struct {
	sync.Mutex

	child *capability.Wrapper
}

var _ capability.Shim = (*MutexCapability)(nil)

// MutexWrap constructs a capability with a coarse lock around the entire
// capability, for every single call.
func MutexWrap(c capability.Capability) (*MutexCapability, error) {
	w, err := capability.NewWrapper(c, capability.WithName("mutex"))
	if err != nil {
		return nil, err
	}
	return &MutexCapability{child: w}, nil
}

// Children implements Shim.
func (d *MutexCapability) Children() []capability.Capability {
	return []capability.Capability{d.child.Unwrap()}
}

// Perform implements Capability.Perform.
func (d *MutexCapability) Perform(ctx context.Context) error {
	d.Lock()
	defer d.Unlock()
	return d.child.Perform(ctx)
}

// Close releases the child capability.
func (d *MutexCapability) Close() error {
	d.Lock()
	defer d.Unlock()
	return d.child.Close()
}

// Decorator returns a capability.Decorator serialising every call.
func Decorator() capability.Decorator {
	return func(c capability.Capability) (capability.Capability, error) {
		m, err := MutexWrap(c)
		if err != nil {
			return nil, err
		}
		return m, nil
	}
}
