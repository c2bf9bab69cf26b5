package capability

import (
	"go.uber.org/multierr"
)

// Decorator wraps a capability, adding some functionality. On success the
// returned capability owns c. On failure c is still owned by the caller.
type Decorator func(c Capability) (Capability, error)

// Chain decorates base with all decorators. The first decorator becomes the
// outermost layer, so its before hooks run first and its after hooks last.
//
// If a decorator fails, or returns no capability, everything built so far,
// base included, is closed and the error is returned.
func Chain(base Capability, decorators ...Decorator) (Capability, error) {
	if IsNil(base) {
		return nil, ErrNilCapability
	}
	c := base
	for i := len(decorators) - 1; i >= 0; i-- {
		next, err := decorators[i](c)
		if err == nil && IsNil(next) {
			err = ErrNilCapability
		}
		if err != nil {
			return nil, multierr.Append(err, Close(c))
		}
		c = next
	}
	return c, nil
}

// Depth returns the number of wrapper layers above the innermost
// capability. Only Shims with a single child are followed.
func Depth(c Capability) int {
	depth := 0
	for {
		shim, ok := c.(Shim)
		if !ok {
			return depth
		}
		children := shim.Children()
		if len(children) != 1 {
			return depth
		}
		c = children[0]
		depth++
	}
}
