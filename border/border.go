// Package border decorates a drawable capability with a border. The border
// is drawn after the capability it wraps, so nested borders are drawn from
// the inside out.
package border

import (
	"context"
	"errors"
	"fmt"

	capability "github.com/ipfs/go-capability"
)

// ErrEmptyStyle is returned when a border is built without a style.
var ErrEmptyStyle = errors.New("border: empty style")

// Border adds a styled border on top of the capability it owns.
type Border struct {
	*capability.Wrapper

	style string
	emit  capability.Emitter
}

var _ capability.Shim = (*Border)(nil)

// New returns a Border of the given style around c.
func New(c capability.Capability, style string, e capability.Emitter) (*Border, error) {
	if style == "" {
		return nil, ErrEmptyStyle
	}
	if e == nil {
		e = capability.Discard
	}
	b := &Border{style: style, emit: e}
	w, err := capability.NewWrapper(c,
		capability.WithName("border "+style),
		capability.WithAfter(b.draw),
	)
	if err != nil {
		return nil, err
	}
	b.Wrapper = w
	return b, nil
}

func (b *Border) draw(context.Context) error {
	b.emit.Emit(fmt.Sprintf("BorderDecorator: added border with style '%s'", b.style))
	return nil
}

// Style returns the border style.
func (b *Border) Style() string {
	return b.style
}

// Decorator returns a capability.Decorator adding a border of the given
// style.
func Decorator(style string, e capability.Emitter) capability.Decorator {
	return func(c capability.Capability) (capability.Capability, error) {
		b, err := New(c, style, e)
		if err != nil {
			return nil, err
		}
		return b, nil
	}
}
