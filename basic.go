package capability

import (
	"context"
	"fmt"

	logging "github.com/ipfs/go-log/v2"
)

var log = logging.Logger("capability")

// Here are some basic capability implementations.

// Basic performs the plain request handling action with no side
// conditions.
type Basic struct {
	emit Emitter
}

// NewBasic returns a Basic capability emitting to e. A nil e discards.
func NewBasic(e Emitter) *Basic {
	return &Basic{emit: orDiscard(e)}
}

// Perform implements Capability.
func (b *Basic) Perform(ctx context.Context) error {
	b.emit.Emit("RealSubject: handling request.")
	return nil
}

// Primitive is a drawable rectangle. It is immutable once built.
type Primitive struct {
	x, y          int
	width, height int
	emit          Emitter
}

// NewPrimitive returns a Primitive at (x, y) with the given size.
func NewPrimitive(x, y, width, height int, e Emitter) *Primitive {
	return &Primitive{x: x, y: y, width: width, height: height, emit: orDiscard(e)}
}

// Perform draws the primitive by describing its position and size.
func (p *Primitive) Perform(ctx context.Context) error {
	p.emit.Emit(p.String())
	return nil
}

func (p *Primitive) String() string {
	return fmt.Sprintf("Primitive: position=(%d, %d), size=(%d, %d)", p.x, p.y, p.width, p.height)
}

// Null does nothing, but conforms to the API.
// Useful to test with.
type Null struct{}

// NewNull returns a Null capability.
func NewNull() *Null {
	return &Null{}
}

// Perform implements Capability.
func (n *Null) Perform(ctx context.Context) error {
	return nil
}

// LogCapability logs all calls through the capability.
type LogCapability struct {
	*Wrapper
}

// NewLogCapability constructs a log capability around c. The name is used
// to tell several log capabilities apart in the output.
func NewLogCapability(c Capability, name string) (*LogCapability, error) {
	if len(name) == 0 {
		name = "LogCapability"
	}
	w, err := NewWrapper(c,
		WithName(name),
		WithBefore(func(context.Context) error {
			log.Debugf("%s: Perform", name)
			return nil
		}),
		WithRelease(func() error {
			log.Debugf("%s: Close", name)
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}
	return &LogCapability{Wrapper: w}, nil
}
