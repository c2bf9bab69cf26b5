package captest

import (
	"context"
	"errors"

	capability "github.com/ipfs/go-capability"
)

var ErrTest = errors.New("test error")

// BaseLine is the line a Probe emits when performed.
const BaseLine = "base action"

// Probe is a base capability that counts how often it is performed and
// released.
type Probe struct {
	emit capability.Emitter

	performs int
	closes   int
	err      error
}

var _ capability.Capability = (*Probe)(nil)

// NewProbe returns a Probe emitting BaseLine to e on every Perform.
func NewProbe(e capability.Emitter) *Probe {
	if e == nil {
		e = capability.Discard
	}
	return &Probe{emit: e}
}

// NewFailingProbe returns a Probe whose Perform always returns err.
func NewFailingProbe(e capability.Emitter, err error) *Probe {
	p := NewProbe(e)
	p.err = err
	return p
}

func (p *Probe) Perform(_ context.Context) error {
	p.performs++
	p.emit.Emit(BaseLine)
	return p.err
}

func (p *Probe) Close() error {
	p.closes++
	return nil
}

// Performs returns the number of Perform calls seen.
func (p *Probe) Performs() int {
	return p.performs
}

// Closes returns the number of Close calls seen.
func (p *Probe) Closes() int {
	return p.closes
}

// Marker returns a decorator that emits "<name>.before" and "<name>.after"
// around the call it wraps.
func Marker(name string, e capability.Emitter) capability.Decorator {
	return func(c capability.Capability) (capability.Capability, error) {
		return capability.NewWrapper(c,
			capability.WithName(name),
			capability.WithBefore(func(context.Context) error {
				e.Emit(name + ".before")
				return nil
			}),
			capability.WithAfter(func(context.Context) error {
				e.Emit(name + ".after")
				return nil
			}),
		)
	}
}

// Subsequence reports whether want appears in have in order, possibly with
// other lines in between.
func Subsequence(have, want []string) bool {
	i := 0
	for _, line := range have {
		if i < len(want) && line == want[i] {
			i++
		}
	}
	return i == len(want)
}
