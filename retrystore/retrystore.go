// Package retrystore provides a capability wrapper which
// allows to retry calls.
package retrystore

import (
	"context"
	"time"

	logging "github.com/ipfs/go-log/v2"
	xerrors "golang.org/x/xerrors"

	capability "github.com/ipfs/go-capability"
)

var log = logging.Logger("capability/retrystore")

// Capability wraps a capability with a user-provided TempErrFunc -which
// determines if an error is a temporal error and thus, worth retrying-, an
// amount of Retries -which specify how many times to retry a call after a
// temporal error- and a base Delay, which is multiplied by the current
// retry and performs a pause before attempting the call again.
//
// Only the call to the inner capability is retried; hooks of outer layers
// run once.
type Capability struct {
	*capability.Wrapper

	TempErrFunc func(error) bool
	Retries     int
	Delay       time.Duration
}

var _ capability.Shim = (*Capability)(nil)

var errFmtString = "ran out of retries trying to get past temporary error: %w"

// New returns a retrying capability owning c.
func New(c capability.Capability, tempErrFunc func(error) bool, retries int, delay time.Duration) (*Capability, error) {
	w, err := capability.NewWrapper(c, capability.WithName("retrystore"))
	if err != nil {
		return nil, err
	}
	return &Capability{
		Wrapper:     w,
		TempErrFunc: tempErrFunc,
		Retries:     retries,
		Delay:       delay,
	}, nil
}

func (d *Capability) runOp(ctx context.Context, op func() error) error {
	err := op()
	if err == nil || !d.TempErrFunc(err) {
		return err
	}

	for i := 0; i < d.Retries; i++ {
		log.Debugw("retrying after temporary error", "attempt", i+1, "error", err)

		timer := time.NewTimer(time.Duration(i+1) * d.Delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		err = op()
		if err == nil || !d.TempErrFunc(err) {
			return err
		}
	}

	return xerrors.Errorf(errFmtString, err)
}

// Perform forwards the call, retrying it after temporary errors.
func (d *Capability) Perform(ctx context.Context) error {
	return d.runOp(ctx, func() error {
		return d.Wrapper.Perform(ctx)
	})
}

// Decorator returns a capability.Decorator building retrying capabilities.
func Decorator(tempErrFunc func(error) bool, retries int, delay time.Duration) capability.Decorator {
	return func(c capability.Capability) (capability.Capability, error) {
		r, err := New(c, tempErrFunc, retries, delay)
		if err != nil {
			return nil, err
		}
		return r, nil
	}
}
