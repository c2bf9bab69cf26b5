package failstore

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	capability "github.com/ipfs/go-capability"
	captest "github.com/ipfs/go-capability/test"
)

func TestFailstoreAll(t *testing.T) {
	captest.SubtestAll(t, Decorator(func(string) error { return nil }))
}

func TestFailstoreFailsPerform(t *testing.T) {
	ctx := context.Background()
	p := captest.NewProbe(nil)

	var ops []string
	d, err := NewFailstore(p, func(op string) error {
		ops = append(ops, op)
		if op == "perform" {
			return captest.ErrTest
		}
		return nil
	})
	require.NoError(t, err)

	require.ErrorIs(t, d.Perform(ctx), captest.ErrTest)
	require.Equal(t, 0, p.Performs())

	require.NoError(t, d.Close())
	require.Equal(t, []string{"perform", "close"}, ops)
	require.Equal(t, 1, p.Closes())
}

func TestFailstoreFailsClose(t *testing.T) {
	p := captest.NewProbe(nil)
	errClose := errors.New("close failed")

	fail := true
	d, err := NewFailstore(p, func(op string) error {
		if op == "close" && fail {
			return errClose
		}
		return nil
	})
	require.NoError(t, err)

	require.ErrorIs(t, d.Close(), errClose)
	require.Equal(t, 0, p.Closes())
	require.Equal(t, capability.Constructed, d.State())

	fail = false
	require.NoError(t, d.Close())
	require.Equal(t, 1, p.Closes())
}
