package proxy

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	capability "github.com/ipfs/go-capability"
	captest "github.com/ipfs/go-capability/test"
)

func TestProxyAll(t *testing.T) {
	captest.SubtestAll(t, Decorator(nil))
}

func TestProxyTrace(t *testing.T) {
	ctx := context.Background()
	rec := capability.NewRecorder()

	p, err := New(capability.NewBasic(rec), rec)
	require.NoError(t, err)
	defer p.Close()

	require.NoError(t, p.Perform(ctx))
	require.Equal(t, []string{
		"Proxy: checking access prior to firing a real request.",
		"RealSubject: handling request.",
		"Proxy: logging access time of request.",
	}, rec.Lines())
}

func TestProxyRecordsRequest(t *testing.T) {
	ctx := context.Background()
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	p, err := New(capability.NewNull(), nil, WithClock(func() time.Time { return at }))
	require.NoError(t, err)
	require.Equal(t, Request{}, p.LastRequest())

	require.NoError(t, p.Perform(ctx))
	first := p.LastRequest()
	require.Equal(t, at, first.Time)
	require.NotEqual(t, uuid.Nil, first.ID)

	require.NoError(t, p.Perform(ctx))
	require.NotEqual(t, first.ID, p.LastRequest().ID)
}

func TestProxyDenied(t *testing.T) {
	ctx := context.Background()
	rec := capability.NewRecorder()
	probe := captest.NewProbe(rec)
	errNope := errors.New("nope")

	p, err := New(probe, rec, WithChecker(func(context.Context) error { return errNope }))
	require.NoError(t, err)

	err = p.Perform(ctx)
	require.ErrorIs(t, err, ErrAccessDenied)
	require.ErrorIs(t, err, errNope)
	require.Equal(t, 0, probe.Performs())
	require.Equal(t, []string{checkLine}, rec.Lines())
	require.Equal(t, Request{}, p.LastRequest())
}

func TestProxyNilSubject(t *testing.T) {
	_, err := New(nil, nil)
	require.ErrorIs(t, err, capability.ErrNilCapability)
}

func TestNestedProxies(t *testing.T) {
	ctx := context.Background()
	rec := capability.NewRecorder()

	c, err := capability.Chain(capability.NewBasic(rec), Decorator(rec), Decorator(rec))
	require.NoError(t, err)
	require.NoError(t, c.Perform(ctx))
	require.Equal(t, []string{
		checkLine,
		checkLine,
		"RealSubject: handling request.",
		logLine,
		logLine,
	}, rec.Lines())
}
