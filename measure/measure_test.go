package measure

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	capability "github.com/ipfs/go-capability"
	captest "github.com/ipfs/go-capability/test"
)

func TestMeasureAll(t *testing.T) {
	captest.SubtestAll(t, Decorator("suite", prometheus.NewRegistry()))
}

func TestMeasureCounts(t *testing.T) {
	ctx := context.Background()
	reg := prometheus.NewRegistry()

	m, err := New("probe", captest.NewProbe(nil), reg)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		require.NoError(t, m.Perform(ctx))
	}
	require.Equal(t, float64(3), testutil.ToFloat64(m.performNum))
	require.Equal(t, float64(0), testutil.ToFloat64(m.performErr))
	require.Equal(t, 1, testutil.CollectAndCount(m.performLatency))

	require.NoError(t, m.Close())
	require.NoError(t, m.Close())
	require.Equal(t, float64(1), testutil.ToFloat64(m.closeNum))
}

func TestMeasureErrors(t *testing.T) {
	ctx := context.Background()
	reg := prometheus.NewRegistry()

	m, err := New("failing", captest.NewFailingProbe(nil, captest.ErrTest), reg)
	require.NoError(t, err)

	require.ErrorIs(t, m.Perform(ctx), captest.ErrTest)
	require.Equal(t, float64(1), testutil.ToFloat64(m.performErr))
}

func TestMeasureSharedName(t *testing.T) {
	ctx := context.Background()
	reg := prometheus.NewRegistry()

	a, err := New("shared", capability.NewNull(), reg)
	require.NoError(t, err)
	b, err := New("shared", capability.NewNull(), reg)
	require.NoError(t, err)

	require.NoError(t, a.Perform(ctx))
	require.NoError(t, b.Perform(ctx))
	require.Equal(t, float64(2), testutil.ToFloat64(a.performNum))

	count, err := testutil.GatherAndCount(reg, "capability_perform_total")
	require.NoError(t, err)
	require.Equal(t, 1, count)
}
