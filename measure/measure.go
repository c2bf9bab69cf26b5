// Package measure provides a Capability wrapper that records metrics
// using github.com/prometheus/client_golang.
package measure

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	capability "github.com/ipfs/go-capability"
)

const namespace = "capability"

// Latencies are measured in seconds; calls are expected to be short.
var latencyBuckets = prometheus.ExponentialBuckets(0.00001, 4, 10)

// New wraps c, providing metrics on its calls. The metrics carry a
// "capability" label with the given name and are registered with reg, or
// with the default registerer when reg is nil. Wrapping several
// capabilities under the same name shares their metrics.
func New(name string, c capability.Capability, reg prometheus.Registerer) (*Measure, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	labels := prometheus.Labels{"capability": name}

	m := &Measure{}
	var err error
	if m.performNum, err = register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Namespace:   namespace,
		Name:        "perform_total",
		Help:        "Number of Perform calls.",
		ConstLabels: labels,
	})); err != nil {
		return nil, err
	}
	if m.performErr, err = register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Namespace:   namespace,
		Name:        "perform_errors_total",
		Help:        "Number of Perform calls that returned an error.",
		ConstLabels: labels,
	})); err != nil {
		return nil, err
	}
	if m.performLatency, err = register(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace:   namespace,
		Name:        "perform_latency_seconds",
		Help:        "Latency of Perform calls.",
		Buckets:     latencyBuckets,
		ConstLabels: labels,
	})); err != nil {
		return nil, err
	}
	if m.closeNum, err = register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Namespace:   namespace,
		Name:        "close_total",
		Help:        "Number of capabilities released.",
		ConstLabels: labels,
	})); err != nil {
		return nil, err
	}

	w, err := capability.NewWrapper(c,
		capability.WithName("measure "+name),
		capability.WithRelease(func() error {
			m.closeNum.Inc()
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}
	m.Wrapper = w
	return m, nil
}

func register[T prometheus.Collector](reg prometheus.Registerer, c T) (T, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// Measure records call counts, errors and latencies of the capability it
// owns.
type Measure struct {
	*capability.Wrapper

	performNum     prometheus.Counter
	performErr     prometheus.Counter
	performLatency prometheus.Histogram
	closeNum       prometheus.Counter
}

var _ capability.Shim = (*Measure)(nil)

func recordLatency(h prometheus.Histogram, start time.Time) {
	h.Observe(time.Since(start).Seconds())
}

// Perform implements capability.Capability.
func (m *Measure) Perform(ctx context.Context) error {
	defer recordLatency(m.performLatency, time.Now())
	m.performNum.Inc()
	err := m.Wrapper.Perform(ctx)
	if err != nil {
		m.performErr.Inc()
	}
	return err
}

// Decorator returns a capability.Decorator measuring under name.
func Decorator(name string, reg prometheus.Registerer) capability.Decorator {
	return func(c capability.Capability) (capability.Capability, error) {
		m, err := New(name, c, reg)
		if err != nil {
			return nil, err
		}
		return m, nil
	}
}
