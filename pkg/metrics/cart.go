package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// CartMetrics tracks cart mutations by operation, cart kind and outcome.
type CartMetrics struct {
	operations     *prometheus.CounterVec
	duration       *prometheus.HistogramVec
	voucherCleared *prometheus.CounterVec
	decodeFailures *prometheus.CounterVec
}

// NewCartMetrics registers the cart metrics on the provided registerer.
func NewCartMetrics(reg prometheus.Registerer) *CartMetrics {
	if reg == nil {
		return &CartMetrics{}
	}
	operations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "cart",
		Name:      "operations_total",
		Help:      "Cart operations by outcome.",
	}, []string{"operation", "kind", "outcome"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "cart",
		Name:      "operation_duration_seconds",
		Help:      "Latency of cart operations including lock, load and save.",
		Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
	}, []string{"operation", "kind"})
	voucherCleared := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "cart",
		Name:      "voucher_auto_cleared_total",
		Help:      "Vouchers dropped because the cart no longer qualified.",
	}, []string{"kind"})
	decodeFailures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "cart",
		Name:      "decode_failures_total",
		Help:      "Persisted carts that could not be decoded and were reset.",
	}, []string{"kind"})
	reg.MustRegister(operations, duration, voucherCleared, decodeFailures)
	return &CartMetrics{
		operations:     operations,
		duration:       duration,
		voucherCleared: voucherCleared,
		decodeFailures: decodeFailures,
	}
}

// ObserveOperation counts one operation and records its latency.
func (c *CartMetrics) ObserveOperation(operation, kind, outcome string, elapsed time.Duration) {
	if c == nil || c.operations == nil {
		return
	}
	c.operations.WithLabelValues(normalizeLabel(operation), normalizeLabel(kind), normalizeLabel(outcome)).Inc()
	c.duration.WithLabelValues(normalizeLabel(operation), normalizeLabel(kind)).Observe(elapsed.Seconds())
}

func (c *CartMetrics) IncVoucherCleared(kind string) {
	if c == nil || c.voucherCleared == nil {
		return
	}
	c.voucherCleared.WithLabelValues(normalizeLabel(kind)).Inc()
}

func (c *CartMetrics) IncDecodeFailure(kind string) {
	if c == nil || c.decodeFailures == nil {
		return
	}
	c.decodeFailures.WithLabelValues(normalizeLabel(kind)).Inc()
}
