package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestCartMetricsCountsByOutcome(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewCartMetrics(reg)

	m.ObserveOperation("add_item", "customer", "applied", 3*time.Millisecond)
	m.ObserveOperation("add_item", "customer", "applied", time.Millisecond)
	m.ObserveOperation("add_item", "customer", "stock_exceeded", time.Millisecond)
	m.ObserveOperation("remove_item", "pos", "", time.Millisecond)
	m.IncVoucherCleared("pos")
	m.IncDecodeFailure("customer")

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	ops := findMetricFamily(mfs, "streetsneakers_cart_operations_total")
	if ops == nil {
		t.Fatal("operations counter not exported")
	}
	if got := counterWithLabels(ops, map[string]string{"operation": "add_item", "kind": "customer", "outcome": "applied"}); got != 2 {
		t.Fatalf("expected 2 applied adds, got %f", got)
	}
	if got := counterWithLabels(ops, map[string]string{"operation": "add_item", "outcome": "stock_exceeded"}); got != 1 {
		t.Fatalf("expected 1 rejected add, got %f", got)
	}
	if got := counterWithLabels(ops, map[string]string{"operation": "remove_item", "outcome": "unknown"}); got != 1 {
		t.Fatalf("expected empty outcome to be labelled unknown, got %f", got)
	}

	if got, err := fetchCounterValue(mfs, "streetsneakers_cart_voucher_auto_cleared_total", "kind", "pos"); err != nil || got != 1 {
		t.Fatalf("expected voucher cleared=1, got %f err=%v", got, err)
	}
	if got, err := fetchCounterValue(mfs, "streetsneakers_cart_decode_failures_total", "kind", "customer"); err != nil || got != 1 {
		t.Fatalf("expected decode failures=1, got %f err=%v", got, err)
	}
	if got, err := fetchHistogramSum(mfs, "streetsneakers_cart_operation_duration_seconds", "operation", "add_item"); err != nil || got <= 0 {
		t.Fatalf("expected add_item latency recorded, got %f err=%v", got, err)
	}
}

func TestCartMetricsNilSafe(t *testing.T) {
	var m *CartMetrics
	m.ObserveOperation("op", "customer", "applied", time.Millisecond)
	m.IncVoucherCleared("customer")
	NewCartMetrics(nil).IncDecodeFailure("pos")
}

func counterWithLabels(mf *dto.MetricFamily, want map[string]string) float64 {
	var total float64
	for _, metric := range mf.GetMetric() {
		ok := true
		for name, value := range want {
			if !matchesLabel(metric.GetLabel(), name, value) {
				ok = false
				break
			}
		}
		if ok {
			total += metric.GetCounter().GetValue()
		}
	}
	return total
}
