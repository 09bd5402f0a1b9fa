package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestObserveOnCustomRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveCheckout("deposit", "redirect")
	m.ObserveConfirmPoll()
	m.ObserveConfirmFinal("confirmed")
	m.ObserveCancellation("already_processed")
	m.ObserveAvailability("empty")

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}
	if len(families) != 5 {
		t.Fatalf("metric families = %d, want 5", len(families))
	}
}

func TestNilReceiverIsSafe(t *testing.T) {
	var m *StorefrontMetrics
	m.ObserveCheckout("pay_now", "error")
	m.ObserveConfirmPoll()
	m.ObserveConfirmFinal("pending")
	m.ObserveCancellation("released")
	m.ObserveAvailability("ok")
}
