// Package metrics exposes Prometheus counters for the booking and checkout
// flows.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// StorefrontMetrics counts checkout submissions, confirmation polling and
// cancellation outcomes.
type StorefrontMetrics struct {
	checkoutTotal     *prometheus.CounterVec
	confirmPollTotal  prometheus.Counter
	confirmFinalTotal *prometheus.CounterVec
	cancellationTotal *prometheus.CounterVec
	availabilityTotal *prometheus.CounterVec
}

// New registers the storefront metric set. A nil registerer uses the default.
func New(reg prometheus.Registerer) *StorefrontMetrics {
	m := &StorefrontMetrics{
		checkoutTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "storefront",
			Subsystem: "checkout",
			Name:      "submissions_total",
			Help:      "Checkout submissions by payment mode and outcome",
		}, []string{"mode", "outcome"}),
		confirmPollTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "storefront",
			Subsystem: "confirmation",
			Name:      "polls_total",
			Help:      "Appointment status fetches during confirmation polling",
		}),
		confirmFinalTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "storefront",
			Subsystem: "confirmation",
			Name:      "final_state_total",
			Help:      "Final confirmation poller states",
		}, []string{"state"}),
		cancellationTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "storefront",
			Subsystem: "cancellation",
			Name:      "outcomes_total",
			Help:      "Unpaid-reservation cancellation outcomes",
		}, []string{"outcome"}),
		availabilityTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "storefront",
			Subsystem: "availability",
			Name:      "lookups_total",
			Help:      "Slot lookups by result",
		}, []string{"result"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(
		m.checkoutTotal,
		m.confirmPollTotal,
		m.confirmFinalTotal,
		m.cancellationTotal,
		m.availabilityTotal,
	)
	return m
}

func (m *StorefrontMetrics) ObserveCheckout(mode, outcome string) {
	if m == nil {
		return
	}
	m.checkoutTotal.WithLabelValues(mode, outcome).Inc()
}

func (m *StorefrontMetrics) ObserveConfirmPoll() {
	if m == nil {
		return
	}
	m.confirmPollTotal.Inc()
}

func (m *StorefrontMetrics) ObserveConfirmFinal(state string) {
	if m == nil {
		return
	}
	m.confirmFinalTotal.WithLabelValues(state).Inc()
}

func (m *StorefrontMetrics) ObserveCancellation(outcome string) {
	if m == nil {
		return
	}
	m.cancellationTotal.WithLabelValues(outcome).Inc()
}

func (m *StorefrontMetrics) ObserveAvailability(result string) {
	if m == nil {
		return
	}
	m.availabilityTotal.WithLabelValues(result).Inc()
}
