package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/maisonbelle/storefront/internal/booking"
	"github.com/maisonbelle/storefront/internal/cancellation"
	"github.com/maisonbelle/storefront/internal/checkout"
	"github.com/maisonbelle/storefront/internal/confirmation"
	"github.com/maisonbelle/storefront/internal/observability/metrics"
	"github.com/maisonbelle/storefront/pkg/logging"
)

// CheckoutHandler submits drafts and serves the payment return pages: the
// confirmation poll on success, the slot release on cancel.
type CheckoutHandler struct {
	orchestrators *checkout.Registry
	draftStores   *booking.Registry
	tracker       *confirmation.Tracker
	cancellations *cancellation.Initiator
	metrics       *metrics.StorefrontMetrics
	logger        *logging.Logger
}

// NewCheckoutHandler creates a checkout handler.
func NewCheckoutHandler(
	orchestrators *checkout.Registry,
	draftStores *booking.Registry,
	tracker *confirmation.Tracker,
	cancellations *cancellation.Initiator,
	m *metrics.StorefrontMetrics,
	logger *logging.Logger,
) *CheckoutHandler {
	return &CheckoutHandler{
		orchestrators: orchestrators,
		draftStores:   draftStores,
		tracker:       tracker,
		cancellations: cancellations,
		metrics:       m,
		logger:        logger,
	}
}

// Submit handles POST /api/checkout. Body: {"mode": "pay_in_salon" | "pay_now" | "deposit"}.
// A reserved outcome ends the flow; a redirect outcome carries the payment
// provider URL the browser must navigate to.
func (h *CheckoutHandler) Submit(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(w, r)
	if !ok {
		return
	}
	var req struct {
		Mode booking.PaymentMode `json:"mode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	draftStore := h.draftStores.ForSession(sid)
	result, err := h.orchestrators.ForSession(sid).Submit(r.Context(), draftStore.Snapshot(), req.Mode)
	switch {
	case errors.Is(err, checkout.ErrInvalidMode):
		h.metrics.ObserveCheckout(string(req.Mode), "invalid_mode")
		writeError(w, http.StatusBadRequest, "unknown payment mode")
		return
	case errors.Is(err, checkout.ErrDraftIncomplete):
		h.metrics.ObserveCheckout(string(req.Mode), "incomplete")
		writeError(w, http.StatusConflict, "booking selection is incomplete")
		return
	case errors.Is(err, checkout.ErrSubmissionInFlight):
		h.metrics.ObserveCheckout(string(req.Mode), "busy")
		writeError(w, http.StatusTooManyRequests, "submission already in progress")
		return
	case err != nil:
		// Draft intentionally preserved: the user can fix and resubmit.
		h.metrics.ObserveCheckout(string(req.Mode), "error")
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	if result.Kind == checkout.KindReserved {
		// Reservation complete: the draft has served its purpose.
		draftStore.Reset()
	}
	h.metrics.ObserveCheckout(string(req.Mode), string(result.Kind))
	writeJSON(w, http.StatusOK, result)
}

// Confirmation handles GET /api/checkout/confirmation?appointmentId=&session_id=.
// It starts (or rejoins) the poll sequence for the appointment and answers
// with the current state snapshot; the page polls this endpoint until the
// state is terminal or it gives up alongside the poller.
func (h *CheckoutHandler) Confirmation(w http.ResponseWriter, r *http.Request) {
	appointmentID := r.URL.Query().Get("appointmentId")
	sessionID := r.URL.Query().Get("session_id")
	if appointmentID == "" {
		writeJSON(w, http.StatusOK, confirmation.Snapshot{State: confirmation.StateError})
		return
	}

	poller := h.tracker.Start(appointmentID, sessionID)
	h.metrics.ObserveConfirmPoll()

	snap := poller.Snapshot()
	select {
	case <-poller.Done():
		h.metrics.ObserveConfirmFinal(string(snap.State))
	default:
	}
	writeJSON(w, http.StatusOK, snap)
}

// PaymentCancelled handles POST /api/checkout/cancelled?appointmentId=.
// Releasing the slot is best-effort: every outcome answers 200 because the
// user already walked away from payment.
func (h *CheckoutHandler) PaymentCancelled(w http.ResponseWriter, r *http.Request) {
	appointmentID := r.URL.Query().Get("appointmentId")
	outcome := h.cancellations.CancelUnpaid(r.Context(), appointmentID)
	h.metrics.ObserveCancellation(string(outcome))

	released := outcome == cancellation.OutcomeReleased
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"outcome":  outcome,
		"released": released,
	})
}
