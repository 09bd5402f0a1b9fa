package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/maisonbelle/storefront/internal/availability"
	"github.com/maisonbelle/storefront/internal/booking"
	"github.com/maisonbelle/storefront/internal/observability/metrics"
	"github.com/maisonbelle/storefront/internal/salonapi"
	"github.com/maisonbelle/storefront/pkg/logging"
)

// BookingHandler drives the draft selection screens and slot lookup.
type BookingHandler struct {
	drafts   *booking.Registry
	resolver *availability.Resolver
	metrics  *metrics.StorefrontMetrics
	logger   *logging.Logger
}

// NewBookingHandler creates a booking-flow handler.
func NewBookingHandler(drafts *booking.Registry, resolver *availability.Resolver, m *metrics.StorefrontMetrics, logger *logging.Logger) *BookingHandler {
	return &BookingHandler{drafts: drafts, resolver: resolver, metrics: m, logger: logger}
}

// GetDraft handles GET /api/booking/draft.
func (h *BookingHandler) GetDraft(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, h.drafts.ForSession(sid).Snapshot())
}

// ResetDraft handles DELETE /api/booking/draft.
func (h *BookingHandler) ResetDraft(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(w, r)
	if !ok {
		return
	}
	h.drafts.ForSession(sid).Reset()
	w.WriteHeader(http.StatusNoContent)
}

// SelectService handles POST /api/booking/draft/service.
func (h *BookingHandler) SelectService(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(w, r)
	if !ok {
		return
	}
	var req struct {
		ServiceID   string  `json:"serviceId"`
		ServiceName string  `json:"serviceName"`
		VariantName string  `json:"variantName"`
		Price       float64 `json:"price"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ServiceID == "" || req.VariantName == "" {
		writeError(w, http.StatusBadRequest, "serviceId and variantName are required")
		return
	}
	store := h.drafts.ForSession(sid)
	store.SelectService(req.ServiceID, req.ServiceName, req.VariantName, req.Price)
	writeJSON(w, http.StatusOK, store.Snapshot())
}

// SelectBeautician handles POST /api/booking/draft/beautician.
// Body {"any": true} matches any available beautician.
func (h *BookingHandler) SelectBeautician(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(w, r)
	if !ok {
		return
	}
	var req struct {
		BeauticianID string `json:"beauticianId"`
		Any          bool   `json:"any"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	store := h.drafts.ForSession(sid)
	var err error
	if req.Any || req.BeauticianID == "" {
		err = store.SelectAnyBeautician()
	} else {
		err = store.SelectBeautician(req.BeauticianID)
	}
	if err != nil {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, store.Snapshot())
}

// SelectDate handles POST /api/booking/draft/date.
func (h *BookingHandler) SelectDate(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(w, r)
	if !ok {
		return
	}
	var req struct {
		Date string `json:"date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Date == "" {
		writeError(w, http.StatusBadRequest, "date is required")
		return
	}
	store := h.drafts.ForSession(sid)
	if err := store.SelectDate(req.Date); err != nil {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, store.Snapshot())
}

// SelectSlot handles POST /api/booking/draft/slot.
func (h *BookingHandler) SelectSlot(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(w, r)
	if !ok {
		return
	}
	var req struct {
		StartISO string `json:"startISO"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.StartISO == "" {
		writeError(w, http.StatusBadRequest, "startISO is required")
		return
	}
	store := h.drafts.ForSession(sid)
	if err := store.SelectSlot(req.StartISO); err != nil {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, store.Snapshot())
}

// SetClient handles POST /api/booking/draft/client.
func (h *BookingHandler) SetClient(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(w, r)
	if !ok {
		return
	}
	var info salonapi.ClientInfo
	if err := json.NewDecoder(r.Body).Decode(&info); err != nil || info.Name == "" || info.Email == "" {
		writeError(w, http.StatusBadRequest, "name and email are required")
		return
	}
	store := h.drafts.ForSession(sid)
	store.SetClient(info)
	writeJSON(w, http.StatusOK, store.Snapshot())
}

// Availability handles GET /api/availability, resolving slots for the
// session's draft. An incomplete draft answers 409 rather than querying.
func (h *BookingHandler) Availability(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(w, r)
	if !ok {
		return
	}
	draft := h.drafts.ForSession(sid).Snapshot()

	slots, err := h.resolver.Resolve(r.Context(), draft)
	if errors.Is(err, availability.ErrNotReady) {
		writeError(w, http.StatusConflict, "select a service, variant and date first")
		return
	}
	if err != nil {
		// The resolver degrades read failures itself; anything else is a bug.
		h.logger.Error("availability resolve failed", "error", err)
		writeError(w, http.StatusInternalServerError, "availability lookup failed")
		return
	}

	result := "ok"
	if len(slots) == 0 {
		result = "empty"
	}
	h.metrics.ObserveAvailability(result)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"slots": slots,
		"count": len(slots),
	})
}
