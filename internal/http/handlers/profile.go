package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/maisonbelle/storefront/internal/profile"
	"github.com/maisonbelle/storefront/pkg/logging"
)

// ProfileHandler serves the account area tabs.
type ProfileHandler struct {
	svc    *profile.Service
	logger *logging.Logger
}

// NewProfileHandler creates a profile handler.
func NewProfileHandler(svc *profile.Service, logger *logging.Logger) *ProfileHandler {
	return &ProfileHandler{svc: svc, logger: logger}
}

// SignIn handles POST /api/profile/session. The backend authenticates and
// hands the SPA a token; the gateway just stores it for the session.
func (h *ProfileHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(w, r)
	if !ok {
		return
	}
	var req struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Token == "" {
		writeError(w, http.StatusBadRequest, "token is required")
		return
	}
	if err := h.svc.SetToken(r.Context(), sid, req.Token); err != nil {
		h.logger.Error("store auth token failed", "error", err)
		writeError(w, http.StatusInternalServerError, "sign-in failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SignOut handles DELETE /api/profile/session.
func (h *ProfileHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(w, r)
	if !ok {
		return
	}
	if err := h.svc.ClearToken(r.Context(), sid); err != nil {
		h.logger.Error("clear auth token failed", "error", err)
	}
	w.WriteHeader(http.StatusNoContent)
}

// Identity handles GET /api/profile.
func (h *ProfileHandler) Identity(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(w, r)
	if !ok {
		return
	}
	id, err := h.svc.Identity(r.Context(), sid)
	if errors.Is(err, profile.ErrNotAuthenticated) {
		writeError(w, http.StatusUnauthorized, "not signed in")
		return
	}
	if err != nil {
		h.logger.Error("identity read failed", "error", err)
		writeError(w, http.StatusInternalServerError, "profile unavailable")
		return
	}
	writeJSON(w, http.StatusOK, id)
}

// Appointments handles GET /api/profile/appointments.
func (h *ProfileHandler) Appointments(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(w, r)
	if !ok {
		return
	}
	appts, err := h.svc.Appointments(r.Context(), sid)
	if errors.Is(err, profile.ErrNotAuthenticated) {
		writeError(w, http.StatusUnauthorized, "not signed in")
		return
	}
	if err != nil {
		h.logger.Error("appointments read failed", "error", err)
		writeError(w, http.StatusBadGateway, "bookings unavailable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"appointments": appts,
		"count":        len(appts),
	})
}

// Orders handles GET /api/profile/orders.
func (h *ProfileHandler) Orders(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(w, r)
	if !ok {
		return
	}
	orders, err := h.svc.Orders(r.Context(), sid)
	if errors.Is(err, profile.ErrNotAuthenticated) {
		writeError(w, http.StatusUnauthorized, "not signed in")
		return
	}
	if err != nil {
		h.logger.Error("orders read failed", "error", err)
		writeError(w, http.StatusBadGateway, "orders unavailable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"orders": orders,
		"count":  len(orders),
	})
}

// Wishlist handles GET /api/wishlist.
func (h *ProfileHandler) Wishlist(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(w, r)
	if !ok {
		return
	}
	items, err := h.svc.Wishlist(r.Context(), sid)
	if err != nil {
		h.logger.Error("wishlist read failed", "error", err)
		writeError(w, http.StatusInternalServerError, "wishlist unavailable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"items": items,
		"count": len(items),
	})
}

// AddToWishlist handles POST /api/wishlist.
func (h *ProfileHandler) AddToWishlist(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(w, r)
	if !ok {
		return
	}
	var item profile.WishlistItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil || item.ProductID == "" {
		writeError(w, http.StatusBadRequest, "productId is required")
		return
	}
	if err := h.svc.AddToWishlist(r.Context(), sid, item); err != nil {
		h.logger.Error("wishlist add failed", "error", err)
		writeError(w, http.StatusInternalServerError, "wishlist update failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RemoveFromWishlist handles DELETE /api/wishlist?productId=&variantId=.
func (h *ProfileHandler) RemoveFromWishlist(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	if q.Get("productId") == "" {
		writeError(w, http.StatusBadRequest, "productId is required")
		return
	}
	if err := h.svc.RemoveFromWishlist(r.Context(), sid, q.Get("productId"), q.Get("variantId")); err != nil {
		h.logger.Error("wishlist remove failed", "error", err)
		writeError(w, http.StatusInternalServerError, "wishlist update failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
