package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/maisonbelle/storefront/internal/cart"
	"github.com/maisonbelle/storefront/internal/clientstore"
	"github.com/maisonbelle/storefront/internal/currency"
	"github.com/maisonbelle/storefront/pkg/logging"
)

// CartHandler serves the cart sidebar. Each request rehydrates the session's
// cart from durable storage, so carts survive reloads and new tabs.
type CartHandler struct {
	storage  *clientstore.Store
	currency *currency.Selection
	logger   *logging.Logger
}

// NewCartHandler creates a cart handler.
func NewCartHandler(storage *clientstore.Store, sel *currency.Selection, logger *logging.Logger) *CartHandler {
	return &CartHandler{storage: storage, currency: sel, logger: logger}
}

func (h *CartHandler) store(r *http.Request, sid string) *cart.Store {
	return cart.NewStore(r.Context(), h.storage, sid, h.logger)
}

func (h *CartHandler) respond(w http.ResponseWriter, r *http.Request, sid string, c *cart.Store) {
	code := h.currency.Get(r.Context(), sid)
	subtotal := c.Subtotal()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"items":           c.Items(),
		"count":           c.Count(),
		"subtotal":        subtotal,
		"currency":        code,
		"displaySubtotal": currency.Format(subtotal, code),
	})
}

// Get handles GET /api/cart.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(w, r)
	if !ok {
		return
	}
	h.respond(w, r, sid, h.store(r, sid))
}

// Add handles POST /api/cart.
func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(w, r)
	if !ok {
		return
	}
	var req struct {
		ProductID string               `json:"productId"`
		VariantID string               `json:"variantId"`
		Quantity  int                  `json:"quantity"`
		Product   cart.ProductSnapshot `json:"product"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ProductID == "" || req.VariantID == "" {
		writeError(w, http.StatusBadRequest, "productId and variantId are required")
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	c := h.store(r, sid)
	if err := c.Add(r.Context(), req.ProductID, req.VariantID, req.Quantity, req.Product); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.respond(w, r, sid, c)
}

// Update handles PATCH /api/cart. Quantity zero or below removes the line.
func (h *CartHandler) Update(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(w, r)
	if !ok {
		return
	}
	var req struct {
		ProductID string `json:"productId"`
		VariantID string `json:"variantId"`
		Quantity  int    `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ProductID == "" || req.VariantID == "" {
		writeError(w, http.StatusBadRequest, "productId and variantId are required")
		return
	}

	c := h.store(r, sid)
	if err := c.UpdateQuantity(r.Context(), req.ProductID, req.VariantID, req.Quantity); err != nil {
		h.logger.Error("cart update failed", "error", err)
		writeError(w, http.StatusInternalServerError, "cart update failed")
		return
	}
	h.respond(w, r, sid, c)
}

// Clear handles DELETE /api/cart.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(w, r)
	if !ok {
		return
	}
	c := h.store(r, sid)
	if err := c.Clear(r.Context()); err != nil {
		h.logger.Error("cart clear failed", "error", err)
		writeError(w, http.StatusInternalServerError, "cart clear failed")
		return
	}
	h.respond(w, r, sid, c)
}
