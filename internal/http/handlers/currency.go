package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/maisonbelle/storefront/internal/currency"
	"github.com/maisonbelle/storefront/pkg/logging"
)

// CurrencyHandler reads and sets the session's display currency.
type CurrencyHandler struct {
	selection *currency.Selection
	logger    *logging.Logger
}

// NewCurrencyHandler creates a currency handler.
func NewCurrencyHandler(sel *currency.Selection, logger *logging.Logger) *CurrencyHandler {
	return &CurrencyHandler{selection: sel, logger: logger}
}

// Get handles GET /api/currency.
func (h *CurrencyHandler) Get(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"currency":  h.selection.Get(r.Context(), sid),
		"supported": currency.Codes(),
	})
}

// Put handles PUT /api/currency. Body: {"currency": "EUR"}.
func (h *CurrencyHandler) Put(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(w, r)
	if !ok {
		return
	}
	var req struct {
		Currency string `json:"currency"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.selection.Set(r.Context(), sid, req.Currency); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"currency": req.Currency})
}
