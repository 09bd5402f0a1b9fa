package handlers

import (
	"net/http"
	"strconv"

	"github.com/maisonbelle/storefront/internal/catalog"
	"github.com/maisonbelle/storefront/internal/currency"
	"github.com/maisonbelle/storefront/pkg/logging"
)

// CatalogHandler serves the browse surfaces: services, beauticians, products.
type CatalogHandler struct {
	catalog  *catalog.Catalog
	currency *currency.Selection
	logger   *logging.Logger
}

// NewCatalogHandler creates a catalog handler.
func NewCatalogHandler(cat *catalog.Catalog, sel *currency.Selection, logger *logging.Logger) *CatalogHandler {
	return &CatalogHandler{catalog: cat, currency: sel, logger: logger}
}

// Services handles GET /api/services.
func (h *CatalogHandler) Services(w http.ResponseWriter, r *http.Request) {
	services := h.catalog.Services(r.Context())
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"services": services,
		"count":    len(services),
	})
}

// Beauticians handles GET /api/beauticians?serviceId=.
func (h *CatalogHandler) Beauticians(w http.ResponseWriter, r *http.Request) {
	beauticians := h.catalog.Beauticians(r.Context(), r.URL.Query().Get("serviceId"))
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"beauticians": beauticians,
		"count":       len(beauticians),
	})
}

// Products handles GET /api/products with filter/sort query params.
func (h *CatalogHandler) Products(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	filter := catalog.ProductFilter{
		Category: q.Get("category"),
		Brand:    q.Get("brand"),
		Sort:     q.Get("sort"),
	}
	if v, err := strconv.ParseFloat(q.Get("minPrice"), 64); err == nil {
		filter.MinPrice = v
	}
	if v, err := strconv.ParseFloat(q.Get("maxPrice"), 64); err == nil {
		filter.MaxPrice = v
	}

	products := h.catalog.Products(r.Context(), filter)
	code := h.currency.Get(r.Context(), sid)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"products": products,
		"count":    len(products),
		"currency": code,
	})
}
