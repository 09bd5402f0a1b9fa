// Package currency handles display-currency selection and conversion.
// Catalog prices are GBP; conversion is display-only, payment always settles
// in GBP on the backend.
package currency

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/maisonbelle/storefront/internal/clientstore"
)

// Display conversion rates from GBP. Static: rates ride along with catalog
// deploys rather than a live feed.
var rates = map[string]float64{
	"GBP": 1.0,
	"EUR": 1.17,
	"USD": 1.27,
}

var symbols = map[string]string{
	"GBP": "£",
	"EUR": "€",
	"USD": "$",
}

// Supported reports whether code has a conversion rate.
func Supported(code string) bool {
	_, ok := rates[code]
	return ok
}

// Codes lists the supported currency codes.
func Codes() []string {
	return []string{"GBP", "EUR", "USD"}
}

// Convert turns a GBP amount into the display currency.
func Convert(amountGBP float64, code string) float64 {
	rate, ok := rates[code]
	if !ok {
		return amountGBP
	}
	return amountGBP * rate
}

// Format renders a GBP amount in the display currency, e.g. "€29.25".
func Format(amountGBP float64, code string) string {
	sym, ok := symbols[code]
	if !ok {
		sym = "£"
		code = "GBP"
	}
	return fmt.Sprintf("%s%.2f", sym, Convert(amountGBP, code))
}

// Selection persists the chosen display currency per session.
type Selection struct {
	storage     *clientstore.Store
	defaultCode string
}

// NewSelection creates the per-session currency selection.
func NewSelection(storage *clientstore.Store, defaultCode string) *Selection {
	if !Supported(defaultCode) {
		defaultCode = "GBP"
	}
	return &Selection{storage: storage, defaultCode: defaultCode}
}

// Get returns the session's display currency, falling back to the default.
func (s *Selection) Get(ctx context.Context, sessionID string) string {
	data, ok, err := s.storage.Get(ctx, sessionID, clientstore.FieldCurrency)
	if err != nil || !ok {
		return s.defaultCode
	}
	var code string
	if json.Unmarshal(data, &code) != nil || !Supported(code) {
		return s.defaultCode
	}
	return code
}

// Set stores the session's display currency.
func (s *Selection) Set(ctx context.Context, sessionID, code string) error {
	if !Supported(code) {
		return fmt.Errorf("currency: unsupported code %q", code)
	}
	data, _ := json.Marshal(code)
	return s.storage.Set(ctx, sessionID, clientstore.FieldCurrency, data)
}
