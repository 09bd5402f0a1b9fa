// Package availability resolves bookable time slots for a booking draft.
package availability

import (
	"context"
	"errors"

	"github.com/maisonbelle/storefront/internal/booking"
	"github.com/maisonbelle/storefront/internal/salonapi"
	"github.com/maisonbelle/storefront/pkg/logging"
)

// ErrNotReady means the draft is missing service, variant or date, so no
// availability query was issued.
var ErrNotReady = errors.New("availability: draft not ready for slot lookup")

// SlotSource is the slice of the salon API the resolver needs.
type SlotSource interface {
	Slots(ctx context.Context, q salonapi.SlotQuery) ([]salonapi.Slot, error)
}

// Resolver fetches one day's bookable slots for the current draft.
type Resolver struct {
	source SlotSource
	logger *logging.Logger
}

// NewResolver constructs a resolver.
func NewResolver(source SlotSource, logger *logging.Logger) *Resolver {
	if logger == nil {
		logger = logging.Default()
	}
	return &Resolver{source: source, logger: logger.Component("availability")}
}

// Resolve returns the ordered bookable slots for the draft's day. A draft
// missing its identifying fields returns ErrNotReady without touching the
// network. Transport and server errors degrade to an empty result: the shop
// shows "no times available" either way.
func (r *Resolver) Resolve(ctx context.Context, draft booking.Draft) ([]salonapi.Slot, error) {
	if !draft.ReadyForSlots() {
		return nil, ErrNotReady
	}

	slots, err := r.source.Slots(ctx, salonapi.SlotQuery{
		ServiceID:    draft.ServiceID,
		VariantName:  draft.VariantName,
		Date:         draft.Date,
		BeauticianID: draft.BeauticianID,
		Any:          draft.Any,
	})
	if err != nil {
		r.logger.Warn("slot lookup failed, showing no availability",
			"service_id", draft.ServiceID, "date", draft.Date, "error", err)
		return []salonapi.Slot{}, nil
	}
	return slots, nil
}
