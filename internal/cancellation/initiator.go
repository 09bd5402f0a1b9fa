// Package cancellation releases an unpaid reservation when the user backs out
// of the payment page.
package cancellation

import (
	"context"

	"github.com/maisonbelle/storefront/internal/salonapi"
	"github.com/maisonbelle/storefront/pkg/logging"
)

// Outcome of a cancellation attempt. None of these are user-visible errors:
// the user already abandoned payment, so a hard failure adds nothing.
type Outcome string

const (
	// OutcomeReleased: the reservation was deleted and the slot freed.
	OutcomeReleased Outcome = "released"
	// OutcomeAlreadyProcessed: the payment webhook confirmed the appointment
	// before the delete arrived. Not an error.
	OutcomeAlreadyProcessed Outcome = "already_processed"
	// OutcomeNothingToCancel: no appointment id on the return URL.
	OutcomeNothingToCancel Outcome = "nothing_to_cancel"
	// OutcomeFailed: swallowed from the user's perspective, logged for
	// diagnostics.
	OutcomeFailed Outcome = "failed"
)

// Canceller is the slice of the salon API the initiator needs.
type Canceller interface {
	CancelUnpaidAppointment(ctx context.Context, id string) error
}

// Initiator deletes abandoned unpaid reservations, tolerating the
// already-paid race.
type Initiator struct {
	api    Canceller
	logger *logging.Logger
}

// NewInitiator constructs an initiator.
func NewInitiator(api Canceller, logger *logging.Logger) *Initiator {
	if logger == nil {
		logger = logging.Default()
	}
	return &Initiator{api: api, logger: logger.Component("cancellation")}
}

// CancelUnpaid deletes the reservation if it is still unpaid. A backend
// rejection meaning "no longer unpaid" counts as already processed; any other
// failure is logged and swallowed.
func (i *Initiator) CancelUnpaid(ctx context.Context, appointmentID string) Outcome {
	if appointmentID == "" {
		return OutcomeNothingToCancel
	}

	err := i.api.CancelUnpaidAppointment(ctx, appointmentID)
	if err == nil {
		i.logger.Info("unpaid reservation released", "appointment_id", appointmentID)
		return OutcomeReleased
	}
	if salonapi.IsAppointmentNotUnpaid(err) {
		i.logger.Info("reservation already processed, nothing to release",
			"appointment_id", appointmentID)
		return OutcomeAlreadyProcessed
	}

	i.logger.Error("cancel unpaid reservation failed",
		"appointment_id", appointmentID, "error", err)
	return OutcomeFailed
}
