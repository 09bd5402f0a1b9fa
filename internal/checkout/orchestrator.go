// Package checkout submits a completed booking draft to the salon backend,
// either as an unpaid reservation or as a payment-session request.
package checkout

import (
	"context"
	"errors"
	"sync/atomic"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/maisonbelle/storefront/internal/booking"
	"github.com/maisonbelle/storefront/internal/salonapi"
	"github.com/maisonbelle/storefront/pkg/logging"
)

var checkoutTracer = otel.Tracer("storefront.internal.checkout")

var (
	// ErrDraftIncomplete means the draft is missing a slot or client details.
	ErrDraftIncomplete = errors.New("checkout: draft is not ready for submission")
	// ErrInvalidMode means the payment mode is not one of the supported three.
	ErrInvalidMode = errors.New("checkout: invalid payment mode")
	// ErrSubmissionInFlight means a submission for this draft is still outstanding.
	ErrSubmissionInFlight = errors.New("checkout: a submission is already in flight")
)

// ResultKind says how the submission concluded.
type ResultKind string

const (
	// KindReserved: unpaid reservation created, show the confirmation view.
	KindReserved ResultKind = "reserved"
	// KindRedirect: payment session created, navigate to the provider URL.
	KindRedirect ResultKind = "redirect"
)

// Result is the outcome of a successful submission.
type Result struct {
	Kind          ResultKind `json:"kind"`
	AppointmentID string     `json:"appointmentId,omitempty"`
	RedirectURL   string     `json:"redirectUrl,omitempty"`
}

// Submitter is the slice of the salon API the orchestrator needs.
type Submitter interface {
	CreateAppointment(ctx context.Context, req salonapi.AppointmentRequest) (*salonapi.AppointmentResponse, error)
	CreateCheckoutSession(ctx context.Context, req salonapi.CheckoutSessionRequest) (*salonapi.CheckoutSessionResponse, error)
}

// Orchestrator submits booking drafts. At most one submission may be in
// flight at a time; the busy flag doubles as the UI's resubmission guard.
type Orchestrator struct {
	api    Submitter
	logger *logging.Logger
	busy   atomic.Bool
}

// NewOrchestrator constructs an orchestrator.
func NewOrchestrator(api Submitter, logger *logging.Logger) *Orchestrator {
	if logger == nil {
		logger = logging.Default()
	}
	return &Orchestrator{api: api, logger: logger.Component("checkout")}
}

// Busy reports whether a submission is outstanding.
func (o *Orchestrator) Busy() bool {
	return o.busy.Load()
}

// Submit sends the draft to the backend. For pay_in_salon it creates an
// unpaid reservation and never redirects; for pay_now and deposit it creates
// a payment session and reports the provider URL to navigate to. Errors
// propagate unchanged and the draft is left intact so the user can resubmit.
func (o *Orchestrator) Submit(ctx context.Context, draft booking.Draft, mode booking.PaymentMode) (*Result, error) {
	if !mode.Valid() {
		return nil, ErrInvalidMode
	}
	if !draft.ReadyForCheckout() {
		return nil, ErrDraftIncomplete
	}
	if !o.busy.CompareAndSwap(false, true) {
		return nil, ErrSubmissionInFlight
	}
	defer o.busy.Store(false)

	ctx, span := checkoutTracer.Start(ctx, "checkout.submit")
	defer span.End()
	span.SetAttributes(
		attribute.String("storefront.service_id", draft.ServiceID),
		attribute.String("storefront.mode", string(mode)),
	)

	req := salonapi.AppointmentRequest{
		ServiceID:   draft.ServiceID,
		VariantName: draft.VariantName,
		Any:         draft.Any,
		StartISO:    draft.StartISO,
		Client:      draft.Client,
	}
	if !draft.Any {
		req.BeauticianID = draft.BeauticianID
	}

	if !mode.RequiresPayment() {
		resp, err := o.api.CreateAppointment(ctx, req)
		if err != nil {
			span.RecordError(err)
			o.logger.Error("reservation failed", "service_id", draft.ServiceID, "error", err)
			return nil, err
		}
		o.logger.Info("reservation created",
			"appointment_id", resp.AppointmentID, "start", draft.StartISO)
		return &Result{Kind: KindReserved, AppointmentID: resp.AppointmentID}, nil
	}

	resp, err := o.api.CreateCheckoutSession(ctx, salonapi.CheckoutSessionRequest{
		AppointmentRequest: req,
		Mode:               string(mode),
	})
	if err != nil {
		span.RecordError(err)
		o.logger.Error("payment session failed", "service_id", draft.ServiceID, "mode", mode, "error", err)
		return nil, err
	}

	result := &Result{Kind: KindReserved, AppointmentID: resp.AppointmentID}
	if resp.URL != "" {
		result.Kind = KindRedirect
		result.RedirectURL = resp.URL
	}
	o.logger.Info("payment session created",
		"appointment_id", resp.AppointmentID, "mode", mode, "redirect", resp.URL != "")
	return result, nil
}
