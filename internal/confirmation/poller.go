// Package confirmation reconciles local state with the backend after the
// payment provider redirects the browser back. Confirmation is driven by an
// asynchronous payment webhook that may race the redirect, so the appointment
// is polled until it reads confirmed or the attempt budget is spent.
package confirmation

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/maisonbelle/storefront/internal/booking"
	"github.com/maisonbelle/storefront/internal/salonapi"
	"github.com/maisonbelle/storefront/pkg/logging"
)

var confirmTracer = otel.Tracer("storefront.internal.confirmation")

// State of the confirmation flow. Confirmed and Error are terminal; Pending
// is retried until the attempt budget is spent and then parks permanently.
type State string

const (
	StateLoading   State = "loading"
	StatePending   State = "pending"
	StateConfirmed State = "confirmed"
	StateError     State = "error"
)

// DepositBreakdown is shown for deposit-mode bookings: what was paid upfront
// and what remains due at the salon.
type DepositBreakdown struct {
	DepositPence   int `json:"depositPence"`
	FeePence       int `json:"feePence"`
	RemainingPence int `json:"remainingPence"`
}

// Snapshot is a point-in-time view of the poll sequence.
type Snapshot struct {
	State       State                 `json:"state"`
	Attempts    int                   `json:"attempts"`
	Appointment *salonapi.Appointment `json:"appointment,omitempty"`
	Deposit     *DepositBreakdown     `json:"deposit,omitempty"`
}

// AppointmentSource is the slice of the salon API the poller needs.
type AppointmentSource interface {
	Appointment(ctx context.Context, id string) (*salonapi.Appointment, error)
	ConfirmCheckout(ctx context.Context, sessionID string) error
}

// Poller drives one appointment's confirmation sequence. Retries are strictly
// sequential: a new fetch is not issued until the previous result has been
// processed and the retry delay has elapsed.
type Poller struct {
	api             AppointmentSource
	logger          *logging.Logger
	maxAttempts     int
	retryStep       time.Duration
	bookingFeePence int
	after           func(time.Duration) <-chan time.Time

	mu   sync.RWMutex
	snap Snapshot
	done chan struct{}
}

// NewPoller constructs a poller for one return-from-payment visit.
func NewPoller(api AppointmentSource, logger *logging.Logger) *Poller {
	if logger == nil {
		logger = logging.Default()
	}
	return &Poller{
		api:             api,
		logger:          logger.Component("confirmation"),
		maxAttempts:     10,
		retryStep:       time.Second,
		bookingFeePence: 50,
		after:           time.After,
		snap:            Snapshot{State: StateLoading},
		done:            make(chan struct{}),
	}
}

// WithMaxAttempts overrides the retry budget.
func (p *Poller) WithMaxAttempts(n int) *Poller {
	if n > 0 {
		p.maxAttempts = n
	}
	return p
}

// WithRetryStep overrides the base delay unit (attempt n waits n*step).
func (p *Poller) WithRetryStep(d time.Duration) *Poller {
	if d > 0 {
		p.retryStep = d
	}
	return p
}

// WithBookingFee overrides the fixed booking fee used in the deposit breakdown.
func (p *Poller) WithBookingFee(pence int) *Poller {
	if pence >= 0 {
		p.bookingFeePence = pence
	}
	return p
}

// WithAfterFunc replaces the retry timer. Tests inject a fake to advance
// time deterministically.
func (p *Poller) WithAfterFunc(after func(time.Duration) <-chan time.Time) *Poller {
	if after != nil {
		p.after = after
	}
	return p
}

// Snapshot returns the current state.
func (p *Poller) Snapshot() Snapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.snap
}

// Done is closed when the poll sequence has finished: terminal state reached,
// budget spent, or context cancelled.
func (p *Poller) Done() <-chan struct{} {
	return p.done
}

// Run executes the poll sequence and blocks until it finishes. Cancelling ctx
// tears the sequence down: pending timers stop and no further state updates
// are made.
func (p *Poller) Run(ctx context.Context, appointmentID, sessionID string) {
	defer close(p.done)

	ctx, span := confirmTracer.Start(ctx, "confirmation.poll")
	defer span.End()
	span.SetAttributes(attribute.String("storefront.appointment_id", appointmentID))

	if appointmentID == "" {
		p.setState(func(s *Snapshot) { s.State = StateError })
		p.logger.Warn("confirmation started without an appointment id")
		return
	}

	// Best-effort explicit confirm, first attempt only. The payment webhook
	// does the same job server-side, so failures here are swallowed.
	if sessionID != "" {
		if err := p.api.ConfirmCheckout(ctx, sessionID); err != nil {
			p.logger.Debug("confirm ping failed", "session_id", sessionID, "error", err)
		}
	}

	attempts := 0
	for {
		appt, err := p.api.Appointment(ctx, appointmentID)
		if ctx.Err() != nil {
			return
		}
		if err != nil {
			span.RecordError(err)
			p.setState(func(s *Snapshot) { s.State = StateError })
			p.logger.Error("appointment lookup failed", "appointment_id", appointmentID, "error", err)
			return
		}

		if appt.Status == salonapi.StatusConfirmed {
			deposit := p.depositBreakdown(appt)
			p.setState(func(s *Snapshot) {
				s.State = StateConfirmed
				s.Appointment = appt
				s.Deposit = deposit
			})
			p.logger.Info("booking confirmed",
				"appointment_id", appointmentID, "attempts", attempts+1)
			return
		}

		attempts++
		p.setState(func(s *Snapshot) {
			s.State = StatePending
			s.Attempts = attempts
		})
		if attempts >= p.maxAttempts {
			// Payment was received; the webhook is still catching up. Stay
			// pending rather than alarming the user with an error.
			p.logger.Warn("confirmation still pending after final attempt",
				"appointment_id", appointmentID, "attempts", attempts)
			return
		}

		select {
		case <-ctx.Done():
			return
		case <-p.after(time.Duration(attempts) * p.retryStep):
		}
	}
}

func (p *Poller) depositBreakdown(appt *salonapi.Appointment) *DepositBreakdown {
	if appt.Mode != string(booking.ModeDeposit) || appt.AmountTotalPence <= 0 {
		return nil
	}
	deposit := appt.AmountTotalPence - p.bookingFeePence
	if deposit < 0 {
		deposit = 0
	}
	remaining := int(appt.Price*100) - deposit
	if remaining < 0 {
		remaining = 0
	}
	return &DepositBreakdown{
		DepositPence:   deposit,
		FeePence:       p.bookingFeePence,
		RemainingPence: remaining,
	}
}

// setState applies fn under the lock, never downgrading a terminal state.
func (p *Poller) setState(fn func(*Snapshot)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.snap.State == StateConfirmed || p.snap.State == StateError {
		return
	}
	fn(&p.snap)
}
