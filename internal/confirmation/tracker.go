package confirmation

import (
	"context"
	"sync"
	"time"

	"github.com/maisonbelle/storefront/pkg/logging"
)

// Tracker keeps at most one live poller per appointment so the confirmation
// endpoint is idempotent across browser refreshes. Shutdown tears all pollers
// down together.
type Tracker struct {
	api             AppointmentSource
	logger          *logging.Logger
	maxAttempts     int
	retryStep       time.Duration
	bookingFeePence int

	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	pollers map[string]*Poller
}

// NewTracker constructs a tracker.
func NewTracker(api AppointmentSource, logger *logging.Logger) *Tracker {
	if logger == nil {
		logger = logging.Default()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Tracker{
		api:             api,
		logger:          logger,
		maxAttempts:     10,
		retryStep:       time.Second,
		bookingFeePence: 50,
		ctx:             ctx,
		cancel:          cancel,
		pollers:         make(map[string]*Poller),
	}
}

// WithMaxAttempts overrides the retry budget for new pollers.
func (t *Tracker) WithMaxAttempts(n int) *Tracker {
	if n > 0 {
		t.maxAttempts = n
	}
	return t
}

// WithRetryStep overrides the base retry delay for new pollers.
func (t *Tracker) WithRetryStep(d time.Duration) *Tracker {
	if d > 0 {
		t.retryStep = d
	}
	return t
}

// WithBookingFee overrides the fixed booking fee for new pollers.
func (t *Tracker) WithBookingFee(pence int) *Tracker {
	if pence >= 0 {
		t.bookingFeePence = pence
	}
	return t
}

// Start returns the poller for an appointment, launching one on first sight.
// The sessionID only matters for the launch; refreshes reuse the live poller.
func (t *Tracker) Start(appointmentID, sessionID string) *Poller {
	t.mu.Lock()
	defer t.mu.Unlock()

	if p, ok := t.pollers[appointmentID]; ok {
		return p
	}

	p := NewPoller(t.api, t.logger).
		WithMaxAttempts(t.maxAttempts).
		WithRetryStep(t.retryStep).
		WithBookingFee(t.bookingFeePence)
	t.pollers[appointmentID] = p

	go p.Run(t.ctx, appointmentID, sessionID)
	return p
}

// Get returns a live poller without starting one.
func (t *Tracker) Get(appointmentID string) (*Poller, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	p, ok := t.pollers[appointmentID]
	return p, ok
}

// Shutdown cancels every live poll sequence.
func (t *Tracker) Shutdown() {
	t.cancel()
}
