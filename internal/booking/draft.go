// Package booking holds the in-progress booking draft for one client session.
package booking

import (
	"errors"
	"sync"

	"github.com/maisonbelle/storefront/internal/salonapi"
)

// Draft transition errors. Slot selection is gated on the fields the
// availability query needs, so a slot can never be chosen out of order.
var (
	ErrNoService    = errors.New("booking: no service selected")
	ErrNoDate       = errors.New("booking: no date selected")
	ErrSlotNotReady = errors.New("booking: service, variant and date must be chosen before a slot")
)

// PaymentMode selects how the appointment is paid for at submission time.
type PaymentMode string

const (
	ModePayNow     PaymentMode = "pay_now"
	ModeDeposit    PaymentMode = "deposit"
	ModePayInSalon PaymentMode = "pay_in_salon"
)

// Valid reports whether m is one of the three supported modes.
func (m PaymentMode) Valid() bool {
	switch m {
	case ModePayNow, ModeDeposit, ModePayInSalon:
		return true
	}
	return false
}

// RequiresPayment reports whether submitting in this mode goes through the
// payment-session endpoint and a provider redirect.
func (m PaymentMode) RequiresPayment() bool {
	return m == ModePayNow || m == ModeDeposit
}

// Draft is an immutable snapshot of the in-progress booking selection.
type Draft struct {
	ServiceID    string              `json:"serviceId"`
	ServiceName  string              `json:"serviceName,omitempty"`
	VariantName  string              `json:"variantName"`
	BeauticianID string              `json:"beauticianId,omitempty"`
	Any          bool                `json:"any"`
	Date         string              `json:"date,omitempty"` // "2006-01-02"
	StartISO     string              `json:"startISO,omitempty"`
	Client       salonapi.ClientInfo `json:"client"`
	Price        float64             `json:"price"` // display price copied from the chosen variant
}

// ReadyForSlots reports whether the draft identifies a single day's
// availability query. Beautician choice is optional ("any" is the default).
func (d Draft) ReadyForSlots() bool {
	return d.ServiceID != "" && d.VariantName != "" && d.Date != ""
}

// ReadyForCheckout reports whether the draft can be submitted.
func (d Draft) ReadyForCheckout() bool {
	return d.ReadyForSlots() && d.StartISO != "" && d.Client.Name != "" && d.Client.Email != ""
}

// Store owns the draft for one session: single writer, mutation only through
// named transitions. It is injected into the flows that need it rather than
// living as a package global.
type Store struct {
	mu    sync.RWMutex
	draft Draft
}

// NewStore creates an empty draft store.
func NewStore() *Store {
	return &Store{}
}

// SelectService picks a service variant and resets every downstream choice:
// a different service invalidates beautician, date and slot.
func (s *Store) SelectService(serviceID, serviceName, variantName string, price float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft = Draft{
		ServiceID:   serviceID,
		ServiceName: serviceName,
		VariantName: variantName,
		Price:       price,
		Any:         true,
		Client:      s.draft.Client,
	}
}

// SelectBeautician picks a specific beautician, clearing the "any" flag and
// any previously chosen slot.
func (s *Store) SelectBeautician(beauticianID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.draft.ServiceID == "" {
		return ErrNoService
	}
	s.draft.BeauticianID = beauticianID
	s.draft.Any = false
	s.draft.StartISO = ""
	return nil
}

// SelectAnyBeautician matches any available beautician. The stored
// beautician id is dropped so the two selections can never both apply.
func (s *Store) SelectAnyBeautician() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.draft.ServiceID == "" {
		return ErrNoService
	}
	s.draft.BeauticianID = ""
	s.draft.Any = true
	s.draft.StartISO = ""
	return nil
}

// SelectDate scopes the slot query to one calendar day and clears any
// previously chosen slot.
func (s *Store) SelectDate(date string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.draft.ServiceID == "" {
		return ErrNoService
	}
	s.draft.Date = date
	s.draft.StartISO = ""
	return nil
}

// SelectSlot records the chosen start time. Rejected unless service, variant
// and date are already set.
func (s *Store) SelectSlot(startISO string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.draft.ReadyForSlots() {
		return ErrSlotNotReady
	}
	s.draft.StartISO = startISO
	return nil
}

// SetClient records the contact details entered at checkout.
func (s *Store) SetClient(info salonapi.ClientInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.Client = info
}

// Snapshot returns a copy of the current draft.
func (s *Store) Snapshot() Draft {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.draft
}

// Reset clears the draft after a completed booking or explicit abandon.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft = Draft{}
}
