// Package salonapi contains the REST client for the external salon booking
// and payment backend.
package salonapi

import "time"

// ServiceVariant is one bookable variant of a service (e.g. "classic" lashes).
type ServiceVariant struct {
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	DurationMin int     `json:"durationMin,omitempty"`
}

// Service represents a bookable salon service.
type Service struct {
	ID       string           `json:"id"`
	Name     string           `json:"name"`
	Category string           `json:"category,omitempty"`
	Variants []ServiceVariant `json:"variants"`
	Active   bool             `json:"active"`
}

// Beautician represents a staff member who performs services.
type Beautician struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Title    string   `json:"title,omitempty"`
	Services []string `json:"services,omitempty"`
	Active   bool     `json:"active"`
}

// ProductVariant is a purchasable variant of a retail product.
type ProductVariant struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Stock int     `json:"stock,omitempty"`
}

// Product represents a retail product in the shop catalog.
type Product struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Brand     string           `json:"brand,omitempty"`
	Category  string           `json:"category,omitempty"`
	ImageURL  string           `json:"imageUrl,omitempty"`
	Variants  []ProductVariant `json:"variants"`
	CreatedAt time.Time        `json:"createdAt,omitempty"`
}

// Slot is a single bookable start time for one day's availability query.
type Slot struct {
	StartISO string `json:"startISO"`
}

// SlotQuery identifies one day's availability for a service variant.
// Exactly one of BeauticianID or Any should be meaningful; Any wins.
type SlotQuery struct {
	ServiceID    string
	VariantName  string
	Date         string // calendar date, "2006-01-02"
	BeauticianID string
	Any          bool
}

// ClientInfo carries the contact details entered at checkout.
type ClientInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
	Notes string `json:"notes,omitempty"`
}

// AppointmentRequest creates an unpaid reservation.
// BeauticianID is omitted when Any is set.
type AppointmentRequest struct {
	ServiceID    string     `json:"serviceId"`
	VariantName  string     `json:"variantName"`
	BeauticianID string     `json:"beauticianId,omitempty"`
	Any          bool       `json:"any"`
	StartISO     string     `json:"startISO"`
	Client       ClientInfo `json:"client"`
}

// AppointmentResponse contains reservation creation results.
type AppointmentResponse struct {
	AppointmentID string `json:"appointmentId"`
	Status        string `json:"status,omitempty"`
}

// CheckoutSessionRequest creates a payment session for pay-now or deposit mode.
type CheckoutSessionRequest struct {
	AppointmentRequest
	Mode string `json:"mode"`
}

// CheckoutSessionResponse carries the payment-provider redirect URL.
type CheckoutSessionResponse struct {
	URL           string `json:"url"`
	AppointmentID string `json:"appointmentId,omitempty"`
	SessionID     string `json:"sessionId,omitempty"`
}

// Appointment statuses owned by the backend.
const (
	StatusReservedUnpaid         = "reserved_unpaid"
	StatusConfirmed              = "confirmed"
	StatusCancelledFullRefund    = "cancelled_full_refund"
	StatusCancelledPartialRefund = "cancelled_partial_refund"
	StatusCancelledNoRefund      = "cancelled_no_refund"
	StatusNoShow                 = "no_show"
	StatusCompleted              = "completed"
)

// Appointment is the server-owned booking record.
type Appointment struct {
	ID               string     `json:"id"`
	Status           string     `json:"status"`
	ServiceID        string     `json:"serviceId"`
	ServiceName      string     `json:"serviceName,omitempty"`
	VariantName      string     `json:"variantName,omitempty"`
	BeauticianName   string     `json:"beauticianName,omitempty"`
	StartISO         string     `json:"startISO"`
	Price            float64    `json:"price"`
	Mode             string     `json:"mode,omitempty"`
	AmountTotalPence int        `json:"amountTotalPence,omitempty"`
	Client           ClientInfo `json:"client,omitempty"`
}

// Order is a past retail purchase shown on the profile orders tab.
type Order struct {
	ID        string      `json:"id"`
	Status    string      `json:"status"`
	Total     float64     `json:"total"`
	CreatedAt time.Time   `json:"createdAt"`
	Items     []OrderItem `json:"items"`
}

// OrderItem is one line of an order.
type OrderItem struct {
	ProductID   string  `json:"productId"`
	VariantID   string  `json:"variantId"`
	ProductName string  `json:"productName"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
}
