package salonapi

import (
	"errors"
	"fmt"
	"strings"
)

// Error codes the backend is known to emit. CodeAppointmentNotUnpaid marks the
// cancel-after-payment race: the reservation was already paid or confirmed by
// the payment webhook before the delete arrived.
const (
	CodeAppointmentNotUnpaid = "appointment_not_unpaid"
)

// APIError is a structured non-2xx response from the salon backend.
type APIError struct {
	StatusCode int    `json:"-"`
	Code       string `json:"code,omitempty"`
	Message    string `json:"error,omitempty"`
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("salon api: %d %s: %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("salon api: %d: %s", e.StatusCode, e.Message)
}

// IsAppointmentNotUnpaid reports whether err means the appointment could not
// be cancelled because it is no longer an unpaid reservation. Older backend
// builds lack the structured code and only say "unpaid" in the message, so a
// substring fallback is kept until they are retired.
func IsAppointmentNotUnpaid(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	if apiErr.Code == CodeAppointmentNotUnpaid {
		return true
	}
	return strings.Contains(strings.ToLower(apiErr.Message), "unpaid")
}
