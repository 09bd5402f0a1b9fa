package cancellation

import (
	"context"
	"errors"
	"testing"

	"github.com/maisonbelle/storefront/internal/salonapi"
	"github.com/maisonbelle/storefront/pkg/logging"
)

type fakeCanceller struct {
	calls int
	err   error
}

func (f *fakeCanceller) CancelUnpaidAppointment(_ context.Context, _ string) error {
	f.calls++
	return f.err
}

func TestCancelUnpaid_Released(t *testing.T) {
	api := &fakeCanceller{}
	i := NewInitiator(api, logging.Default())

	if got := i.CancelUnpaid(context.Background(), "a1"); got != OutcomeReleased {
		t.Fatalf("outcome = %s, want released", got)
	}
	if api.calls != 1 {
		t.Fatalf("calls = %d", api.calls)
	}
}

func TestCancelUnpaid_MissingIDIsNoOp(t *testing.T) {
	api := &fakeCanceller{}
	i := NewInitiator(api, logging.Default())

	if got := i.CancelUnpaid(context.Background(), ""); got != OutcomeNothingToCancel {
		t.Fatalf("outcome = %s, want nothing_to_cancel", got)
	}
	if api.calls != 0 {
		t.Fatalf("calls = %d, want 0", api.calls)
	}
}

func TestCancelUnpaid_AlreadyProcessedRace(t *testing.T) {
	cases := []error{
		&salonapi.APIError{StatusCode: 409, Code: salonapi.CodeAppointmentNotUnpaid, Message: "appointment is not unpaid"},
		&salonapi.APIError{StatusCode: 400, Message: "appointment no longer unpaid"},
	}
	for _, apiErr := range cases {
		api := &fakeCanceller{err: apiErr}
		i := NewInitiator(api, logging.Default())

		if got := i.CancelUnpaid(context.Background(), "a1"); got != OutcomeAlreadyProcessed {
			t.Fatalf("err %v: outcome = %s, want already_processed", apiErr, got)
		}
	}
}

func TestCancelUnpaid_OtherFailuresSwallowed(t *testing.T) {
	api := &fakeCanceller{err: errors.New("network down")}
	i := NewInitiator(api, logging.Default())

	if got := i.CancelUnpaid(context.Background(), "a1"); got != OutcomeFailed {
		t.Fatalf("outcome = %s, want failed", got)
	}
}
