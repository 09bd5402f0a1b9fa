package checkout

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/maisonbelle/storefront/internal/booking"
	"github.com/maisonbelle/storefront/internal/salonapi"
	"github.com/maisonbelle/storefront/pkg/logging"
)

type fakeSubmitter struct {
	mu           sync.Mutex
	apptCalls    int
	sessionCalls int
	lastAppt     salonapi.AppointmentRequest
	lastSession  salonapi.CheckoutSessionRequest
	apptErr      error
	sessionErr   error
	sessionURL   string
	started      chan struct{} // closed when CreateAppointment is entered
	block        chan struct{} // when set, CreateAppointment blocks until closed
}

func (f *fakeSubmitter) CreateAppointment(_ context.Context, req salonapi.AppointmentRequest) (*salonapi.AppointmentResponse, error) {
	f.mu.Lock()
	f.apptCalls++
	f.lastAppt = req
	started, block := f.started, f.block
	f.mu.Unlock()
	if started != nil {
		close(started)
	}
	if block != nil {
		<-block
	}
	if f.apptErr != nil {
		return nil, f.apptErr
	}
	return &salonapi.AppointmentResponse{AppointmentID: "a1", Status: salonapi.StatusReservedUnpaid}, nil
}

func (f *fakeSubmitter) CreateCheckoutSession(_ context.Context, req salonapi.CheckoutSessionRequest) (*salonapi.CheckoutSessionResponse, error) {
	f.mu.Lock()
	f.sessionCalls++
	f.lastSession = req
	f.mu.Unlock()
	if f.sessionErr != nil {
		return nil, f.sessionErr
	}
	return &salonapi.CheckoutSessionResponse{URL: f.sessionURL, AppointmentID: "a1", SessionID: "cs_1"}, nil
}

func completeDraft() booking.Draft {
	return booking.Draft{
		ServiceID:    "s1",
		VariantName:  "classic",
		BeauticianID: "b1",
		Date:         "2024-06-01",
		StartISO:     "2024-06-01T10:00:00Z",
		Client:       salonapi.ClientInfo{Name: "Ada", Email: "ada@example.com"},
		Price:        100,
	}
}

func TestSubmit_PayInSalon_NeverRedirects(t *testing.T) {
	api := &fakeSubmitter{}
	o := NewOrchestrator(api, logging.Default())

	res, err := o.Submit(context.Background(), completeDraft(), booking.ModePayInSalon)
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if res.Kind != KindReserved || res.RedirectURL != "" {
		t.Fatalf("result = %+v, want reserved with no redirect", res)
	}
	if api.sessionCalls != 0 {
		t.Fatalf("sessionCalls = %d, want 0", api.sessionCalls)
	}
	if api.lastAppt.BeauticianID != "b1" || api.lastAppt.Any {
		t.Fatalf("request = %+v, want beautician b1 with any=false", api.lastAppt)
	}
}

func TestSubmit_PaymentModes_RedirectWhenURLPresent(t *testing.T) {
	for _, mode := range []booking.PaymentMode{booking.ModePayNow, booking.ModeDeposit} {
		api := &fakeSubmitter{sessionURL: "https://pay.example/cs_1"}
		o := NewOrchestrator(api, logging.Default())

		res, err := o.Submit(context.Background(), completeDraft(), mode)
		if err != nil {
			t.Fatalf("mode %s: Submit() error = %v", mode, err)
		}
		if res.Kind != KindRedirect || res.RedirectURL != "https://pay.example/cs_1" {
			t.Fatalf("mode %s: result = %+v", mode, res)
		}
		if api.apptCalls != 0 {
			t.Fatalf("mode %s: reservation endpoint called", mode)
		}
		if api.lastSession.Mode != string(mode) {
			t.Fatalf("mode %s: session mode = %s", mode, api.lastSession.Mode)
		}
	}
}

func TestSubmit_OmitsBeauticianWhenAny(t *testing.T) {
	api := &fakeSubmitter{}
	o := NewOrchestrator(api, logging.Default())

	draft := completeDraft()
	draft.Any = true
	draft.BeauticianID = "b1" // stale id must not leak into the request

	if _, err := o.Submit(context.Background(), draft, booking.ModePayInSalon); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if api.lastAppt.BeauticianID != "" || !api.lastAppt.Any {
		t.Fatalf("request = %+v, want any=true with no beautician id", api.lastAppt)
	}
}

func TestSubmit_IncompleteDraftRejectedWithoutNetwork(t *testing.T) {
	api := &fakeSubmitter{}
	o := NewOrchestrator(api, logging.Default())

	draft := completeDraft()
	draft.StartISO = ""

	_, err := o.Submit(context.Background(), draft, booking.ModePayInSalon)
	if !errors.Is(err, ErrDraftIncomplete) {
		t.Fatalf("err = %v, want ErrDraftIncomplete", err)
	}
	if api.apptCalls != 0 || api.sessionCalls != 0 {
		t.Fatal("no network call expected for an incomplete draft")
	}
}

func TestSubmit_ErrorPropagatesUnchanged(t *testing.T) {
	boom := errors.New("slot taken")
	api := &fakeSubmitter{apptErr: boom}
	o := NewOrchestrator(api, logging.Default())

	_, err := o.Submit(context.Background(), completeDraft(), booking.ModePayInSalon)
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want the backend error", err)
	}
	if o.Busy() {
		t.Fatal("busy flag must clear after a failed submission")
	}
}

func TestSubmit_SingleFlight(t *testing.T) {
	api := &fakeSubmitter{started: make(chan struct{}), block: make(chan struct{})}
	o := NewOrchestrator(api, logging.Default())

	done := make(chan error, 1)
	go func() {
		_, err := o.Submit(context.Background(), completeDraft(), booking.ModePayInSalon)
		done <- err
	}()

	// Wait until the first submission is inside the API call.
	<-api.started

	_, err := o.Submit(context.Background(), completeDraft(), booking.ModePayInSalon)
	if !errors.Is(err, ErrSubmissionInFlight) {
		t.Fatalf("err = %v, want ErrSubmissionInFlight", err)
	}

	close(api.block)
	if err := <-done; err != nil {
		t.Fatalf("first submission error = %v", err)
	}
	if o.Busy() {
		t.Fatal("busy flag must clear after completion")
	}
}

func TestSubmit_InvalidMode(t *testing.T) {
	o := NewOrchestrator(&fakeSubmitter{}, logging.Default())
	_, err := o.Submit(context.Background(), completeDraft(), booking.PaymentMode("cash"))
	if !errors.Is(err, ErrInvalidMode) {
		t.Fatalf("err = %v, want ErrInvalidMode", err)
	}
}
