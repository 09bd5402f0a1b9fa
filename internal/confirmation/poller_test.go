package confirmation

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/maisonbelle/storefront/internal/salonapi"
	"github.com/maisonbelle/storefront/pkg/logging"
)

type fakeAPI struct {
	mu           sync.Mutex
	fetchCalls   int
	confirmCalls int
	statuses     []string // consumed per fetch; last entry repeats
	fetchErr     error
	appt         salonapi.Appointment
}

func (f *fakeAPI) Appointment(_ context.Context, id string) (*salonapi.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetchCalls++
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	status := salonapi.StatusReservedUnpaid
	if len(f.statuses) > 0 {
		status = f.statuses[0]
		if len(f.statuses) > 1 {
			f.statuses = f.statuses[1:]
		}
	}
	appt := f.appt
	appt.ID = id
	appt.Status = status
	return &appt, nil
}

func (f *fakeAPI) ConfirmCheckout(_ context.Context, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.confirmCalls++
	return nil
}

func (f *fakeAPI) counts() (fetches, confirms int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fetchCalls, f.confirmCalls
}

// fakeAfter records requested delays and fires immediately.
type fakeAfter struct {
	mu     sync.Mutex
	delays []time.Duration
}

func (f *fakeAfter) after(d time.Duration) <-chan time.Time {
	f.mu.Lock()
	f.delays = append(f.delays, d)
	f.mu.Unlock()
	ch := make(chan time.Time, 1)
	ch <- time.Time{}
	return ch
}

func TestPoller_RetrySchedule_TenAttemptsThenParksPending(t *testing.T) {
	api := &fakeAPI{} // never confirms
	ticks := &fakeAfter{}
	p := NewPoller(api, logging.Default()).WithAfterFunc(ticks.after)

	p.Run(context.Background(), "a1", "cs_1")

	fetches, confirms := api.counts()
	if fetches != 10 {
		t.Fatalf("fetches = %d, want exactly 10", fetches)
	}
	if confirms != 1 {
		t.Fatalf("confirm pings = %d, want exactly 1", confirms)
	}

	want := []time.Duration{
		1 * time.Second, 2 * time.Second, 3 * time.Second,
		4 * time.Second, 5 * time.Second, 6 * time.Second,
		7 * time.Second, 8 * time.Second, 9 * time.Second,
	}
	if len(ticks.delays) != len(want) {
		t.Fatalf("delays = %v, want 9 entries", ticks.delays)
	}
	for i, d := range want {
		if ticks.delays[i] != d {
			t.Fatalf("delay[%d] = %v, want %v", i, ticks.delays[i], d)
		}
	}

	snap := p.Snapshot()
	if snap.State != StatePending {
		t.Fatalf("state = %s, want pending (never escalated to error)", snap.State)
	}
	if snap.Attempts != 10 {
		t.Fatalf("attempts = %d, want 10", snap.Attempts)
	}
}

func TestPoller_ConfirmPingSkippedWithoutSession(t *testing.T) {
	api := &fakeAPI{statuses: []string{salonapi.StatusConfirmed}}
	p := NewPoller(api, logging.Default())

	p.Run(context.Background(), "a1", "")

	if _, confirms := api.counts(); confirms != 0 {
		t.Fatalf("confirm pings = %d, want 0 without a session id", confirms)
	}
	if p.Snapshot().State != StateConfirmed {
		t.Fatalf("state = %s", p.Snapshot().State)
	}
}

func TestPoller_FetchErrorIsTerminalAfterOneCall(t *testing.T) {
	api := &fakeAPI{fetchErr: errors.New("lookup failed")}
	ticks := &fakeAfter{}
	p := NewPoller(api, logging.Default()).WithAfterFunc(ticks.after)

	p.Run(context.Background(), "a1", "")

	fetches, _ := api.counts()
	if fetches != 1 {
		t.Fatalf("fetches = %d, want 1 (no retries on error)", fetches)
	}
	if p.Snapshot().State != StateError {
		t.Fatalf("state = %s, want error", p.Snapshot().State)
	}
	if len(ticks.delays) != 0 {
		t.Fatalf("delays = %v, want none", ticks.delays)
	}
}

func TestPoller_MissingAppointmentID(t *testing.T) {
	api := &fakeAPI{}
	p := NewPoller(api, logging.Default())

	p.Run(context.Background(), "", "cs_1")

	fetches, confirms := api.counts()
	if fetches != 0 || confirms != 0 {
		t.Fatalf("network calls = %d/%d, want none", fetches, confirms)
	}
	if p.Snapshot().State != StateError {
		t.Fatalf("state = %s, want error", p.Snapshot().State)
	}
}

func TestPoller_ConfirmedOnSecondAttempt_DepositBreakdown(t *testing.T) {
	api := &fakeAPI{
		statuses: []string{salonapi.StatusReservedUnpaid, salonapi.StatusConfirmed},
		appt: salonapi.Appointment{
			ServiceName:      "Lashes",
			Price:            100,
			Mode:             "deposit",
			AmountTotalPence: 5050,
		},
	}
	ticks := &fakeAfter{}
	p := NewPoller(api, logging.Default()).WithAfterFunc(ticks.after)

	p.Run(context.Background(), "a1", "cs_1")

	fetches, confirms := api.counts()
	if fetches != 2 {
		t.Fatalf("fetches = %d, want 2", fetches)
	}
	if confirms != 1 {
		t.Fatalf("confirm pings = %d, want 1", confirms)
	}
	if len(ticks.delays) != 1 || ticks.delays[0] != time.Second {
		t.Fatalf("delays = %v, want [1s]", ticks.delays)
	}

	snap := p.Snapshot()
	if snap.State != StateConfirmed {
		t.Fatalf("state = %s", snap.State)
	}
	if snap.Deposit == nil {
		t.Fatal("deposit breakdown missing")
	}
	// amountTotal 5050p less the 50p booking fee leaves a 5000p deposit;
	// a £100 service leaves £50.00 due at the salon.
	if snap.Deposit.DepositPence != 5000 {
		t.Fatalf("deposit = %d, want 5000", snap.Deposit.DepositPence)
	}
	if snap.Deposit.RemainingPence != 5000 {
		t.Fatalf("remaining = %d, want 5000", snap.Deposit.RemainingPence)
	}
}

func TestPoller_NoDepositBreakdownForPayNow(t *testing.T) {
	api := &fakeAPI{
		statuses: []string{salonapi.StatusConfirmed},
		appt:     salonapi.Appointment{Price: 100, Mode: "pay_now", AmountTotalPence: 10050},
	}
	p := NewPoller(api, logging.Default())

	p.Run(context.Background(), "a1", "")

	if p.Snapshot().Deposit != nil {
		t.Fatal("pay_now must not carry a deposit breakdown")
	}
}

func TestPoller_CancellationStopsTimersAndUpdates(t *testing.T) {
	api := &fakeAPI{}
	ctx, cancel := context.WithCancel(context.Background())

	// Timer that never fires: cancellation must win the select.
	never := func(time.Duration) <-chan time.Time { return make(chan time.Time) }
	p := NewPoller(api, logging.Default()).WithAfterFunc(never)

	go p.Run(ctx, "a1", "")

	// First fetch reports pending, then the poller parks on its retry timer.
	deadline := time.After(2 * time.Second)
	for p.Snapshot().State != StatePending {
		select {
		case <-deadline:
			t.Fatal("poller never reached pending")
		case <-time.After(time.Millisecond):
		}
	}

	cancel()
	select {
	case <-p.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("poller did not stop after cancellation")
	}

	fetches, _ := api.counts()
	if fetches != 1 {
		t.Fatalf("fetches = %d, want 1 (no calls after teardown)", fetches)
	}
	snap := p.Snapshot()
	if snap.State != StatePending || snap.Attempts != 1 {
		t.Fatalf("snapshot mutated after teardown: %+v", snap)
	}
}

func TestTracker_ReusesLivePollerPerAppointment(t *testing.T) {
	api := &fakeAPI{statuses: []string{salonapi.StatusConfirmed}}
	tr := NewTracker(api, logging.Default())
	defer tr.Shutdown()

	p1 := tr.Start("a1", "cs_1")
	p2 := tr.Start("a1", "") // refresh: same sequence, no second launch

	if p1 != p2 {
		t.Fatal("tracker must reuse the live poller for an appointment")
	}

	select {
	case <-p1.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("poller did not finish")
	}

	if _, confirms := api.counts(); confirms != 1 {
		t.Fatalf("confirm pings = %d, want 1 across refreshes", confirms)
	}
	if got, ok := tr.Get("a1"); !ok || got != p1 {
		t.Fatal("Get should return the tracked poller")
	}
}
