package order

import (
	"context"
	"errors"
	"testing"

	"github.com/hazyhaar/vitrine/theme"
)

type stubInitiator struct {
	artifact PaymentArtifact
	err      error
	calls    int
	lastSnap Snapshot
}

func (s *stubInitiator) Initiate(_ context.Context, snap Snapshot) (PaymentArtifact, error) {
	s.calls++
	s.lastSnap = snap
	return s.artifact, s.err
}

func validCustomer() Customer {
	return Customer{
		Name:  "Ana Souza",
		Email: "ana@example.com",
		Phone: "11988887777",
		TaxID: "52998224725",
	}
}

func TestStepCounts(t *testing.T) {
	tests := []struct {
		pt   ProductType
		nav  theme.Navigation
		want int
	}{
		{Physical, theme.NavMulti, 3},
		{Physical, theme.NavSingle, 3},
		{Digital, theme.NavMulti, 2},
		{Digital, theme.NavSingle, 2},
		{Physical, theme.NavAutomatic, 1},
		{Digital, theme.NavAutomatic, 1},
	}
	for _, tt := range tests {
		if got := len(StepsFor(tt.pt, tt.nav)); got != tt.want {
			t.Errorf("StepsFor(%s, %s): got %d steps, want %d", tt.pt, tt.nav, got, tt.want)
		}
	}
}

func TestDigitalSequenceSkipsDelivery(t *testing.T) {
	for _, nav := range []theme.Navigation{theme.NavSingle, theme.NavMulti} {
		for _, s := range StepsFor(Digital, nav) {
			if s == StepDelivery {
				t.Errorf("nav %s: delivery step present for digital cart", nav)
			}
		}
	}
}

func TestAdvanceBlockedByCustomerGate(t *testing.T) {
	f := NewFlow(Physical, theme.NavMulti)
	p := New(physicalProduct())

	next, errs := f.Advance(p)
	if len(errs) == 0 {
		t.Fatal("advanced past an unmet customer gate")
	}
	if next.Step != 0 {
		t.Errorf("step moved despite gate: %d", next.Step)
	}

	p = p.WithCustomer(validCustomer())
	next, errs = f.Advance(p)
	if len(errs) != 0 {
		t.Fatalf("valid customer blocked: %v", errs)
	}
	if f.Current(next) != StepDelivery {
		t.Errorf("current: got %s, want %s", f.Current(next), StepDelivery)
	}
}

func TestShippingGate(t *testing.T) {
	// Physical cart: once the postal code resolves, shipping becomes
	// selectable, and the flow does not pass the delivery step until an
	// option is chosen and the address validates.
	f := NewFlow(Physical, theme.NavMulti)
	p := New(physicalProduct()).WithCustomer(validCustomer())
	p, _ = f.Advance(p)

	if f.ShippingSelectable(p) {
		t.Fatal("shipping selectable before postal resolution")
	}

	p = p.WithAddress(Address{PostalCode: "01310-100", Number: "1000"})
	p = p.WithResolvedAddress("01310-100", "Av. Paulista", "Bela Vista", "São Paulo", "SP")

	if !f.ShippingSelectable(p) {
		t.Fatal("shipping not selectable after resolution")
	}

	// Address complete, shipping still missing: gate stays closed.
	if _, errs := f.Advance(p); !fieldSet(errs)["shipping"] {
		t.Fatalf("advanced without shipping: %v", errs)
	}

	p = p.WithShipping(ShippingOption{ID: "sedex", PriceCents: 800})
	next, errs := f.Advance(p)
	if len(errs) != 0 {
		t.Fatalf("delivery gate still closed: %v", errs)
	}
	if f.Current(next) != StepPayment {
		t.Errorf("current: got %s, want %s", f.Current(next), StepPayment)
	}
}

func TestRetreatAlwaysAllowedAboveZero(t *testing.T) {
	f := NewFlow(Physical, theme.NavMulti)
	p := New(physicalProduct())
	p.Step = 2

	p = f.Retreat(p)
	if p.Step != 1 {
		t.Errorf("step: got %d, want 1", p.Step)
	}
	p = f.Retreat(p)
	p = f.Retreat(p)
	if p.Step != 0 {
		t.Errorf("step: got %d, want 0 (floor)", p.Step)
	}
}

func TestCurrentClampsOversizedCursor(t *testing.T) {
	// A session that shrank from multi to automatic keeps its old cursor;
	// the controller must clamp rather than index out of range.
	f := NewFlow(Physical, theme.NavAutomatic)
	p := New(physicalProduct())
	p.Step = 2

	if got := f.Current(p); got != StepPayment {
		t.Errorf("current: got %s, want %s", got, StepPayment)
	}
}

func TestAutomaticSingleAction(t *testing.T) {
	f := NewFlow(Physical, theme.NavAutomatic)
	p := New(physicalProduct())

	if f.Len() != 1 {
		t.Fatalf("automatic flow: got %d steps, want 1", f.Len())
	}

	// No customer data collected; the one action immediately produces the
	// payment artifact.
	stub := &stubInitiator{artifact: PaymentArtifact{ID: "pay_1", ScanCode: "qr", CopyCode: "code"}}
	next, err := f.GeneratePayment(context.Background(), p, stub)
	if err != nil {
		t.Fatalf("GeneratePayment: %v", err)
	}
	if !next.Terminal() {
		t.Fatal("flow not terminal after generation")
	}
	if stub.lastSnap.TotalCents != 5000 {
		t.Errorf("captured total: got %d, want 5000", stub.lastSnap.TotalCents)
	}
}

func TestGeneratePaymentChecksAllGates(t *testing.T) {
	f := NewFlow(Physical, theme.NavMulti)
	p := New(physicalProduct())
	p.Step = 2 // Cursor at payment, but earlier gates unmet.

	stub := &stubInitiator{}
	if _, err := f.GeneratePayment(context.Background(), p, stub); err == nil {
		t.Fatal("generated payment with unmet gates")
	}
	if stub.calls != 0 {
		t.Errorf("collaborator called despite unmet gates: %d", stub.calls)
	}
}

func TestGeneratePaymentTerminalOneWay(t *testing.T) {
	f := NewFlow(Physical, theme.NavAutomatic)
	p := New(physicalProduct())

	stub := &stubInitiator{artifact: PaymentArtifact{ID: "pay_1"}}
	p, err := f.GeneratePayment(context.Background(), p, stub)
	if err != nil {
		t.Fatalf("first generation: %v", err)
	}

	if _, err := f.GeneratePayment(context.Background(), p, stub); !errors.Is(err, ErrTerminal) {
		t.Errorf("second generation: got %v, want ErrTerminal", err)
	}
	if stub.calls != 1 {
		t.Errorf("collaborator calls: got %d, want 1", stub.calls)
	}
}

func TestCollaboratorFailureLeavesFlowOpen(t *testing.T) {
	f := NewFlow(Physical, theme.NavAutomatic)
	p := New(physicalProduct())

	stub := &stubInitiator{err: errors.New("gateway down")}
	next, err := f.GeneratePayment(context.Background(), p, stub)
	if err == nil {
		t.Fatal("expected error")
	}
	if next.Terminal() {
		t.Error("flow terminal after failed initiation")
	}
}
