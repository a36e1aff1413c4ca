package order

import (
	"context"
	"errors"
	"fmt"

	"github.com/hazyhaar/vitrine/theme"
)

// Step identifies one stage of the checkout.
type Step string

const (
	StepCustomer Step = "customer"
	StepDelivery Step = "delivery"
	StepPayment  Step = "payment"
)

// ErrTerminal is returned when an operation is attempted after the flow
// reached its one-way payment state.
var ErrTerminal = errors.New("order: flow is terminal")

// StepsFor computes the active step sequence. Digital carts skip the
// delivery step entirely — it is absent from the sequence, not hidden.
// Automatic navigation collects nothing: the payment action is the whole
// flow, regardless of product type.
func StepsFor(pt ProductType, nav theme.Navigation) []Step {
	if nav == theme.NavAutomatic {
		return []Step{StepPayment}
	}
	if pt == Digital {
		return []Step{StepCustomer, StepPayment}
	}
	return []Step{StepCustomer, StepDelivery, StepPayment}
}

// PaymentInitiator is the payment-initiation collaborator: given the final
// order snapshot it returns the opaque payment artifact.
type PaymentInitiator interface {
	Initiate(ctx context.Context, snap Snapshot) (PaymentArtifact, error)
}

// Flow is the step state machine for one cart type + navigation mode pair.
// It holds no mutable state of its own; all methods take and return
// Progression snapshots.
type Flow struct {
	steps []Step
	nav   theme.Navigation
}

// NewFlow builds the controller for the given product type and navigation
// mode.
func NewFlow(pt ProductType, nav theme.Navigation) *Flow {
	return &Flow{steps: StepsFor(pt, nav), nav: nav}
}

// Steps returns the active step sequence.
func (f *Flow) Steps() []Step { return f.steps }

// Len returns the number of steps.
func (f *Flow) Len() int { return len(f.steps) }

// Navigation returns the mode the flow was built for.
func (f *Flow) Navigation() theme.Navigation { return f.nav }

// Current returns the active step, clamping a cursor that exceeds the
// sequence (which can happen when the navigation mode shrank mid-session).
func (f *Flow) Current(p Progression) Step {
	return f.steps[f.clamp(p.Step)]
}

func (f *Flow) clamp(i int) int {
	if i < 0 {
		return 0
	}
	if i >= len(f.steps) {
		return len(f.steps) - 1
	}
	return i
}

// ShippingSelectable reports whether the shipping options may be offered:
// only once a valid postal code resolved via the lookup collaborator.
// Until then the shipping section renders a placeholder, not an error.
func (f *Flow) ShippingSelectable(p Progression) bool {
	return p.Address.Resolved
}

// Gate evaluates the validation predicate of the current step. An empty
// result means the step may be exited.
func (f *Flow) Gate(p Progression) []FieldError {
	switch f.Current(p) {
	case StepCustomer:
		return ValidateCustomer(p.Customer)
	case StepDelivery:
		errs := ValidateAddress(p.Address)
		if !p.Address.Resolved {
			errs = append(errs, FieldError{Field: "postalCode", Reason: "awaiting postal lookup"})
		}
		if p.Cart.Shipping == nil {
			errs = append(errs, FieldError{Field: "shipping", Reason: "choose a shipping option"})
		}
		return errs
	default:
		return nil
	}
}

// Advance moves to the next step when the current step's gate is open.
// The controller never advances past an unmet gate; failures come back
// field-local. Advancing from the last step is a no-op. In single-page
// navigation the same rule applies — advancing reveals the next section
// while earlier sections stay editable, which is a view concern; the
// cursor semantics are identical.
func (f *Flow) Advance(p Progression) (Progression, []FieldError) {
	if p.Terminal() {
		return p, nil
	}
	cur := f.clamp(p.Step)
	if cur >= len(f.steps)-1 {
		return p, nil
	}
	if errs := f.Gate(p); len(errs) > 0 {
		return p, errs
	}
	p.Step = cur + 1
	return p, nil
}

// Retreat moves back one step. Always permitted above the first step and
// never below it. The terminal state has no way back.
func (f *Flow) Retreat(p Progression) Progression {
	if p.Terminal() {
		return p
	}
	cur := f.clamp(p.Step)
	if cur > 0 {
		p.Step = cur - 1
	} else {
		p.Step = 0
	}
	return p
}

// GeneratePayment is the terminal transition: it checks every gate in the
// sequence (none in automatic mode), captures the current totals, and
// records the artifact returned by the collaborator. One-way — invoking it
// on a terminal progression returns ErrTerminal.
func (f *Flow) GeneratePayment(ctx context.Context, p Progression, init PaymentInitiator) (Progression, error) {
	if p.Terminal() {
		return p, ErrTerminal
	}

	if f.nav != theme.NavAutomatic {
		for i := range f.steps[:len(f.steps)-1] {
			probe := p
			probe.Step = i
			if errs := f.Gate(probe); len(errs) > 0 {
				return p, fmt.Errorf("order: step %s gate: %w", f.steps[i], errs[0])
			}
		}
	}

	snap := Snapshot{
		Cart:       p.Cart,
		Customer:   p.Customer,
		Address:    p.Address,
		TotalCents: p.TotalCents(),
	}
	artifact, err := init.Initiate(ctx, snap)
	if err != nil {
		return p, fmt.Errorf("order: initiate payment: %w", err)
	}
	return p.WithPayment(artifact), nil
}
