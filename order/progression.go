package order

import "sync"

// Progression is the full checkout session state. It is a value type: every
// mutation produces a new Progression via a With* producer, so readers hold
// immutable snapshots and concurrent-looking updates from different panels
// never share memory.
type Progression struct {
	Cart     Cart
	Customer Customer
	Address  Address
	Step     int
	Payment  *PaymentArtifact
}

// New starts a session for the given product snapshot.
func New(product Product) Progression {
	if product.Quantity <= 0 {
		product.Quantity = 1
	}
	return Progression{Cart: Cart{Product: product}}
}

// TotalCents recomputes the order total from its parts:
// unit price × quantity + Σ(bump price × quantity) + shipping price.
// Never cached — any sequence of add/remove operations cannot drift.
func (p Progression) TotalCents() int64 {
	total := p.Cart.Product.UnitPriceCents * int64(p.Cart.Product.Quantity)
	for _, b := range p.Cart.Bumps {
		total += b.Offer.PriceCents * int64(b.Quantity)
	}
	if p.Cart.Shipping != nil {
		total += p.Cart.Shipping.PriceCents
	}
	return total
}

// WithBump selects an add-on offer. Idempotent: selecting an already
// selected offer returns the progression unchanged.
func (p Progression) WithBump(offer BumpOffer) Progression {
	for _, b := range p.Cart.Bumps {
		if b.Offer.ID == offer.ID {
			return p
		}
	}
	bumps := make([]SelectedBump, len(p.Cart.Bumps), len(p.Cart.Bumps)+1)
	copy(bumps, p.Cart.Bumps)
	p.Cart.Bumps = append(bumps, SelectedBump{Offer: offer, Quantity: 1})
	return p
}

// WithoutBump removes a selected offer by id. Removing an offer that is not
// selected is a no-op.
func (p Progression) WithoutBump(offerID string) Progression {
	idx := -1
	for i, b := range p.Cart.Bumps {
		if b.Offer.ID == offerID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return p
	}
	bumps := make([]SelectedBump, 0, len(p.Cart.Bumps)-1)
	bumps = append(bumps, p.Cart.Bumps[:idx]...)
	bumps = append(bumps, p.Cart.Bumps[idx+1:]...)
	p.Cart.Bumps = bumps
	return p
}

// WithShipping selects a shipping option.
func (p Progression) WithShipping(opt ShippingOption) Progression {
	o := opt
	p.Cart.Shipping = &o
	return p
}

// WithCustomer replaces the customer slice wholesale.
func (p Progression) WithCustomer(c Customer) Progression {
	p.Customer = c
	return p
}

// WithAddress replaces the address slice wholesale. Changing the postal code
// clears the autofilled fields and the resolved flag; shipping becomes
// unreachable again until the new code resolves.
func (p Progression) WithAddress(a Address) Progression {
	if a.PostalCode != p.Address.PostalCode {
		a.Resolved = false
		p.Cart.Shipping = nil
	}
	p.Address = a
	return p
}

// WithResolvedAddress applies a successful postal lookup for code. Manual
// entries in number/complement are kept.
func (p Progression) WithResolvedAddress(code, street, neighborhood, city, state string) Progression {
	if NormalizePostalCode(p.Address.PostalCode) != NormalizePostalCode(code) {
		// A stale lookup for a superseded code. Discard.
		return p
	}
	p.Address.Street = street
	p.Address.Neighborhood = neighborhood
	p.Address.City = city
	p.Address.State = state
	p.Address.Resolved = true
	return p
}

// WithPayment records the terminal payment artifact. One-way: once set it is
// never replaced.
func (p Progression) WithPayment(artifact PaymentArtifact) Progression {
	if p.Payment != nil {
		return p
	}
	a := artifact
	p.Payment = &a
	return p
}

// Terminal reports whether the flow reached its one-way end state.
func (p Progression) Terminal() bool { return p.Payment != nil }

// Store owns one Progression per checkout session and is the only place it
// mutates. Every update swaps in a complete new snapshot built from the
// latest one; subscribers observe each swap (the preview re-render hook).
type Store struct {
	mu   sync.Mutex
	cur  Progression
	subs map[int]func(Progression)
	next int
}

// NewStore creates a store seeded with the given progression.
func NewStore(p Progression) *Store {
	return &Store{cur: p, subs: make(map[int]func(Progression))}
}

// Get returns the current snapshot.
func (s *Store) Get() Progression {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cur
}

// Update applies fn to the latest snapshot and publishes the result.
func (s *Store) Update(fn func(Progression) Progression) Progression {
	s.mu.Lock()
	s.cur = fn(s.cur)
	p := s.cur
	subs := make([]func(Progression), 0, len(s.subs))
	for _, f := range s.subs {
		subs = append(subs, f)
	}
	s.mu.Unlock()

	for _, f := range subs {
		f(p)
	}
	return p
}

// Subscribe registers fn to run after every update. The returned function
// unsubscribes.
func (s *Store) Subscribe(fn func(Progression)) func() {
	s.mu.Lock()
	id := s.next
	s.next++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}
