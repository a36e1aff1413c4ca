// Package order models the customer-facing checkout runtime: the cart
// snapshot, progressively collected customer data, the selected shipping and
// add-on offers, and the step flow controller that decides which part of the
// checkout is active. State is transient — it is rebuilt per checkout session
// and never persisted mid-flow.
package order

import "time"

// ProductType distinguishes goods that ship from goods that download.
// The step sequence depends on it: digital carts skip delivery entirely.
type ProductType string

const (
	Physical ProductType = "PHYSICAL"
	Digital  ProductType = "DIGITAL"
)

// Product is the immutable snapshot of the item being sold, supplied by the
// order-data collaborator at session start.
type Product struct {
	ID             string      `json:"id"`
	Name           string      `json:"name"`
	ImageURL       string      `json:"imageUrl"`
	UnitPriceCents int64       `json:"unitPriceCents"`
	Quantity       int         `json:"quantity"`
	Type           ProductType `json:"type"`
}

// ShippingOption is one way to deliver a physical product.
type ShippingOption struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	PriceCents    int64  `json:"priceCents"`
	EstimatedDays int    `json:"estimatedDays"`
}

// BumpOffer is an optional add-on presentable during checkout.
// WasPriceCents of zero means no strikethrough price.
type BumpOffer struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	ImageURL      string `json:"imageUrl"`
	PriceCents    int64  `json:"priceCents"`
	WasPriceCents int64  `json:"wasPriceCents"`
}

// SelectedBump is an accepted add-on. Quantity is always 1: bumps are not
// independently editable.
type SelectedBump struct {
	Offer    BumpOffer `json:"offer"`
	Quantity int       `json:"quantity"`
}

// Cart is the purchasable state: product snapshot, chosen shipping, and
// accepted add-ons.
type Cart struct {
	Product  Product         `json:"product"`
	Shipping *ShippingOption `json:"shipping,omitempty"`
	Bumps    []SelectedBump  `json:"bumps,omitempty"`
}

// Customer holds the progressively collected buyer identity.
type Customer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	TaxID string `json:"taxId"`
}

// Address is the delivery address. Street, neighborhood, city and state are
// autofilled by the postal lookup collaborator when the code resolves;
// everything stays manually editable on a miss.
type Address struct {
	PostalCode   string `json:"postalCode"`
	Street       string `json:"street"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
	Number       string `json:"number"`
	Complement   string `json:"complement"`

	// Resolved is set once the postal lookup answered for PostalCode.
	// Shipping selection is gated on it.
	Resolved bool `json:"resolved"`
}

// NumberUnset reports whether the street number was left empty. Consumers
// that need a display value for "no number" render their own placeholder;
// the model keeps a structured empty, never a literal placeholder string.
func (a Address) NumberUnset() bool { return a.Number == "" }

// PaymentArtifact is the terminal product of the flow: an opaque id plus the
// payment instrument payload (a scannable code and a copyable code). It is
// never mutated after creation.
type PaymentArtifact struct {
	ID          string    `json:"id"`
	ScanCode    string    `json:"scanCode"`
	CopyCode    string    `json:"copyCode"`
	AmountCents int64     `json:"amountCents"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Snapshot is the final order view handed to the payment-initiation
// collaborator. Totals are captured at generation time.
type Snapshot struct {
	Cart       Cart     `json:"cart"`
	Customer   Customer `json:"customer"`
	Address    Address  `json:"address"`
	TotalCents int64    `json:"totalCents"`
}
