// Package layout renders the customer-facing checkout tree for a theme
// configuration and an order progression. Each layout variant is a complete
// alternative implementation selected by configuration; adding a variant
// means adding a template and a dispatch arm here, nothing elsewhere.
package layout

import (
	"embed"
	"fmt"
	"html/template"
	"strconv"
	"strings"

	"github.com/hazyhaar/vitrine/order"
	"github.com/hazyhaar/vitrine/theme"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var tmpl = template.Must(template.New("layout").Funcs(funcMap).ParseFS(templateFS, "templates/*.tmpl"))

var funcMap = template.FuncMap{
	"money": money,
}

// Render produces the checkout body HTML for the configured variant.
// Dispatch is exhaustive over the variant enum: a variant without an
// implementation is an error, never a silent fallback.
func Render(cfg theme.Config, p order.Progression) (string, error) {
	var name string
	switch cfg.Layout.Variant {
	case theme.VariantSimple:
		name = "simple"
	case theme.VariantShop:
		name = "shop"
	default:
		return "", fmt.Errorf("layout: no implementation for variant %q", cfg.Layout.Variant)
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, name, buildView(cfg, p)); err != nil {
		return "", fmt.Errorf("layout: render %s: %w", name, err)
	}
	return b.String(), nil
}

// view is the template data model. It derives everything display-side from
// the configuration and progression; templates make no decisions beyond
// showing what the view exposes.
type view struct {
	Theme    theme.Config
	Notice   template.HTML
	Cart     order.Cart
	Customer order.Customer
	Address  order.Address
	Payment  *order.PaymentArtifact

	Steps     []order.Step
	StepIndex int

	ShippingSelectable bool
	TotalCents         int64
}

func buildView(cfg theme.Config, p order.Progression) view {
	flow := order.NewFlow(p.Cart.Product.Type, cfg.Layout.Navigation)
	steps := flow.Steps()

	idx := p.Step
	if idx < 0 {
		idx = 0
	}
	if idx >= len(steps) {
		idx = len(steps) - 1
	}

	return view{
		Theme: cfg,
		// NoticeHTML is sanitized on theme load; safe to emit as markup.
		Notice:             template.HTML(cfg.Texts.NoticeHTML),
		Cart:               p.Cart,
		Customer:           p.Customer,
		Address:            p.Address,
		Payment:            p.Payment,
		Steps:              steps,
		StepIndex:          idx,
		ShippingSelectable: flow.ShippingSelectable(p),
		TotalCents:         p.TotalCents(),
	}
}

// Current returns the active step.
func (v view) Current() order.Step { return v.Steps[v.StepIndex] }

// Visible reports whether a step's section renders. Multi-step shows only
// the active step; single-page reveals sections progressively and keeps
// earlier ones on screen; automatic shows payment alone.
func (v view) Visible(s order.Step) bool {
	i := v.index(s)
	if i < 0 {
		return false
	}
	switch v.Theme.Layout.Navigation {
	case theme.NavMulti:
		return i == v.StepIndex
	case theme.NavAutomatic:
		return s == order.StepPayment
	default: // single
		return i <= v.StepIndex
	}
}

// Per-section conveniences for templates, which cannot construct Step
// values.
func (v view) ShowCustomer() bool { return v.Visible(order.StepCustomer) }
func (v view) ShowDelivery() bool { return v.Visible(order.StepDelivery) }
func (v view) ShowPayment() bool  { return v.Visible(order.StepPayment) }

// Active reports whether the step is the one the indicator highlights.
func (v view) Active(s order.Step) bool { return v.index(s) == v.StepIndex }

// Done reports whether the step was completed.
func (v view) Done(s order.Step) bool {
	i := v.index(s)
	return i >= 0 && i < v.StepIndex
}

// MultiStep reports whether the step indicator renders at all.
func (v view) MultiStep() bool {
	return v.Theme.Layout.Navigation == theme.NavMulti && len(v.Steps) > 1
}

// NumberDisplay is the street-number form value; the "no number" state is
// the structured empty, rendered as a placeholder attribute, not a literal.
func (v view) NumberDisplay() string { return v.Address.Number }

func (v view) index(s order.Step) int {
	for i, st := range v.Steps {
		if st == s {
			return i
		}
	}
	return -1
}

// money formats integer cents as BRL, thousands grouped with a dot.
func money(cents int64) string {
	neg := cents < 0
	if neg {
		cents = -cents
	}
	whole := strconv.FormatInt(cents/100, 10)

	var b strings.Builder
	lead := len(whole) % 3
	if lead > 0 {
		b.WriteString(whole[:lead])
	}
	for i := lead; i < len(whole); i += 3 {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(whole[i : i+3])
	}

	sign := ""
	if neg {
		sign = "-"
	}
	return fmt.Sprintf("%sR$ %s,%02d", sign, b.String(), cents%100)
}
