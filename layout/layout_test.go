package layout

import (
	"strings"
	"testing"

	"github.com/hazyhaar/vitrine/order"
	"github.com/hazyhaar/vitrine/theme"
)

func physicalProgression() order.Progression {
	return order.New(order.Product{
		ID:             "prd_1",
		Name:           "Curso de Marcenaria",
		UnitPriceCents: 7900,
		Type:           order.Physical,
	})
}

func TestRenderSimpleSinglePageRevealsProgressively(t *testing.T) {
	cfg := theme.Defaults()
	cfg.Layout.Variant = theme.VariantSimple
	cfg.Layout.Navigation = theme.NavSingle

	html, err := Render(cfg, physicalProgression())
	if err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(html, "variant-simple") {
		t.Error("missing variant frame")
	}
	if !strings.Contains(html, "Curso de Marcenaria") {
		t.Error("missing product name")
	}
	if !strings.Contains(html, `data-step="customer"`) {
		t.Error("customer section must render at step 0")
	}
	// Single page reveals progressively: later sections not yet revealed.
	if strings.Contains(html, `data-step="delivery"`) {
		t.Error("delivery section revealed before customer step completed")
	}
	if strings.Contains(html, `data-step="payment"`) {
		t.Error("payment section revealed before delivery step")
	}
}

func TestRenderSinglePageKeepsEarlierSections(t *testing.T) {
	cfg := theme.Defaults()
	cfg.Layout.Navigation = theme.NavSingle

	p := physicalProgression()
	p.Step = 2 // payment revealed

	html, err := Render(cfg, p)
	if err != nil {
		t.Fatal(err)
	}
	for _, step := range []string{"customer", "delivery", "payment"} {
		if !strings.Contains(html, `data-step="`+step+`"`) {
			t.Errorf("single-page at last step must keep %s section on screen", step)
		}
	}
}

func TestRenderMultiShowsOnlyActiveStep(t *testing.T) {
	cfg := theme.Defaults()
	cfg.Layout.Navigation = theme.NavMulti

	p := physicalProgression()
	p.Step = 1

	html, err := Render(cfg, p)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(html, `data-step="customer"`) {
		t.Error("multi-step must hide inactive customer section")
	}
	if !strings.Contains(html, `data-step="delivery"`) {
		t.Error("active delivery section missing")
	}
	if !strings.Contains(html, `class="steps"`) {
		t.Error("multi-step must render the step indicator")
	}
}

func TestRenderAutomaticIsPaymentOnly(t *testing.T) {
	cfg := theme.Defaults()
	cfg.Layout.Navigation = theme.NavAutomatic

	html, err := Render(cfg, physicalProgression())
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(html, `data-step="customer"`) || strings.Contains(html, `data-step="delivery"`) {
		t.Error("automatic navigation must collect nothing")
	}
	if !strings.Contains(html, `data-step="payment"`) {
		t.Error("payment action missing")
	}
	if strings.Contains(html, `class="steps"`) {
		t.Error("automatic navigation must not render a step indicator")
	}
}

func TestRenderDigitalHasNoDeliverySection(t *testing.T) {
	cfg := theme.Defaults()
	cfg.Layout.Navigation = theme.NavSingle

	p := order.New(order.Product{Name: "E-book", UnitPriceCents: 1900, Type: order.Digital})
	p.Step = 1 // last step for digital: payment

	html, err := Render(cfg, p)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(html, `data-step="delivery"`) {
		t.Error("digital cart must never render a delivery section")
	}
	if !strings.Contains(html, `data-step="payment"`) {
		t.Error("payment section missing")
	}
}

func TestRenderShippingPlaceholderUntilResolved(t *testing.T) {
	cfg := theme.Defaults()
	cfg.Layout.Navigation = theme.NavSingle

	p := physicalProgression()
	p.Step = 1

	html, err := Render(cfg, p)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(html, `data-shipping="pending"`) {
		t.Error("unresolved postal code must render the shipping placeholder")
	}

	p = p.WithAddress(order.Address{PostalCode: "01310-100"})
	p = p.WithResolvedAddress("01310100", "Av. Paulista", "Bela Vista", "São Paulo", "SP")
	html, err = Render(cfg, p)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(html, `data-shipping="open"`) {
		t.Error("resolved address must open shipping selection")
	}
}

func TestRenderShopVariant(t *testing.T) {
	cfg := theme.Defaults()
	cfg.Layout.Variant = theme.VariantShop

	html, err := Render(cfg, physicalProgression())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(html, "variant-shop") || !strings.Contains(html, "shop-grid") {
		t.Error("shop variant frame missing")
	}
	if !strings.Contains(html, "shop-summary") {
		t.Error("shop variant summary column missing")
	}
}

func TestRenderUnknownVariantErrors(t *testing.T) {
	cfg := theme.Defaults()
	cfg.Layout.Variant = theme.Variant("brutalist")

	if _, err := Render(cfg, physicalProgression()); err == nil {
		t.Fatal("unknown variant must error, not fall back silently")
	}
}

func TestRenderNoticePassesSanitizedMarkup(t *testing.T) {
	cfg := theme.Defaults()
	cfg.Snippets.ShowNotice = true
	cfg.Texts.NoticeHTML = "Frete <strong>grátis</strong> hoje"

	html, err := Render(cfg, physicalProgression())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(html, "<strong>grátis</strong>") {
		t.Error("sanitized notice markup must render unescaped")
	}

	cfg.Snippets.ShowNotice = false
	html, err = Render(cfg, physicalProgression())
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(html, "notice-bar") {
		t.Error("disabled notice snippet must not render")
	}
}

func TestRenderPaymentArtifact(t *testing.T) {
	cfg := theme.Defaults()
	cfg.Layout.Navigation = theme.NavAutomatic

	p := physicalProgression().WithPayment(order.PaymentArtifact{
		ID:       "pay_1",
		ScanCode: "https://pay.example/qr/pay_1.png",
		CopyCode: "00020126AB33",
	})

	html, err := Render(cfg, p)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(html, "00020126AB33") {
		t.Error("copyable code missing from terminal state")
	}
	if strings.Contains(html, "pay-button") {
		t.Error("terminal state must not offer the payment button again")
	}
}

func TestMoney(t *testing.T) {
	tests := []struct {
		cents int64
		want  string
	}{
		{0, "R$ 0,00"},
		{8300, "R$ 83,00"},
		{7900, "R$ 79,00"},
		{1234567, "R$ 12.345,67"},
		{-500, "-R$ 5,00"},
	}
	for _, tt := range tests {
		if got := money(tt.cents); got != tt.want {
			t.Errorf("money(%d) = %q, want %q", tt.cents, got, tt.want)
		}
	}
}
