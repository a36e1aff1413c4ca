package dashboard

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hazyhaar/vitrine/idgen"
	"github.com/hazyhaar/vitrine/order"
)

// PixInitiator is the payment-initiation collaborator: it mints an opaque
// artifact with a scannable code URL and a copyable payload. The artifact is
// presentation-opaque — nothing downstream parses it.
type PixInitiator struct {
	ids     idgen.Generator
	baseURL string
}

// NewPixInitiator creates an initiator. Scan code URLs are rooted at
// baseURL.
func NewPixInitiator(baseURL string, ids idgen.Generator) *PixInitiator {
	if ids == nil {
		ids = idgen.Prefixed("pay_", idgen.NanoID(21))
	}
	return &PixInitiator{ids: ids, baseURL: strings.TrimRight(baseURL, "/")}
}

// Initiate implements order.PaymentInitiator.
func (pi *PixInitiator) Initiate(_ context.Context, snap order.Snapshot) (order.PaymentArtifact, error) {
	if snap.TotalCents <= 0 {
		return order.PaymentArtifact{}, fmt.Errorf("dashboard: initiate payment: non-positive total %d", snap.TotalCents)
	}

	id := pi.ids()
	return order.PaymentArtifact{
		ID:          id,
		ScanCode:    fmt.Sprintf("%s/qr/%s.png", pi.baseURL, id),
		CopyCode:    copyCode(id, snap.TotalCents),
		AmountCents: snap.TotalCents,
		CreatedAt:   time.Now(),
	}, nil
}

// copyCode assembles the copy-and-paste payment payload. EMV-style field
// framing: tag, two-digit length, value.
func copyCode(id string, cents int64) string {
	amount := fmt.Sprintf("%d.%02d", cents/100, cents%100)
	var b strings.Builder
	for _, f := range []struct {
		tag   string
		value string
	}{
		{"00", "01"},
		{"26", "br.gov.bcb.pix"},
		{"54", amount},
		{"62", id},
	} {
		fmt.Fprintf(&b, "%s%02d%s", f.tag, len(f.value), f.value)
	}
	return b.String()
}
