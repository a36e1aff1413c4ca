package postal

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/hazyhaar/vitrine/order"
)

// Lookuper is what the Resolver needs from a lookup client.
type Lookuper interface {
	Lookup(ctx context.Context, code string) (Result, bool, error)
}

// Resolver debounces per-keystroke postal code input and applies successful
// lookups to the order store. Every in-flight lookup is keyed by the code it
// was issued for; a late response for a superseded code is discarded rather
// than applied.
type Resolver struct {
	client   Lookuper
	store    *order.Store
	debounce time.Duration
	logger   *slog.Logger

	mu      sync.Mutex
	timer   *time.Timer
	pending string // latest normalized code requested
}

// ResolverOption customises a Resolver.
type ResolverOption func(*Resolver)

// WithDebounce sets the keystroke debounce window. Default: 300ms.
func WithDebounce(d time.Duration) ResolverOption {
	return func(r *Resolver) { r.debounce = d }
}

// WithResolverLogger sets the logger.
func WithResolverLogger(l *slog.Logger) ResolverOption {
	return func(r *Resolver) { r.logger = l }
}

// NewResolver wires a lookup client to an order store.
func NewResolver(client Lookuper, store *order.Store, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		client:   client,
		store:    store,
		debounce: 300 * time.Millisecond,
		logger:   slog.Default(),
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Request is called on every postal code keystroke. Incomplete codes only
// reset the debounce; a complete code schedules a lookup once the window
// expires. Fire-and-forget: results land in the store asynchronously.
func (r *Resolver) Request(ctx context.Context, raw string) {
	code := order.NormalizePostalCode(raw)

	r.mu.Lock()
	defer r.mu.Unlock()

	r.pending = code
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
	if code == "" {
		return
	}

	r.timer = time.AfterFunc(r.debounce, func() {
		r.lookup(ctx, code)
	})
}

func (r *Resolver) lookup(ctx context.Context, code string) {
	res, found, err := r.client.Lookup(ctx, code)
	if err != nil {
		r.logger.Warn("postal: lookup failed", "code", code, "error", err)
		return
	}

	r.mu.Lock()
	stale := r.pending != code
	r.mu.Unlock()
	if stale {
		r.logger.Debug("postal: discarding stale response", "code", code)
		return
	}

	if !found {
		// A miss leaves the dependent fields editable; nothing to apply.
		r.logger.Info("postal: code not found", "code", code)
		return
	}

	r.store.Update(func(p order.Progression) order.Progression {
		return p.WithResolvedAddress(code, res.Street, res.Neighborhood, res.City, res.State)
	})
}
