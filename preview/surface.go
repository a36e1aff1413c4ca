// Package preview hosts the customer-facing checkout tree in an isolated
// rendering context: a dedicated headless-browser page that carries a copy
// of the host document's styling but shares no DOM or script state with the
// editor. The surface continuously measures its own content height and
// reports it upward so the hosting frame can wrap the content exactly.
package preview

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// ErrClosed is returned by operations on a surface whose isolated context
// does not exist (never opened, or closed).
var ErrClosed = errors.New("preview: surface is closed")

// HeightFunc receives measured content heights for the given mode.
type HeightFunc func(mode Mode, px int)

// Page is one isolated rendering context. The production implementation
// wraps a headless-browser page; tests substitute fakes.
type Page interface {
	// Mount replaces the page content with the given document body HTML.
	Mount(ctx context.Context, bodyHTML string) error
	// Observe starts continuous height observation, delivering measurements
	// to report until the returned stop function runs. Stop must be
	// exhaustive: after it returns, no further reports may arrive.
	Observe(report func(px int)) (stop func(), err error)
	// Close destroys the context.
	Close() error
}

// PageFactory creates an isolated context sized for the viewport.
type PageFactory func(ctx context.Context, vp Viewport) (Page, error)

// Surface manages the lifecycle of the isolated context across viewport
// mode switches. The context cannot be resized in place: switching modes
// tears the old one down — observers included — and builds a fresh one.
type Surface struct {
	factory  PageFactory
	onHeight HeightFunc
	logger   *slog.Logger

	mu     sync.Mutex
	page   Page
	stop   func()
	mode   Mode
	height int
	ready  bool
	epoch  int // guards height reports from torn-down contexts
}

// NewSurface creates a Surface. Heights are delivered to onHeight, which
// may be nil.
func NewSurface(factory PageFactory, onHeight HeightFunc, logger *slog.Logger) *Surface {
	if logger == nil {
		logger = slog.Default()
	}
	return &Surface{factory: factory, onHeight: onHeight, logger: logger, height: MinHeight}
}

// Open creates a fresh isolated context for the mode. Any existing context
// is torn down first, exhaustively, so a stale context can never
// double-report heights alongside the new one.
func (s *Surface) Open(ctx context.Context, mode Mode) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.teardownLocked()

	vp := ViewportFor(mode)
	page, err := s.factory(ctx, vp)
	if err != nil {
		return fmt.Errorf("preview: open %s: %w", mode, err)
	}

	s.epoch++
	epoch := s.epoch
	stop, err := page.Observe(func(px int) {
		s.reportHeight(epoch, vp.Mode, px)
	})
	if err != nil {
		page.Close()
		return fmt.Errorf("preview: observe %s: %w", mode, err)
	}

	s.page = page
	s.stop = stop
	s.mode = vp.Mode
	s.height = MinHeight
	s.ready = false

	s.logger.Info("preview: surface opened", "mode", vp.Mode, "width", vp.Width, "fluid", vp.Fluid)
	return nil
}

// Mount renders the checkout body into the isolated context. The surface
// becomes ready after the first successful mount; until then the hosting
// frame shows a loading placeholder.
func (s *Surface) Mount(ctx context.Context, bodyHTML string) error {
	s.mu.Lock()
	page := s.page
	s.mu.Unlock()

	if page == nil {
		return ErrClosed
	}
	if err := page.Mount(ctx, bodyHTML); err != nil {
		return fmt.Errorf("preview: mount: %w", err)
	}

	s.mu.Lock()
	if s.page == page {
		s.ready = true
	}
	s.mu.Unlock()
	return nil
}

// Close tears down the isolated context and all its observers.
func (s *Surface) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.teardownLocked()
}

// Ready reports whether the mount point exists and holds content.
func (s *Surface) Ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ready
}

// Mode returns the mode of the open context, or "" when closed.
func (s *Surface) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.page == nil {
		return ""
	}
	return s.mode
}

// Height returns the last measured content height, floored at MinHeight.
func (s *Surface) Height() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.height
}

func (s *Surface) reportHeight(epoch int, mode Mode, px int) {
	if px < MinHeight {
		px = MinHeight
	}

	s.mu.Lock()
	if epoch != s.epoch {
		// A report raced teardown. The context is gone; drop it.
		s.mu.Unlock()
		return
	}
	s.height = px
	s.mu.Unlock()

	if s.onHeight != nil {
		s.onHeight(mode, px)
	}
}

// teardownLocked stops observation, closes the context, and resets state.
// Must be exhaustive — a leaked observer would keep reporting against a
// destroyed context.
func (s *Surface) teardownLocked() {
	if s.stop != nil {
		s.stop()
		s.stop = nil
	}
	if s.page != nil {
		if err := s.page.Close(); err != nil {
			s.logger.Warn("preview: close page", "error", err)
		}
		s.page = nil
	}
	s.epoch++
	s.ready = false
	s.height = MinHeight
}
