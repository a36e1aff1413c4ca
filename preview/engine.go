package preview

import (
	"context"
	"log/slog"
	"net/url"
	"sync"
	"time"

	"github.com/hazyhaar/vitrine/preview/internal/browser"
	"github.com/hazyhaar/vitrine/preview/internal/styles"
)

// EngineConfig configures the preview engine.
type EngineConfig struct {
	// RemoteURL connects to an external Chrome instead of launching one.
	RemoteURL string
	// MemoryLimit in bytes before Chrome is recycled.
	MemoryLimit int64
	// RecycleInterval is the maximum Chrome process lifetime.
	RecycleInterval time.Duration

	Logger *slog.Logger
}

// Engine owns the headless browser behind every preview surface and the
// replicated style head its contexts are seeded with.
type Engine struct {
	mgr    *browser.Manager
	logger *slog.Logger

	mu   sync.Mutex
	head string
}

// NewEngine creates an Engine. Call Start before opening surfaces.
func NewEngine(cfg EngineConfig) *Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		mgr: browser.NewManager(browser.Config{
			RemoteURL:       cfg.RemoteURL,
			MemoryLimit:     cfg.MemoryLimit,
			RecycleInterval: cfg.RecycleInterval,
			Logger:          logger,
		}),
		logger: logger,
		head:   styles.ComposeHead(nil),
	}
}

// Start launches (or connects to) Chrome.
func (e *Engine) Start(ctx context.Context) error {
	_, err := e.mgr.Start(ctx)
	return err
}

// Close shuts Chrome down.
func (e *Engine) Close() error {
	return e.mgr.Close()
}

// ReplicateHostStyles replicates the stylesheets of the given host document
// into the head every future context is seeded with. Relative hrefs resolve
// against base. Returns the number of replicated blocks; even zero keeps
// the baseline reset.
func (e *Engine) ReplicateHostStyles(ctx context.Context, hostHTML string, base *url.URL) int {
	refs := styles.ExtractSheets(hostHTML)
	blocks := styles.NewReplicator(styles.WithLogger(e.logger)).Replicate(ctx, refs, base)

	e.mu.Lock()
	e.head = styles.ComposeHead(blocks)
	e.mu.Unlock()

	e.logger.Info("preview: host styles replicated", "sheets", len(refs), "blocks", len(blocks))
	return len(blocks)
}

// Factory returns the PageFactory surfaces use to create isolated contexts
// in this engine's browser.
func (e *Engine) Factory() PageFactory {
	return func(ctx context.Context, vp Viewport) (Page, error) {
		e.mu.Lock()
		head := e.head
		e.mu.Unlock()
		return rodFactory(e.mgr, head, e.logger)(ctx, vp)
	}
}
