package preview

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"

	"github.com/hazyhaar/vitrine/preview/internal/browser"
	"github.com/hazyhaar/vitrine/preview/internal/observer"
)

// fluidWidth sizes the desktop context. The hosting frame stretches the
// rendered result to 100%; the context itself needs a concrete width.
const fluidWidth = 1280

// rodFactory builds PageFactory over a shared headless Chrome. headHTML is
// the replicated style head (see internal/styles) baked into every context.
func rodFactory(mgr *browser.Manager, headHTML string, logger *slog.Logger) PageFactory {
	if logger == nil {
		logger = slog.Default()
	}
	return func(ctx context.Context, vp Viewport) (Page, error) {
		b := mgr.Browser()
		if b == nil {
			return nil, fmt.Errorf("preview: browser not running")
		}

		page, err := b.Page(proto.TargetCreateTarget{URL: "about:blank"})
		if err != nil {
			return nil, fmt.Errorf("preview: create page: %w", err)
		}

		width := vp.Width
		if vp.Fluid {
			width = fluidWidth
		}
		err = page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
			Width:             width,
			Height:            MinHeight,
			DeviceScaleFactor: 1,
			Mobile:            vp.Mode == ModeMobile,
		})
		if err != nil {
			page.Close()
			return nil, fmt.Errorf("preview: set viewport: %w", err)
		}

		shell := fmt.Sprintf("<!DOCTYPE html>\n<html>\n<head>\n%s</head>\n<body></body>\n</html>", headHTML)
		if err := page.SetDocumentContent(shell); err != nil {
			page.Close()
			return nil, fmt.Errorf("preview: seed document: %w", err)
		}

		return &rodPage{page: page, logger: logger}, nil
	}
}

// rodPage adapts a Rod page to the Page interface.
type rodPage struct {
	page   *rod.Page
	logger *slog.Logger
}

func (p *rodPage) Mount(ctx context.Context, bodyHTML string) error {
	_, err := p.page.Context(ctx).Eval(`(html) => { document.body.innerHTML = html; }`, bodyHTML)
	if err != nil {
		return fmt.Errorf("mount body: %w", err)
	}
	return nil
}

func (p *rodPage) Observe(report func(px int)) (func(), error) {
	o := observer.New(observer.Config{
		Page:           p.page,
		DebounceWindow: 150 * time.Millisecond,
		Logger:         p.logger,
	}, report)
	if err := o.Start(); err != nil {
		return nil, err
	}
	return o.Stop, nil
}

func (p *rodPage) Close() error {
	return p.page.Close()
}
