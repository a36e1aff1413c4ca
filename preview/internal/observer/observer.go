// Package observer measures the content height of an isolated preview page
// with an injected MutationObserver and delivers debounced readings to Go.
package observer

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

//go:embed height.js
var heightJS []byte

const bindingName = "__vitrine_height"

// teardownJS disconnects the injected observer. Best-effort: the page may
// already be gone.
const teardownJS = `() => {
	if (window.__vitrine_height_observer) window.__vitrine_height_observer.disconnect();
}`

// Observer watches one page's content height.
type Observer struct {
	page   *rod.Page
	report func(px int)
	logger *slog.Logger
	ctx    context.Context
	cancel context.CancelFunc

	rawCh chan int
	deb   *debouncer

	stopOnce sync.Once
	done     chan struct{}
}

// Config for creating an Observer.
type Config struct {
	Page           *rod.Page
	DebounceWindow time.Duration
	Logger         *slog.Logger
}

// New creates an Observer for the given page. Readings go to report.
func New(cfg Config, report func(px int)) *Observer {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	ctx, cancel := context.WithCancel(context.Background())

	o := &Observer{
		page:   cfg.Page,
		report: report,
		logger: cfg.Logger,
		ctx:    ctx,
		cancel: cancel,
		rawCh:  make(chan int, 256),
		done:   make(chan struct{}),
	}
	o.deb = newDebouncer(cfg.DebounceWindow, o.onFlush)
	return o
}

// Start installs the binding, injects the observer JS, and runs the
// processing loop. The first reading arrives as soon as the JS installs.
func (o *Observer) Start() error {
	err := proto.RuntimeAddBinding{Name: bindingName}.Call(o.page)
	if err != nil {
		o.logger.Warn("observer: addBinding failed (may already exist)", "error", err)
	}

	go o.listenBinding()
	go o.loop()

	if _, err := o.page.Eval(string(heightJS)); err != nil {
		o.cancel()
		return fmt.Errorf("observer: inject height.js: %w", err)
	}
	return nil
}

// Stop halts observation exhaustively: after it returns, no further
// readings are delivered, even if the page keeps mutating.
func (o *Observer) Stop() {
	o.stopOnce.Do(func() {
		o.cancel()
		<-o.done

		// Disconnect the in-page observer so a torn-down page stops
		// producing binding calls nobody listens to.
		if _, err := o.page.Eval(teardownJS); err != nil {
			o.logger.Debug("observer: teardown eval", "error", err)
		}
	})
}

// listenBinding receives height readings via Runtime.bindingCalled.
func (o *Observer) listenBinding() {
	o.page.Context(o.ctx).EachEvent(func(e *proto.RuntimeBindingCalled) {
		if e.Name != bindingName {
			return
		}
		px, err := strconv.Atoi(e.Payload)
		if err != nil {
			o.logger.Warn("observer: bad height payload", "payload", e.Payload)
			return
		}
		select {
		case o.rawCh <- px:
		case <-o.ctx.Done():
		}
	})()
}

// loop reads raw readings and debounces them into report calls.
func (o *Observer) loop() {
	defer close(o.done)

	for {
		select {
		case <-o.ctx.Done():
			return

		case px := <-o.rawCh:
			o.deb.add(px)

		case <-o.deb.timerC():
			o.deb.flush()
		}
	}
}

// onFlush is called by the debouncer inside the loop goroutine, so reports
// are ordered and stop cleanly with the loop.
func (o *Observer) onFlush(px int) {
	o.report(px)
}
