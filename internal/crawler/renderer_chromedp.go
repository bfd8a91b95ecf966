package crawler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

// ErrRendererDisabled indicates rendering has been disabled via configuration.
var ErrRendererDisabled = errors.New("renderer disabled")

// RenderConfig controls the headless Chrome render path.
type RenderConfig struct {
	UserAgent      string
	Timeout        time.Duration
	MaxConcurrency int
}

// RenderOptions are the per-crawl DOM transformations applied before the
// HTML snapshot is taken.
type RenderOptions struct {
	RemoveOverlays bool
	InlineIframes  bool
}

// ChromedpRenderer renders pages with headless Chrome so that overlay
// removal and iframe flattening operate on a real DOM.
type ChromedpRenderer struct {
	allocatorCancel context.CancelFunc
	browserCtx      context.Context
	browserCancel   context.CancelFunc
	sem             chan struct{}
	timeout         time.Duration
	logger          *zap.Logger
}

// removeOverlaysJS strips fixed-position and modal-like nodes that sit on
// top of the page content.
const removeOverlaysJS = `(() => {
	const selectors = '[class*="modal"],[class*="overlay"],[class*="popup"],[id*="modal"],[id*="overlay"],[role="dialog"]';
	document.querySelectorAll(selectors).forEach(el => el.remove());
	document.querySelectorAll('*').forEach(el => {
		const style = window.getComputedStyle(el);
		if ((style.position === 'fixed' || style.position === 'sticky') && parseInt(style.zIndex, 10) > 100) {
			el.remove();
		}
	});
	document.body.style.overflow = 'auto';
	return true;
})()`

// inlineIframesJS replaces same-origin iframes with their document content.
// Cross-origin frames are inaccessible and left untouched.
const inlineIframesJS = `(() => {
	document.querySelectorAll('iframe').forEach(frame => {
		try {
			const doc = frame.contentDocument;
			if (doc && doc.body) {
				const div = document.createElement('div');
				div.innerHTML = doc.body.innerHTML;
				frame.replaceWith(div);
			}
		} catch (e) {
			// cross-origin frame
		}
	});
	return true;
})()`

// NewChromedpRenderer boots a shared browser process. Each Render runs in
// its own tab bounded by cfg.Timeout and the concurrency semaphore.
func NewChromedpRenderer(cfg RenderConfig, logger *zap.Logger) (*ChromedpRenderer, error) {
	if cfg.MaxConcurrency <= 0 {
		return nil, ErrRendererDisabled
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	opts := chromedp.DefaultExecAllocatorOptions[:]
	opts = append(opts,
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.UserAgent(cfg.UserAgent),
	)
	allocatorCtx, allocatorCancel := chromedp.NewExecAllocator(context.Background(), opts...)
	browserCtx, browserCancel := chromedp.NewContext(allocatorCtx)
	if err := chromedp.Run(browserCtx); err != nil {
		browserCancel()
		allocatorCancel()
		return nil, fmt.Errorf("chromedp warmup: %w", err)
	}

	return &ChromedpRenderer{
		allocatorCancel: allocatorCancel,
		browserCtx:      browserCtx,
		browserCancel:   browserCancel,
		sem:             make(chan struct{}, cfg.MaxConcurrency),
		timeout:         cfg.Timeout,
		logger:          logger,
	}, nil
}

// Close tears down the browser and allocator contexts.
func (r *ChromedpRenderer) Close() error {
	if r == nil {
		return nil
	}
	r.browserCancel()
	r.allocatorCancel()
	return nil
}

// Render navigates to rawURL in a fresh tab, applies the requested DOM
// transformations, and returns the resulting HTML.
func (r *ChromedpRenderer) Render(ctx context.Context, rawURL string, opts RenderOptions) (string, error) {
	if r == nil {
		return "", ErrRendererDisabled
	}

	select {
	case r.sem <- struct{}{}:
		defer func() { <-r.sem }()
	case <-ctx.Done():
		return "", fmt.Errorf("acquire render slot: %w", ctx.Err())
	}

	tabCtx, cancelTab := chromedp.NewContext(r.browserCtx)
	defer cancelTab()

	taskCtx, cancelTask := context.WithTimeout(tabCtx, r.timeout)
	defer cancelTask()
	stop := forwardCancel(ctx, cancelTask)
	defer stop()

	var status int64
	chromedp.ListenTarget(tabCtx, func(ev any) {
		if resp, ok := ev.(*network.EventResponseReceived); ok && resp.Type == network.ResourceTypeDocument {
			if status == 0 {
				status = resp.Response.Status
			}
		}
	})

	tasks := chromedp.Tasks{
		network.Enable(),
		emulation.SetDeviceMetricsOverride(1280, 1024, 1.0, false),
		chromedp.Navigate(rawURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
	}
	if opts.RemoveOverlays {
		tasks = append(tasks, chromedp.Evaluate(removeOverlaysJS, nil))
	}
	if opts.InlineIframes {
		tasks = append(tasks, chromedp.Evaluate(inlineIframesJS, nil))
	}
	var html string
	tasks = append(tasks, chromedp.OuterHTML("html", &html, chromedp.ByQuery))

	if err := chromedp.Run(taskCtx, tasks); err != nil {
		return "", fmt.Errorf("render %s: %w", rawURL, err)
	}
	if status >= 400 {
		return "", fmt.Errorf("render %s: status %d", rawURL, status)
	}

	r.logger.Debug("rendered page",
		zap.String("url", rawURL),
		zap.Int64("status", status),
		zap.Int("bytes", len(html)),
	)
	return html, nil
}

// forwardCancel propagates cancellation of the caller context into the
// chromedp task context.
func forwardCancel(ctx context.Context, cancel context.CancelFunc) func() {
	done := make(chan struct{})
	var once sync.Once
	go func() {
		select {
		case <-ctx.Done():
			cancel()
		case <-done:
		}
	}()
	return func() { once.Do(func() { close(done) }) }
}
