package crawler

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// Fetcher grabs raw HTML for a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Renderer produces HTML from a real browser DOM.
type Renderer interface {
	Render(ctx context.Context, url string, opts RenderOptions) (string, error)
}

// Engine implements Crawler: fetch (or render), convert to markdown, cache.
//
// Fetch and render failures are reported through the Result, not as errors:
// the pipeline treats a failed crawl as a terminal but ordinary outcome.
type Engine struct {
	fetcher  Fetcher
	renderer Renderer // nil disables the rendered path
	cache    *Cache   // nil disables caching
	logger   *zap.Logger
}

// NewEngine wires an Engine from its parts. renderer and cache may be nil.
func NewEngine(fetcher Fetcher, renderer Renderer, cache *Cache, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{fetcher: fetcher, renderer: renderer, cache: cache, logger: logger}
}

// Crawl fetches one URL and returns its markdown. The current engine yields
// exactly one Result per call; callers must nevertheless handle the slice,
// since deep-crawling engines return one Result per visited page.
func (e *Engine) Crawl(ctx context.Context, url string, cfg RunConfig) ([]Result, error) {
	if url == "" {
		return nil, errors.New("url is required")
	}

	if e.cache != nil && cfg.CacheMode.Reads() {
		if markdown, ok := e.cache.Get(url); ok {
			return []Result{{Success: true, URL: url, Markdown: markdown}}, nil
		}
	}

	html, err := e.fetchHTML(ctx, url, cfg)
	if err != nil {
		return []Result{failure(url, ctx, err)}, nil
	}

	markdown, err := ConvertHTML(html, url, cfg)
	if err != nil {
		return []Result{failure(url, ctx, err)}, nil
	}

	if e.cache != nil && cfg.CacheMode.Writes() {
		if err := e.cache.Put(url, markdown); err != nil {
			e.logger.Warn("cache write failed", zap.String("url", url), zap.Error(err))
		}
	}

	return []Result{{Success: true, URL: url, Markdown: markdown}}, nil
}

func (e *Engine) fetchHTML(ctx context.Context, url string, cfg RunConfig) (string, error) {
	needRender := cfg.ProcessIframes || cfg.RemoveOverlayElements
	if needRender && e.renderer != nil {
		return e.renderer.Render(ctx, url, RenderOptions{
			RemoveOverlays: cfg.RemoveOverlayElements,
			InlineIframes:  cfg.ProcessIframes,
		})
	}
	if needRender {
		e.logger.Warn("renderer unavailable; falling back to plain fetch", zap.String("url", url))
	}
	body, err := e.fetcher.Fetch(ctx, url)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

func failure(url string, ctx context.Context, err error) Result {
	msg := err.Error()
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		msg = fmt.Sprintf("timeout: %v", err)
	}
	return Result{Success: false, URL: url, ErrorMessage: msg}
}
