package crawler

import (
	"context"
	"fmt"
	"time"

	"github.com/gocolly/colly/v2"
	"go.uber.org/zap"
)

// FetchConfig controls the plain HTTP fetch path.
type FetchConfig struct {
	UserAgent string
	Timeout   time.Duration
}

// CollyFetcher grabs raw HTML over plain HTTP using a Colly collector. It is
// the fast path used when no JavaScript rendering is required.
type CollyFetcher struct {
	cfg    FetchConfig
	base   *colly.Collector
	logger *zap.Logger
}

// NewCollyFetcher builds a fetcher with a reusable base collector. Each
// Fetch clones the collector so concurrent crawls do not share callbacks.
func NewCollyFetcher(cfg FetchConfig, logger *zap.Logger) *CollyFetcher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	base := colly.NewCollector(colly.Async(false))
	base.AllowURLRevisit = true
	return &CollyFetcher{cfg: cfg, base: base, logger: logger}
}

// Fetch performs a single GET and returns the response body. The context
// deadline, when sooner than the configured timeout, bounds the request.
func (f *CollyFetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("fetch %s: %w", rawURL, err)
	}

	collector := f.base.Clone()
	if f.cfg.UserAgent != "" {
		collector.UserAgent = f.cfg.UserAgent
	}
	collector.SetRequestTimeout(f.requestTimeout(ctx))

	var (
		body     []byte
		status   int
		fetchErr error
	)
	collector.OnResponse(func(r *colly.Response) {
		status = r.StatusCode
		body = r.Body
	})
	collector.OnError(func(r *colly.Response, err error) {
		fetchErr = err
	})

	if err := collector.Visit(rawURL); err != nil {
		return nil, fmt.Errorf("fetch %s: %w", rawURL, err)
	}
	collector.Wait()

	if fetchErr != nil {
		return nil, fmt.Errorf("fetch %s: %w", rawURL, fetchErr)
	}
	if status >= 400 {
		return nil, fmt.Errorf("fetch %s: status %d", rawURL, status)
	}
	if len(body) == 0 {
		return nil, fmt.Errorf("fetch %s: empty body", rawURL)
	}

	f.logger.Debug("fetched page",
		zap.String("url", rawURL),
		zap.Int("status", status),
		zap.Int("bytes", len(body)),
	)
	return body, nil
}

func (f *CollyFetcher) requestTimeout(ctx context.Context) time.Duration {
	timeout := f.cfg.Timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}
	return timeout
}
