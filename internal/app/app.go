// Package app assembles the application's dependencies from configuration.
package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Musxeto/crawl4ai-demo/internal/config"
	"github.com/Musxeto/crawl4ai-demo/internal/crawler"
	"github.com/Musxeto/crawl4ai-demo/internal/ingest"
	"github.com/Musxeto/crawl4ai-demo/internal/metrics"
	"github.com/Musxeto/crawl4ai-demo/internal/publish"
	"github.com/Musxeto/crawl4ai-demo/internal/snapshot"
	"github.com/Musxeto/crawl4ai-demo/internal/storage/postgres"
)

// App contains the application's shared dependencies.
type App struct {
	Config    config.Config
	Logger    *zap.Logger
	Store     *postgres.Store
	Snapshots snapshot.Provider
	Publisher publish.Provider

	renderer *crawler.ChromedpRenderer
}

// New builds the container from a validated config. The database is pinged
// and migrated before the app is returned.
func New(ctx context.Context, cfg config.Config, logger *zap.Logger) (*App, error) {
	metrics.Init()

	store, err := postgres.New(ctx, postgres.Config{
		DSN:             cfg.DB.DSN,
		MaxConns:        int32(cfg.DB.MaxConns),
		MinConns:        int32(cfg.DB.MinConns),
		MaxConnLifetime: cfg.ConnLifetime(),
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	if err := store.Migrate(ctx); err != nil {
		store.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	snapshots, err := buildSnapshots(ctx, cfg, logger)
	if err != nil {
		store.Close()
		return nil, err
	}

	publisher, err := buildPublisher(ctx, cfg, logger)
	if err != nil {
		_ = snapshots.Close()
		store.Close()
		return nil, err
	}

	return &App{
		Config:    cfg,
		Logger:    logger,
		Store:     store,
		Snapshots: snapshots,
		Publisher: publisher,
	}, nil
}

// Crawler builds the crawl engine on demand. The headless renderer and the
// page cache are attached per config; a scrape run owns the returned engine.
func (a *App) Crawler() (crawler.Crawler, error) {
	fetcher := crawler.NewCollyFetcher(crawler.FetchConfig{
		UserAgent: a.Config.Crawler.UserAgent,
		Timeout:   a.Config.CrawlTimeout(),
	}, a.Logger)

	var renderer crawler.Renderer
	if a.Config.Render.Enabled {
		r, err := crawler.NewChromedpRenderer(crawler.RenderConfig{
			UserAgent:      a.Config.Crawler.UserAgent,
			Timeout:        a.Config.NavTimeout(),
			MaxConcurrency: a.Config.Render.MaxParallel,
		}, a.Logger)
		if err != nil {
			return nil, fmt.Errorf("start renderer: %w", err)
		}
		a.renderer = r
		renderer = r
	}

	var cache *crawler.Cache
	if a.Config.Crawler.CacheDir != "" {
		c, err := crawler.NewCache(a.Config.Crawler.CacheDir, a.Logger)
		if err != nil {
			return nil, fmt.Errorf("open page cache: %w", err)
		}
		cache = c
	}

	return crawler.NewEngine(fetcher, renderer, cache, a.Logger), nil
}

// Ingestor builds a record ingestor bound to the app's store.
func (a *App) Ingestor() *ingest.Ingestor {
	return ingest.New(a.Store, a.Logger)
}

// Close releases all held resources.
func (a *App) Close() {
	if a.renderer != nil {
		a.renderer.Close()
	}
	if a.Publisher != nil {
		if err := a.Publisher.Close(); err != nil {
			a.Logger.Warn("publisher close failed", zap.Error(err))
		}
	}
	if a.Snapshots != nil {
		if err := a.Snapshots.Close(); err != nil {
			a.Logger.Warn("snapshot provider close failed", zap.Error(err))
		}
	}
	if a.Store != nil {
		a.Store.Close()
	}
	_ = a.Logger.Sync()
}

func buildSnapshots(ctx context.Context, cfg config.Config, logger *zap.Logger) (snapshot.Provider, error) {
	switch cfg.Snapshots.Provider {
	case "fs":
		return snapshot.NewFSProvider(cfg.Snapshots.Dir)
	case "gcs":
		return snapshot.NewGCSProvider(ctx, cfg.Snapshots.GCSBucket, logger)
	default:
		return snapshot.NoOpProvider{}, nil
	}
}

func buildPublisher(ctx context.Context, cfg config.Config, logger *zap.Logger) (publish.Provider, error) {
	switch cfg.Publisher.Provider {
	case "pubsub":
		return publish.NewPubSubProvider(ctx, cfg.Publisher.ProjectID, cfg.Publisher.TopicName, logger)
	default:
		return publish.NoOpProvider{}, nil
	}
}
