package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Musxeto/crawl4ai-demo/internal/crawler"
	"github.com/Musxeto/crawl4ai-demo/internal/record"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	require.Equal(t, 8080, cfg.Server.Port)
	require.Equal(t, "http://localhost:5173", cfg.Server.CORSOrigin)
	require.Equal(t, 30, cfg.Crawler.TimeoutSeconds)
	require.Equal(t, 10, cfg.Crawler.WordCountThreshold)
	require.Equal(t, []string{"form", "header"}, cfg.Crawler.ExcludedTags)
	require.True(t, cfg.Crawler.ExcludeExternalLinks)
	require.True(t, cfg.Crawler.ProcessIframes)
	require.True(t, cfg.Crawler.RemoveOverlayElements)
	require.Equal(t, "enabled", cfg.Crawler.CacheMode)
	require.Equal(t, "none", cfg.Snapshots.Provider)
	require.Equal(t, "none", cfg.Publisher.Provider)

	for _, kind := range []record.Kind{record.KindBooks, record.KindMovies, record.KindVideos} {
		url, err := cfg.TargetURL(kind)
		require.NoError(t, err)
		require.NotEmpty(t, url)
	}
}

func TestLoadReadsConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  port: 9090
crawler:
  cache_mode: bypass
  word_count_threshold: 5
targets:
  books: https://example.com/books
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 9090, cfg.Server.Port)
	require.Equal(t, "bypass", cfg.Crawler.CacheMode)
	require.Equal(t, 5, cfg.Crawler.WordCountThreshold)

	url, err := cfg.TargetURL(record.KindBooks)
	require.NoError(t, err)
	require.Equal(t, "https://example.com/books", url)
}

func TestLoadRejectsMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestValidateErrors(t *testing.T) {
	base := func() Config {
		cfg, err := Load("")
		require.NoError(t, err)
		return cfg
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad port", func(c *Config) { c.Server.Port = 0 }},
		{"bad timeout", func(c *Config) { c.Crawler.TimeoutSeconds = 0 }},
		{"bad cache mode", func(c *Config) { c.Crawler.CacheMode = "sometimes" }},
		{"render parallel", func(c *Config) { c.Render.Enabled = true; c.Render.MaxParallel = 0 }},
		{"gcs without bucket", func(c *Config) { c.Snapshots.Provider = "gcs" }},
		{"unknown snapshot provider", func(c *Config) { c.Snapshots.Provider = "s3" }},
		{"pubsub without project", func(c *Config) { c.Publisher.Provider = "pubsub" }},
		{"unknown target kind", func(c *Config) { c.Targets["albums"] = "https://example.com" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(&cfg)
			require.Error(t, cfg.Validate())
		})
	}
}

func TestRunConfigMapping(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	run := cfg.RunConfig()
	require.Equal(t, crawler.CacheEnabled, run.CacheMode)
	require.Equal(t, 10, run.WordCountThreshold)
	require.Equal(t, []string{"form", "header"}, run.ExcludedTags)
	require.True(t, run.ProcessIframes)
	require.True(t, run.RemoveOverlayElements)
}

func TestDurationHelpers(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	require.Equal(t, 30*time.Second, cfg.CrawlTimeout())
	require.Equal(t, 25*time.Second, cfg.NavTimeout())
	require.Equal(t, 30*time.Minute, cfg.ConnLifetime())
}

func TestTargetURLUnknownKind(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	_, err = cfg.TargetURL(record.Kind("albums"))
	require.Error(t, err)
}
