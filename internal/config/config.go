// Package config loads and validates scraper configuration via Viper.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/Musxeto/crawl4ai-demo/internal/crawler"
	"github.com/Musxeto/crawl4ai-demo/internal/record"
)

// Config captures all service configuration knobs loaded via Viper.
type Config struct {
	Server    ServerConfig      `mapstructure:"server"`
	DB        DBConfig          `mapstructure:"db"`
	Crawler   CrawlerConfig     `mapstructure:"crawler"`
	Render    RenderConfig      `mapstructure:"render"`
	Snapshots SnapshotsConfig   `mapstructure:"snapshots"`
	Publisher PublisherConfig   `mapstructure:"publisher"`
	Logging   LoggingConfig     `mapstructure:"logging"`
	Targets   map[string]string `mapstructure:"targets"`
}

// ServerConfig controls HTTP server behavior.
type ServerConfig struct {
	Port       int    `mapstructure:"port"`
	CORSOrigin string `mapstructure:"cors_origin"`
}

// DBConfig controls access to the relational database.
type DBConfig struct {
	DSN             string `mapstructure:"dsn"`
	MaxConns        int    `mapstructure:"max_conns"`
	MinConns        int    `mapstructure:"min_conns"`
	ConnLifetimeSec int    `mapstructure:"conn_lifetime_seconds"`
}

// CrawlerConfig governs page fetching and markdown filtering.
type CrawlerConfig struct {
	UserAgent             string   `mapstructure:"user_agent"`
	TimeoutSeconds        int      `mapstructure:"timeout_seconds"`
	CacheDir              string   `mapstructure:"cache_dir"`
	CacheMode             string   `mapstructure:"cache_mode"`
	WordCountThreshold    int      `mapstructure:"word_count_threshold"`
	ExcludedTags          []string `mapstructure:"excluded_tags"`
	ExcludeExternalLinks  bool     `mapstructure:"exclude_external_links"`
	ProcessIframes        bool     `mapstructure:"process_iframes"`
	RemoveOverlayElements bool     `mapstructure:"remove_overlay_elements"`
}

// RenderConfig configures the headless rendering subsystem.
type RenderConfig struct {
	Enabled       bool `mapstructure:"enabled"`
	MaxParallel   int  `mapstructure:"max_parallel"`
	NavTimeoutSec int  `mapstructure:"nav_timeout_seconds"`
}

// SnapshotsConfig sets the blob sink for crawled markdown.
type SnapshotsConfig struct {
	Provider  string `mapstructure:"provider"`
	GCSBucket string `mapstructure:"gcs_bucket"`
	Dir       string `mapstructure:"dir"`
}

// PublisherConfig holds metadata for run summary notifications.
type PublisherConfig struct {
	Provider  string `mapstructure:"provider"`
	ProjectID string `mapstructure:"project_id"`
	TopicName string `mapstructure:"topic_name"`
}

// LoggingConfig toggles zap development features.
type LoggingConfig struct {
	Development bool `mapstructure:"development"`
}

// Load builds a Config from disk/environment.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("SCRAPER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors_origin", "http://localhost:5173")
	v.SetDefault("db.max_conns", 8)
	v.SetDefault("db.min_conns", 1)
	v.SetDefault("db.conn_lifetime_seconds", 1800)
	v.SetDefault("crawler.user_agent", "crawl4ai-demo/0.1")
	v.SetDefault("crawler.timeout_seconds", 30)
	v.SetDefault("crawler.cache_dir", ".crawl-cache")
	v.SetDefault("crawler.cache_mode", "enabled")
	v.SetDefault("crawler.word_count_threshold", 10)
	v.SetDefault("crawler.excluded_tags", []string{"form", "header"})
	v.SetDefault("crawler.exclude_external_links", true)
	v.SetDefault("crawler.process_iframes", true)
	v.SetDefault("crawler.remove_overlay_elements", true)
	v.SetDefault("render.enabled", false)
	v.SetDefault("render.max_parallel", 1)
	v.SetDefault("render.nav_timeout_seconds", 25)
	v.SetDefault("snapshots.provider", "none")
	v.SetDefault("snapshots.dir", "snapshots")
	v.SetDefault("publisher.provider", "none")
	v.SetDefault("targets.books", "https://www.amazon.com/Sunrise-Reaping-Hunger-Games-Novel/dp/1546171460/ref=zg_bs_g_books_d_sccl_2/140-5066547-9894520?psc=1")
	v.SetDefault("targets.movies", "https://www.amazon.com/Best-Sellers-Books/zgbs/books")
	v.SetDefault("targets.videos", "https://www.youtube.com/results?search_query=crawl4ai+full+tutorial")
}

// Validate enforces required values and reasonable limits.
func (c Config) Validate() error {
	if c.Server.Port <= 0 {
		return fmt.Errorf("server.port must be > 0")
	}
	if c.Crawler.TimeoutSeconds <= 0 {
		return fmt.Errorf("crawler.timeout_seconds must be > 0")
	}
	if c.Crawler.WordCountThreshold < 0 {
		return fmt.Errorf("crawler.word_count_threshold must be >= 0")
	}
	if _, err := crawler.ParseCacheMode(c.Crawler.CacheMode); err != nil {
		return fmt.Errorf("crawler.cache_mode: %w", err)
	}
	if c.Render.Enabled && c.Render.MaxParallel <= 0 {
		return fmt.Errorf("render.max_parallel must be > 0 when rendering is enabled")
	}
	switch c.Snapshots.Provider {
	case "none", "fs":
	case "gcs":
		if c.Snapshots.GCSBucket == "" {
			return fmt.Errorf("snapshots.gcs_bucket must be set for the gcs provider")
		}
	default:
		return fmt.Errorf("snapshots.provider must be one of none, fs, gcs")
	}
	switch c.Publisher.Provider {
	case "none":
	case "pubsub":
		if c.Publisher.ProjectID == "" || c.Publisher.TopicName == "" {
			return fmt.Errorf("publisher.project_id and publisher.topic_name must be set for pubsub")
		}
	default:
		return fmt.Errorf("publisher.provider must be one of none, pubsub")
	}
	for kind := range c.Targets {
		if !record.Kind(kind).Valid() {
			return fmt.Errorf("targets: unknown kind %q", kind)
		}
	}
	return nil
}

// TargetURL resolves the crawl URL for a kind, honoring configured overrides.
func (c Config) TargetURL(kind record.Kind) (string, error) {
	url, ok := c.Targets[string(kind)]
	if !ok || url == "" {
		return "", fmt.Errorf("no target url configured for kind %q", kind)
	}
	return url, nil
}

// RunConfig converts the crawler section into pipeline run parameters.
func (c Config) RunConfig() crawler.RunConfig {
	mode, err := crawler.ParseCacheMode(c.Crawler.CacheMode)
	if err != nil {
		mode = crawler.CacheEnabled
	}
	return crawler.RunConfig{
		WordCountThreshold:    c.Crawler.WordCountThreshold,
		ExcludedTags:          c.Crawler.ExcludedTags,
		ExcludeExternalLinks:  c.Crawler.ExcludeExternalLinks,
		ProcessIframes:        c.Crawler.ProcessIframes,
		RemoveOverlayElements: c.Crawler.RemoveOverlayElements,
		CacheMode:             mode,
	}
}

// ConnLifetime converts the pool connection lifetime into a duration.
func (c Config) ConnLifetime() time.Duration {
	return time.Duration(c.DB.ConnLifetimeSec) * time.Second
}

// CrawlTimeout converts the crawler timeout into a duration.
func (c Config) CrawlTimeout() time.Duration {
	return time.Duration(c.Crawler.TimeoutSeconds) * time.Second
}

// NavTimeout converts the render navigation timeout into a duration.
func (c Config) NavTimeout() time.Duration {
	return time.Duration(c.Render.NavTimeoutSec) * time.Second
}
