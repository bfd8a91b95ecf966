package crawler

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Musxeto/crawl4ai-demo/internal/hash/sha256"
)

// Cache stores converted markdown on disk, keyed by the hash of the page
// URL. Entries have no TTL; CacheBypass refreshes them.
type Cache struct {
	root   string
	hasher *sha256.Hasher
	logger *zap.Logger
}

// NewCache creates the cache directory if needed and returns a Cache rooted
// there.
func NewCache(root string, logger *zap.Logger) (*Cache, error) {
	if err := os.MkdirAll(root, 0o750); err != nil {
		return nil, fmt.Errorf("create cache dir %s: %w", root, err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cache{root: root, hasher: sha256.New(), logger: logger}, nil
}

// Get returns the cached markdown for url, if present.
func (c *Cache) Get(url string) (string, bool) {
	data, err := os.ReadFile(c.path(url))
	if err != nil {
		return "", false
	}
	c.logger.Debug("cache hit", zap.String("url", url))
	return string(data), true
}

// Put stores markdown for url, overwriting any previous entry.
func (c *Cache) Put(url, markdown string) error {
	target := c.path(url)
	if err := os.MkdirAll(filepath.Dir(target), 0o750); err != nil {
		return fmt.Errorf("create cache subdir for %s: %w", url, err)
	}
	if err := os.WriteFile(target, []byte(markdown), 0o600); err != nil {
		return fmt.Errorf("write cache entry for %s: %w", url, err)
	}
	return nil
}

func (c *Cache) path(url string) string {
	key := c.hasher.HashString(url)
	return filepath.Join(c.root, key[:2], key+".md")
}
