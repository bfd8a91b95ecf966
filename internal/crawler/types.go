// Package crawler fetches a page and returns its content as markdown.
//
// The rest of the pipeline consumes this package only through the Crawler
// interface: a URL plus a RunConfig in, a slice of Results out. A fetch that
// fails produces a Result with Success=false and an error message; the
// returned error is reserved for misuse of the API itself.
package crawler

import (
	"context"
	"fmt"
)

// CacheMode controls whether a crawl may read and/or write the local
// markdown snapshot cache.
type CacheMode string

// Cache modes.
const (
	CacheDisabled  CacheMode = "disabled"   // never touch the cache
	CacheEnabled   CacheMode = "enabled"    // read if present, write after fetch
	CacheBypass    CacheMode = "bypass"     // ignore existing entries but refresh them
	CacheWriteOnly CacheMode = "write_only" // write without reading
)

// ParseCacheMode maps a config string to a CacheMode. Empty defaults to
// CacheEnabled.
func ParseCacheMode(s string) (CacheMode, error) {
	switch CacheMode(s) {
	case "":
		return CacheEnabled, nil
	case CacheDisabled, CacheEnabled, CacheBypass, CacheWriteOnly:
		return CacheMode(s), nil
	}
	return "", fmt.Errorf("unknown cache mode %q", s)
}

// Reads reports whether the mode allows serving a crawl from cache.
func (m CacheMode) Reads() bool { return m == CacheEnabled }

// Writes reports whether the mode persists fresh content to the cache.
func (m CacheMode) Writes() bool {
	return m == CacheEnabled || m == CacheBypass || m == CacheWriteOnly
}

// RunConfig carries the per-run crawl knobs.
type RunConfig struct {
	// WordCountThreshold prunes markdown blocks with fewer words, unless
	// the block carries structure (headings, links, images).
	WordCountThreshold int
	// ExcludedTags names HTML elements stripped before conversion,
	// e.g. "form", "header".
	ExcludedTags []string
	// ExcludeExternalLinks drops links pointing off the page's host,
	// keeping their text. Images are left alone.
	ExcludeExternalLinks bool
	// ProcessIframes inlines same-origin iframe content into the page
	// before conversion. Requires the rendered path.
	ProcessIframes bool
	// RemoveOverlayElements strips modal/overlay nodes before conversion.
	// Requires the rendered path.
	RemoveOverlayElements bool
	CacheMode             CacheMode
}

// Result is one crawled page. Success=false carries the failure message and
// no markdown.
type Result struct {
	Success      bool
	URL          string
	Markdown     string
	ErrorMessage string
}

// Crawler fetches one URL and returns one or more page results.
type Crawler interface {
	Crawl(ctx context.Context, url string, cfg RunConfig) ([]Result, error)
}
