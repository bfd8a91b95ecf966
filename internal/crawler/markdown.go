package crawler

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
)

// inlineLink matches markdown links and images; the optional leading "!"
// distinguishes images, which are never stripped.
var inlineLink = regexp.MustCompile(`!?\[([^\]]*)\]\((https?://[^)\s]+)[^)]*\)`)

// ConvertHTML turns raw page HTML into markdown and applies the run's
// content filters: excluded tags are stripped before conversion, external
// links and short noise blocks are pruned after.
func ConvertHTML(html string, pageURL string, cfg RunConfig) (string, error) {
	cleaned := stripTags(html, cfg.ExcludedTags)

	host := ""
	if u, err := url.Parse(pageURL); err == nil {
		host = u.Host
	}

	markdown, err := md.ConvertString(cleaned, converter.WithDomain(host))
	if err != nil {
		return "", fmt.Errorf("convert html: %w", err)
	}

	if cfg.ExcludeExternalLinks && host != "" {
		markdown = dropExternalLinks(markdown, host)
	}
	if cfg.WordCountThreshold > 0 {
		markdown = pruneShortBlocks(markdown, cfg.WordCountThreshold)
	}
	return markdown, nil
}

// stripTags removes whole elements by tag name. Matching is textual, which
// is enough for the tag-level exclusions this pipeline uses (form, header,
// nav and similar page chrome).
func stripTags(html string, tags []string) string {
	for _, tag := range tags {
		tag = strings.TrimSpace(strings.ToLower(tag))
		if tag == "" {
			continue
		}
		re, err := regexp.Compile(`(?is)<` + regexp.QuoteMeta(tag) + `\b[^>]*>.*?</` + regexp.QuoteMeta(tag) + `>`)
		if err != nil {
			continue
		}
		html = re.ReplaceAllString(html, "")
	}
	return html
}

// dropExternalLinks replaces links whose host differs from the page host
// with their link text. Images keep their URLs regardless of host.
func dropExternalLinks(markdown, host string) string {
	return inlineLink.ReplaceAllStringFunc(markdown, func(match string) string {
		if strings.HasPrefix(match, "!") {
			return match
		}
		sub := inlineLink.FindStringSubmatch(match)
		if sub == nil {
			return match
		}
		u, err := url.Parse(sub[2])
		if err != nil || sameHost(u.Host, host) {
			return match
		}
		return sub[1]
	})
}

func sameHost(a, b string) bool {
	trim := func(h string) string { return strings.TrimPrefix(strings.ToLower(h), "www.") }
	return trim(a) == trim(b)
}

// pruneShortBlocks removes blocks below the word threshold unless they carry
// structure worth keeping: headings, links, or images.
func pruneShortBlocks(markdown string, threshold int) string {
	blocks := strings.Split(markdown, "\n\n")
	kept := make([]string, 0, len(blocks))
	for _, block := range blocks {
		trimmed := strings.TrimSpace(block)
		if trimmed == "" {
			continue
		}
		if len(strings.Fields(trimmed)) >= threshold ||
			strings.HasPrefix(trimmed, "#") ||
			strings.Contains(trimmed, "](") {
			kept = append(kept, block)
		}
	}
	return strings.Join(kept, "\n\n")
}
