package feed

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Stack Exchange sites publish their question feed under /feeds.
var feedPatterns = []string{
	"/feeds",
	"/feed",
	"/feed.xml",
	"/atom.xml",
	"/rss.xml",
	"/rss",
	"/index.xml",
}

// DiscoverFeed finds the feed of a site, first from its alternate links and
// then by probing common paths.
func (f *Fetcher) DiscoverFeed(ctx context.Context, siteURL string) (string, error) {
	base, err := url.Parse(siteURL)
	if err != nil {
		return "", fmt.Errorf("invalid site url: %w", err)
	}

	if href := f.alternateLink(ctx, siteURL); href != "" {
		ref, err := url.Parse(href)
		if err == nil {
			return base.ResolveReference(ref).String(), nil
		}
	}

	root := strings.TrimSuffix(siteURL, "/")
	for _, pattern := range feedPatterns {
		feedURL := root + pattern
		req, err := http.NewRequestWithContext(ctx, http.MethodHead, feedURL, nil)
		if err != nil {
			continue
		}
		resp, err := f.client.Do(req)
		if err != nil {
			continue
		}
		resp.Body.Close()
		if resp.StatusCode == http.StatusOK {
			return feedURL, nil
		}
	}

	return "", fmt.Errorf("could not discover feed for %s", siteURL)
}

func (f *Fetcher) alternateLink(ctx context.Context, siteURL string) string {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, siteURL, nil)
	if err != nil {
		return ""
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return ""
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return ""
	}
	href, _ := doc.Find(`link[rel="alternate"][type="application/atom+xml"], link[rel="alternate"][type="application/rss+xml"]`).First().Attr("href")
	return href
}
