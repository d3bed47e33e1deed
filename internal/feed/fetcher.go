package feed

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
)

// Entry is one feed item reduced to what becomes a question.
type Entry struct {
	URL         string
	Title       string
	Author      string
	PublishedAt time.Time
	Content     string
	Categories  []string
}

type Fetcher struct {
	parser  *gofeed.Parser
	client  *http.Client
	timeout time.Duration
}

func NewFetcher(timeout time.Duration, userAgent string) *Fetcher {
	client := &http.Client{Timeout: timeout}
	parser := gofeed.NewParser()
	parser.Client = client
	parser.UserAgent = userAgent

	return &Fetcher{
		parser:  parser,
		client:  client,
		timeout: timeout,
	}
}

func (f *Fetcher) FetchFeed(ctx context.Context, feedURL string) ([]Entry, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	feed, err := f.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	var entries []Entry
	for _, item := range feed.Items {
		entry := Entry{
			URL:   item.Link,
			Title: strings.TrimSpace(item.Title),
		}

		if item.Author != nil {
			entry.Author = item.Author.Name
		} else if len(feed.Authors) > 0 {
			entry.Author = feed.Authors[0].Name
		}

		if item.PublishedParsed != nil {
			entry.PublishedAt = *item.PublishedParsed
		} else if item.UpdatedParsed != nil {
			entry.PublishedAt = *item.UpdatedParsed
		} else {
			entry.PublishedAt = time.Now()
		}

		if item.Content != "" {
			entry.Content = item.Content
		} else {
			entry.Content = item.Description
		}

		for _, c := range item.Categories {
			if c = strings.TrimSpace(c); c != "" {
				entry.Categories = append(entry.Categories, c)
			}
		}

		entries = append(entries, entry)
	}

	return entries, nil
}
