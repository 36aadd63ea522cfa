// Package news aggregates security and AI news from RSS/Atom feeds.
package news

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
	"golang.org/x/sync/errgroup"

	"github.com/sentinelai/sentinel/internal/model"
)

// DefaultFeedTimeout bounds a single feed fetch.
const DefaultFeedTimeout = 8 * time.Second

// Fetcher downloads and parses RSS/Atom feeds.
type Fetcher struct {
	client  *http.Client
	logger  *slog.Logger
	timeout time.Duration
}

// NewFetcher creates a Fetcher with sane HTTP timeouts.
func NewFetcher(logger *slog.Logger) *Fetcher {
	return &Fetcher{
		client: &http.Client{
			Timeout: DefaultFeedTimeout,
		},
		logger:  logger.With("component", "news.fetcher"),
		timeout: DefaultFeedTimeout,
	}
}

// FetchAll fetches every feed concurrently and returns the merged item list.
// Individual feed failures are logged and skipped; the merge never fails as
// long as the context is alive.
func (f *Fetcher) FetchAll(ctx context.Context, feedURLs []string) []model.NewsItem {
	results := make([][]model.NewsItem, len(feedURLs))

	g, gctx := errgroup.WithContext(ctx)
	for i, feedURL := range feedURLs {
		i, feedURL := i, feedURL
		g.Go(func() error {
			items, err := f.fetchFeed(gctx, feedURL)
			if err != nil {
				f.logger.Warn("feed fetch failed",
					slog.String("feed", feedURL),
					slog.String("error", err.Error()),
				)
				return nil
			}
			results[i] = items
			return nil
		})
	}
	_ = g.Wait()

	var merged []model.NewsItem
	for _, items := range results {
		merged = append(merged, items...)
	}

	return merged
}

// fetchFeed downloads and parses a single feed.
func (f *Fetcher) fetchFeed(ctx context.Context, feedURL string) ([]model.NewsItem, error) {
	fctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	parser := gofeed.NewParser()
	parser.Client = f.client

	feed, err := parser.ParseURLWithContext(feedURL, fctx)
	if err != nil {
		return nil, err
	}

	items := make([]model.NewsItem, 0, len(feed.Items))
	for _, entry := range feed.Items {
		title := strings.TrimSpace(entry.Title)
		link := strings.TrimSpace(entry.Link)
		if title == "" || link == "" {
			continue
		}

		item := model.NewsItem{
			Title:     title,
			Link:      link,
			Published: entry.Published,
			Source:    sourceDomain(link, feedURL),
		}
		if entry.Published == "" {
			item.Published = entry.Updated
		}
		if entry.PublishedParsed != nil {
			item.PublishedAt = entry.PublishedParsed.UTC()
		} else if entry.UpdatedParsed != nil {
			item.PublishedAt = entry.UpdatedParsed.UTC()
		}

		items = append(items, item)
	}

	return items, nil
}

// sourceDomain derives a display source from the item link,
// falling back to the feed URL.
func sourceDomain(link, feedURL string) string {
	if host := hostOf(link); host != "" {
		return host
	}
	return hostOf(feedURL)
}

func hostOf(raw string) string {
	parsed, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(parsed.Hostname(), "www.")
}
