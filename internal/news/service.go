package news

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/sentinelai/sentinel/internal/cache"
	"github.com/sentinelai/sentinel/internal/metrics"
	"github.com/sentinelai/sentinel/internal/model"
)

// Service serves the aggregated news list with a Redis-backed cache.
type Service struct {
	fetcher *Fetcher
	cache   *cache.Cache
	feeds   []string
	ttl     time.Duration
	logger  *slog.Logger
	metrics metrics.Recorder

	// refreshMu single-flights cache refreshes so concurrent misses
	// trigger one upstream fetch, not one per request.
	refreshMu sync.Mutex
}

// NewService creates a news Service.
func NewService(fetcher *Fetcher, cacheClient *cache.Cache, feeds []string, ttl time.Duration, logger *slog.Logger, recorder metrics.Recorder) *Service {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &Service{
		fetcher: fetcher,
		cache:   cacheClient,
		feeds:   feeds,
		ttl:     ttl,
		logger:  logger.With("component", "news.service"),
		metrics: recorder,
	}
}

// PageResult is one page of the aggregated news list.
type PageResult struct {
	Items      []model.NewsItem
	Page       int
	PageSize   int
	Total      int
	TotalPages int
}

// GetPage returns a page of cached news, refreshing the cache on a miss.
func (s *Service) GetPage(ctx context.Context, page, pageSize int) (*PageResult, error) {
	page, pageSize = NormalizePage(page, pageSize)

	items, err := s.cache.GetNewsItems(ctx)
	if err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) {
			// Degraded cache: refresh from the feeds directly.
			s.logger.Warn("news cache unavailable", slog.String("error", err.Error()))
		}
		s.metrics.IncNewsCacheMiss()

		items, err = s.Refresh(ctx)
		if err != nil {
			return nil, err
		}
	} else {
		s.metrics.IncNewsCacheHit()
	}

	return &PageResult{
		Items:      Page(items, page, pageSize),
		Page:       page,
		PageSize:   pageSize,
		Total:      len(items),
		TotalPages: TotalPages(len(items), pageSize),
	}, nil
}

// Refresh fetches all feeds, aggregates them, and rewrites the cache.
// Concurrent callers share a single fetch.
func (s *Service) Refresh(ctx context.Context) ([]model.NewsItem, error) {
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	// A competing refresh may have repopulated the cache while we waited.
	if items, err := s.cache.GetNewsItems(ctx); err == nil {
		return items, nil
	}

	start := time.Now()

	fetched := s.fetcher.FetchAll(ctx, s.feeds)
	if len(fetched) == 0 && ctx.Err() != nil {
		s.metrics.IncNewsRefresh("failed")
		return nil, fmt.Errorf("news refresh aborted: %w", ctx.Err())
	}

	items := Aggregate(fetched)

	if err := s.cache.SetNewsItems(ctx, items, s.ttl); err != nil {
		// Serve the fresh list even if caching it failed.
		s.logger.Warn("failed to cache news items", slog.String("error", err.Error()))
	}

	s.metrics.IncNewsRefresh("success")
	s.metrics.ObserveNewsRefreshDuration(time.Since(start))

	s.logger.Info("news refreshed",
		slog.Int("feeds", len(s.feeds)),
		slog.Int("items", len(items)),
		slog.Float64("duration_ms", float64(time.Since(start).Microseconds())/1000),
	)

	return items, nil
}

// ForceRefresh rewrites the cache unconditionally. Used by the background refresher.
func (s *Service) ForceRefresh(ctx context.Context) error {
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	start := time.Now()

	fetched := s.fetcher.FetchAll(ctx, s.feeds)
	if ctx.Err() != nil {
		s.metrics.IncNewsRefresh("failed")
		return fmt.Errorf("news refresh aborted: %w", ctx.Err())
	}
	if len(fetched) == 0 {
		// Keep the previous cache entry alive rather than publishing an
		// empty list when every feed is down.
		s.metrics.IncNewsRefresh("failed")
		return errors.New("all feeds failed")
	}

	items := Aggregate(fetched)
	if err := s.cache.SetNewsItems(ctx, items, s.ttl); err != nil {
		s.metrics.IncNewsRefresh("failed")
		return fmt.Errorf("cache news items: %w", err)
	}

	s.metrics.IncNewsRefresh("success")
	s.metrics.ObserveNewsRefreshDuration(time.Since(start))

	return nil
}
