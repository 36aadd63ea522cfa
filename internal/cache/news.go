package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sentinelai/sentinel/internal/model"
)

// newsItemsKey holds the aggregated, deduplicated, sorted news list.
const newsItemsKey = "news:items"

// ErrCacheMiss indicates the requested key is not cached.
var ErrCacheMiss = errors.New("cache miss")

// GetNewsItems retrieves the cached news list.
// Returns ErrCacheMiss if the list is absent or expired.
func (c *Cache) GetNewsItems(ctx context.Context) ([]model.NewsItem, error) {
	data, err := c.client.Get(ctx, newsItemsKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var items []model.NewsItem
	if err := json.Unmarshal(data, &items); err != nil {
		// A corrupt entry behaves like a miss; the caller will refresh it.
		return nil, ErrCacheMiss
	}

	return items, nil
}

// SetNewsItems stores the news list with the given TTL.
func (c *Cache) SetNewsItems(ctx context.Context, items []model.NewsItem, ttl time.Duration) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshal news items: %w", err)
	}

	if err := c.client.Set(ctx, newsItemsKey, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache news items: %w", err)
	}

	return nil
}
