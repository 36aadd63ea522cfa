//go:build integration

package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sentinelai/sentinel/internal/model"
	"github.com/sentinelai/sentinel/internal/testutil"
)

func newCacheTestEnv(t *testing.T) (context.Context, *Cache) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}

	ctx := context.Background()
	redisURL := testutil.RequireEnv(t, "REDIS_URL")

	c, err := New(ctx, redisURL)
	if err != nil {
		t.Fatalf("connect redis: %v", err)
	}
	t.Cleanup(func() {
		_ = c.Close()
	})

	if err := testutil.FlushRedis(ctx, c.Client()); err != nil {
		t.Fatalf("flush redis: %v", err)
	}

	return ctx, c
}

func TestIntegrationNewsCache_MissThenHit(t *testing.T) {
	ctx, c := newCacheTestEnv(t)

	if _, err := c.GetNewsItems(ctx); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("expected ErrCacheMiss on empty cache, got: %v", err)
	}

	items := []model.NewsItem{
		{
			Title:       "Critical RCE patched",
			Link:        "https://feeds.example/items/1",
			Published:   "Mon, 02 Jan 2006 15:04:05 MST",
			PublishedAt: time.Now().UTC().Truncate(time.Second),
			Source:      "feeds.example",
		},
	}

	if err := c.SetNewsItems(ctx, items, time.Minute); err != nil {
		t.Fatalf("SetNewsItems failed: %v", err)
	}

	got, err := c.GetNewsItems(ctx)
	if err != nil {
		t.Fatalf("GetNewsItems failed: %v", err)
	}

	if len(got) != 1 {
		t.Fatalf("expected 1 item, got %d", len(got))
	}
	if got[0].Link != items[0].Link {
		t.Errorf("Link = %q, want %q", got[0].Link, items[0].Link)
	}
	if got[0].Source != items[0].Source {
		t.Errorf("Source = %q, want %q", got[0].Source, items[0].Source)
	}
}

func TestIntegrationNewsCache_EmptyListIsCacheable(t *testing.T) {
	ctx, c := newCacheTestEnv(t)

	if err := c.SetNewsItems(ctx, []model.NewsItem{}, time.Minute); err != nil {
		t.Fatalf("SetNewsItems failed: %v", err)
	}

	got, err := c.GetNewsItems(ctx)
	if err != nil {
		t.Fatalf("GetNewsItems failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty list, got %d items", len(got))
	}
}

func TestIntegrationNewsCache_TTLExpiry(t *testing.T) {
	ctx, c := newCacheTestEnv(t)

	items := []model.NewsItem{{Title: "short lived", Link: "https://feeds.example/ttl"}}
	if err := c.SetNewsItems(ctx, items, time.Second); err != nil {
		t.Fatalf("SetNewsItems failed: %v", err)
	}

	time.Sleep(1500 * time.Millisecond)

	if _, err := c.GetNewsItems(ctx); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("expected ErrCacheMiss after TTL, got: %v", err)
	}
}

func TestIntegrationRateLimit_BurstThenBlocked(t *testing.T) {
	ctx, c := newCacheTestEnv(t)

	ip := "203.0.113.7"
	const burst = 3

	for i := 0; i < burst; i++ {
		result, err := c.CheckAuthRateLimit(ctx, ip, 1, burst)
		if err != nil {
			t.Fatalf("CheckAuthRateLimit failed: %v", err)
		}
		if !result.Allowed {
			t.Fatalf("request %d should be within the burst", i+1)
		}
	}

	result, err := c.CheckAuthRateLimit(ctx, ip, 1, burst)
	if err != nil {
		t.Fatalf("CheckAuthRateLimit failed: %v", err)
	}
	if result.Allowed {
		t.Error("request beyond burst should be blocked")
	}
	if result.RetryAfter <= 0 {
		t.Errorf("RetryAfter = %v, want > 0", result.RetryAfter)
	}
}

func TestIntegrationRateLimit_SeparateIPs(t *testing.T) {
	ctx, c := newCacheTestEnv(t)

	const burst = 1

	if result, _ := c.CheckAuthRateLimit(ctx, "203.0.113.1", 1, burst); !result.Allowed {
		t.Fatal("first IP should be allowed")
	}
	if result, _ := c.CheckAuthRateLimit(ctx, "203.0.113.2", 1, burst); !result.Allowed {
		t.Error("second IP has its own bucket and should be allowed")
	}
}
