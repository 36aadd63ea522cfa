package news

import (
	"testing"
	"time"

	"github.com/sentinelai/sentinel/internal/model"
)

func item(title, link string, published time.Time) model.NewsItem {
	return model.NewsItem{
		Title:       title,
		Link:        link,
		PublishedAt: published,
		Source:      "example.com",
	}
}

func TestAggregate_SortsNewestFirst(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()
	items := []model.NewsItem{
		item("old", "https://example.com/old", now.Add(-2*time.Hour)),
		item("new", "https://example.com/new", now),
		item("mid", "https://example.com/mid", now.Add(-time.Hour)),
	}

	got := Aggregate(items)
	if len(got) != 3 {
		t.Fatalf("expected 3 items, got %d", len(got))
	}

	want := []string{"new", "mid", "old"}
	for i, title := range want {
		if got[i].Title != title {
			t.Errorf("position %d: expected %q, got %q", i, title, got[i].Title)
		}
	}
}

func TestAggregate_DedupesByLink(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()
	items := []model.NewsItem{
		item("from feed A", "https://example.com/story", now.Add(-time.Hour)),
		item("from feed B", "https://example.com/story", now),
		item("other", "https://example.com/other", now.Add(-time.Minute)),
	}

	got := Aggregate(items)
	if len(got) != 2 {
		t.Fatalf("expected 2 items after dedupe, got %d", len(got))
	}

	// The newest duplicate wins.
	if got[0].Title != "from feed B" {
		t.Errorf("expected newest duplicate to win, got %q", got[0].Title)
	}
}

func TestAggregate_UndatedItemsSinkStably(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()
	items := []model.NewsItem{
		item("undated one", "https://example.com/u1", time.Time{}),
		item("dated", "https://example.com/dated", now),
		item("undated two", "https://example.com/u2", time.Time{}),
	}

	got := Aggregate(items)
	if got[0].Title != "dated" {
		t.Errorf("dated item should be first, got %q", got[0].Title)
	}
	if got[1].Title != "undated one" || got[2].Title != "undated two" {
		t.Errorf("undated items should keep insertion order, got %q then %q", got[1].Title, got[2].Title)
	}
}

func TestNormalizePage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		page, size   int
		wantPage     int
		wantPageSize int
	}{
		{"defaults preserved", 1, 12, 1, 12},
		{"zero page", 0, 12, 1, 12},
		{"negative page", -5, 12, 1, 12},
		{"zero size", 1, 0, 1, DefaultPageSize},
		{"oversized clamped to max", 1, 500, 1, MaxPageSize},
		{"max size allowed", 2, MaxPageSize, 2, MaxPageSize},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			page, size := NormalizePage(tt.page, tt.size)
			if page != tt.wantPage || size != tt.wantPageSize {
				t.Errorf("NormalizePage(%d, %d) = (%d, %d), want (%d, %d)",
					tt.page, tt.size, page, size, tt.wantPage, tt.wantPageSize)
			}
		})
	}
}

func TestPage(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()
	items := make([]model.NewsItem, 25)
	for i := range items {
		items[i] = item("story", "https://example.com/s", now)
	}

	if got := Page(items, 1, 12); len(got) != 12 {
		t.Errorf("page 1: expected 12 items, got %d", len(got))
	}
	if got := Page(items, 3, 12); len(got) != 1 {
		t.Errorf("page 3: expected 1 item, got %d", len(got))
	}
	if got := Page(items, 4, 12); len(got) != 0 {
		t.Errorf("overflow page: expected 0 items, got %d", len(got))
	}
	if got := Page(nil, 1, 12); len(got) != 0 {
		t.Errorf("empty list: expected 0 items, got %d", len(got))
	}
}

func TestTotalPages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		total, size, want int
	}{
		{0, 12, 0},
		{1, 12, 1},
		{12, 12, 1},
		{13, 12, 2},
		{25, 12, 3},
	}

	for _, tt := range tests {
		if got := TotalPages(tt.total, tt.size); got != tt.want {
			t.Errorf("TotalPages(%d, %d) = %d, want %d", tt.total, tt.size, got, tt.want)
		}
	}
}
