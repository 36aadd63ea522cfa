package news

import (
	"sort"

	"github.com/sentinelai/sentinel/internal/model"
)

// Pagination bounds for GET /api/news.
const (
	DefaultPageSize = 12
	MaxPageSize     = 50
)

// Aggregate sorts items newest-first and removes duplicate links.
// The sort is stable, so items without a parsable publication date keep
// their feed order and sink to the end. For duplicate links the newest
// (first after sorting) item wins.
func Aggregate(items []model.NewsItem) []model.NewsItem {
	sorted := make([]model.NewsItem, len(items))
	copy(sorted, items)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.HasTimestamp() != b.HasTimestamp() {
			return a.HasTimestamp()
		}
		return a.PublishedAt.After(b.PublishedAt)
	})

	seen := make(map[string]struct{}, len(sorted))
	deduped := sorted[:0]
	for _, item := range sorted {
		if _, ok := seen[item.Link]; ok {
			continue
		}
		seen[item.Link] = struct{}{}
		deduped = append(deduped, item)
	}

	return deduped
}

// NormalizePage clamps page and page_size to their allowed ranges.
func NormalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return page, pageSize
}

// Page returns the requested slice of items. Pages past the end are empty.
func Page(items []model.NewsItem, page, pageSize int) []model.NewsItem {
	start := (page - 1) * pageSize
	if start >= len(items) {
		return []model.NewsItem{}
	}

	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}

	return items[start:end]
}

// TotalPages computes the page count for the given total and page size.
func TotalPages(total, pageSize int) int {
	if total == 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}
