package model

import "time"

// NewsItem is a single aggregated feed entry. Items are not persisted;
// the aggregated list lives in the Redis cache only.
type NewsItem struct {
	Title       string    `json:"title"`
	Link        string    `json:"link"`
	Published   string    `json:"published,omitempty"`
	PublishedAt time.Time `json:"published_at"`
	Source      string    `json:"source"`
}

// HasTimestamp reports whether the item carried a parsable publication date.
func (n *NewsItem) HasTimestamp() bool {
	return !n.PublishedAt.IsZero()
}
