package handler

import (
	"fmt"
	"net/http"

	"github.com/sentinelai/sentinel/internal/metrics"
)

// MetricsHandler exposes in-memory metrics.
type MetricsHandler struct {
	snapshotter metrics.Snapshotter
}

// NewMetricsHandler creates a new MetricsHandler.
func NewMetricsHandler(snapshotter metrics.Snapshotter) *MetricsHandler {
	return &MetricsHandler{snapshotter: snapshotter}
}

// Metrics returns metrics in Prometheus exposition format.
func (h *MetricsHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	if h.snapshotter == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	snap := h.snapshotter.Snapshot()

	w.Header().Set("Content-Type", "text/plain; version=0.0.4")

	writeMetric(w, "sentinel_news_cache_hits_total %d\n", snap.NewsCacheHits)
	writeMetric(w, "sentinel_news_cache_misses_total %d\n", snap.NewsCacheMisses)
	writeMetric(w, "sentinel_news_refreshes_total{status=\"success\"} %d\n", snap.NewsRefreshes)
	writeMetric(w, "sentinel_news_refreshes_total{status=\"failed\"} %d\n", snap.NewsRefreshFailures)
	writeMetric(w, "sentinel_news_refresh_duration_seconds_count %d\n", snap.NewsRefreshDurationCount)
	writeMetric(w, "sentinel_news_refresh_duration_seconds_sum %.6f\n", float64(snap.NewsRefreshDurationTotalNs)/1e9)

	writeMetric(w, "sentinel_signups_total %d\n", snap.Signups)
	writeMetric(w, "sentinel_logins_total{status=\"success\"} %d\n", snap.Logins)
	writeMetric(w, "sentinel_logins_total{status=\"failed\"} %d\n", snap.LoginFailures)
	writeMetric(w, "sentinel_oauth_logins_total %d\n", snap.OAuthLogins)

	writeMetric(w, "sentinel_repos_connected_total %d\n", snap.ReposConnected)
	writeMetric(w, "sentinel_waitlist_joined_total %d\n", snap.WaitlistJoined)
}

func writeMetric(w http.ResponseWriter, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
