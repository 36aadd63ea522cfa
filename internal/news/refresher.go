package news

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// DefaultRefreshInterval is how often the cache is re-warmed.
const DefaultRefreshInterval = 5 * time.Minute

// Refresher keeps the news cache warm in the background so request paths
// rarely pay the multi-feed fetch cost.
type Refresher struct {
	svc      *Service
	logger   *slog.Logger
	interval time.Duration
	started  bool
}

// NewRefresher creates a background cache refresher.
func NewRefresher(svc *Service, logger *slog.Logger, interval time.Duration) *Refresher {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}
	return &Refresher{
		svc:      svc,
		logger:   logger.With("component", "news.refresher"),
		interval: interval,
	}
}

// Run starts the refresh loop. Blocks until the context is cancelled.
// The first refresh happens immediately so the cache is warm at startup.
func (r *Refresher) Run(ctx context.Context) error {
	if r.started {
		return errors.New("refresher already started")
	}
	r.started = true

	r.logger.Info("news refresher started", slog.Duration("interval", r.interval))

	r.refreshOnce(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("news refresher stopping")
			return ctx.Err()
		case <-ticker.C:
			r.refreshOnce(ctx)
		}
	}
}

func (r *Refresher) refreshOnce(ctx context.Context) {
	if err := r.svc.ForceRefresh(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		r.logger.Error("refresh failed", slog.String("error", err.Error()))
	}
}
