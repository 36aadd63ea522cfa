// Package metrics provides lightweight hooks for instrumentation.
package metrics

import "time"

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus, StatsD, etc.
type Recorder interface {
	// News aggregation metrics
	IncNewsCacheHit()
	IncNewsCacheMiss()
	IncNewsRefresh(status string) // status: "success" or "failed"
	ObserveNewsRefreshDuration(duration time.Duration)

	// Auth metrics
	IncSignup()
	IncLogin(status string) // status: "success" or "failed"
	IncOAuthLogin()

	// Product metrics
	IncRepoConnected()
	IncWaitlistJoined()
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}

// Snapshot is a point-in-time copy of all counters.
type Snapshot struct {
	NewsCacheHits              int64
	NewsCacheMisses            int64
	NewsRefreshes              int64
	NewsRefreshFailures        int64
	NewsRefreshDurationCount   int64
	NewsRefreshDurationTotalNs int64

	Signups       int64
	Logins        int64
	LoginFailures int64
	OAuthLogins   int64

	ReposConnected  int64
	WaitlistJoined  int64
}
