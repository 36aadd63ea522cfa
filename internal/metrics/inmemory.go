package metrics

import (
	"sync/atomic"
	"time"
)

// InMemoryRecorder stores metrics in memory, for tests and the /metrics endpoint.
type InMemoryRecorder struct {
	newsCacheHits              int64
	newsCacheMisses            int64
	newsRefreshes              int64
	newsRefreshFailures        int64
	newsRefreshDurationCount   int64
	newsRefreshDurationTotalNs int64

	signups       int64
	logins        int64
	loginFailures int64
	oauthLogins   int64

	reposConnected int64
	waitlistJoined int64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	return Snapshot{
		NewsCacheHits:              atomic.LoadInt64(&m.newsCacheHits),
		NewsCacheMisses:            atomic.LoadInt64(&m.newsCacheMisses),
		NewsRefreshes:              atomic.LoadInt64(&m.newsRefreshes),
		NewsRefreshFailures:        atomic.LoadInt64(&m.newsRefreshFailures),
		NewsRefreshDurationCount:   atomic.LoadInt64(&m.newsRefreshDurationCount),
		NewsRefreshDurationTotalNs: atomic.LoadInt64(&m.newsRefreshDurationTotalNs),
		Signups:                    atomic.LoadInt64(&m.signups),
		Logins:                     atomic.LoadInt64(&m.logins),
		LoginFailures:              atomic.LoadInt64(&m.loginFailures),
		OAuthLogins:                atomic.LoadInt64(&m.oauthLogins),
		ReposConnected:             atomic.LoadInt64(&m.reposConnected),
		WaitlistJoined:             atomic.LoadInt64(&m.waitlistJoined),
	}
}

// IncNewsCacheHit increments the news cache hit counter.
func (m *InMemoryRecorder) IncNewsCacheHit() {
	atomic.AddInt64(&m.newsCacheHits, 1)
}

// IncNewsCacheMiss increments the news cache miss counter.
func (m *InMemoryRecorder) IncNewsCacheMiss() {
	atomic.AddInt64(&m.newsCacheMisses, 1)
}

// IncNewsRefresh increments the refresh counter for the given status.
func (m *InMemoryRecorder) IncNewsRefresh(status string) {
	if status == "success" {
		atomic.AddInt64(&m.newsRefreshes, 1)
		return
	}
	atomic.AddInt64(&m.newsRefreshFailures, 1)
}

// ObserveNewsRefreshDuration records a refresh duration.
func (m *InMemoryRecorder) ObserveNewsRefreshDuration(duration time.Duration) {
	atomic.AddInt64(&m.newsRefreshDurationCount, 1)
	atomic.AddInt64(&m.newsRefreshDurationTotalNs, duration.Nanoseconds())
}

// IncSignup increments the signup counter.
func (m *InMemoryRecorder) IncSignup() {
	atomic.AddInt64(&m.signups, 1)
}

// IncLogin increments the login counter for the given status.
func (m *InMemoryRecorder) IncLogin(status string) {
	if status == "success" {
		atomic.AddInt64(&m.logins, 1)
		return
	}
	atomic.AddInt64(&m.loginFailures, 1)
}

// IncOAuthLogin increments the OAuth login counter.
func (m *InMemoryRecorder) IncOAuthLogin() {
	atomic.AddInt64(&m.oauthLogins, 1)
}

// IncRepoConnected increments the repo connection counter.
func (m *InMemoryRecorder) IncRepoConnected() {
	atomic.AddInt64(&m.reposConnected, 1)
}

// IncWaitlistJoined increments the waitlist counter.
func (m *InMemoryRecorder) IncWaitlistJoined() {
	atomic.AddInt64(&m.waitlistJoined, 1)
}
