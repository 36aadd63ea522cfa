package metrics

import "time"

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

// IncNewsCacheHit is a no-op.
func (n *NoopRecorder) IncNewsCacheHit() {}

// IncNewsCacheMiss is a no-op.
func (n *NoopRecorder) IncNewsCacheMiss() {}

// IncNewsRefresh is a no-op.
func (n *NoopRecorder) IncNewsRefresh(status string) {}

// ObserveNewsRefreshDuration is a no-op.
func (n *NoopRecorder) ObserveNewsRefreshDuration(duration time.Duration) {}

// IncSignup is a no-op.
func (n *NoopRecorder) IncSignup() {}

// IncLogin is a no-op.
func (n *NoopRecorder) IncLogin(status string) {}

// IncOAuthLogin is a no-op.
func (n *NoopRecorder) IncOAuthLogin() {}

// IncRepoConnected is a no-op.
func (n *NoopRecorder) IncRepoConnected() {}

// IncWaitlistJoined is a no-op.
func (n *NoopRecorder) IncWaitlistJoined() {}
