package metrics

import "time"

// NoopRecorder implements Recorder with no-op methods.
// It reports every endpoint as known so unwired callers never fail.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

// Known always reports true.
func (n *NoopRecorder) Known(endpoint Endpoint) bool { return true }

// IncRequest is a no-op.
func (n *NoopRecorder) IncRequest(endpoint Endpoint) error { return nil }

// IncError is a no-op.
func (n *NoopRecorder) IncError() {}

// ObserveDuration is a no-op.
func (n *NoopRecorder) ObserveDuration(endpoint Endpoint, duration time.Duration) {}
