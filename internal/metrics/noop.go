package metrics

import "time"

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

// IncLoginEmailSent is a no-op.
func (n *NoopRecorder) IncLoginEmailSent() {}

// IncLoginEmailRejected is a no-op.
func (n *NoopRecorder) IncLoginEmailRejected() {}

// IncLoginSucceeded is a no-op.
func (n *NoopRecorder) IncLoginSucceeded() {}

// IncLoginTokenUnknown is a no-op.
func (n *NoopRecorder) IncLoginTokenUnknown() {}

// ObserveMailDuration is a no-op.
func (n *NoopRecorder) ObserveMailDuration(duration time.Duration) {}

// IncListCreated is a no-op.
func (n *NoopRecorder) IncListCreated(owned bool) {}

// IncItemAdded is a no-op.
func (n *NoopRecorder) IncItemAdded() {}

// IncItemRejected is a no-op.
func (n *NoopRecorder) IncItemRejected(reason string) {}

// IncListShared is a no-op.
func (n *NoopRecorder) IncListShared() {}

// IncShareRejected is a no-op.
func (n *NoopRecorder) IncShareRejected() {}
