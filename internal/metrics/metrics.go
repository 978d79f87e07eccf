// Package metrics provides lightweight hooks for instrumentation.
package metrics

import "time"

// Item rejection reasons.
const (
	RejectEmpty     = "empty"
	RejectDuplicate = "duplicate"
)

// Recorder captures metric events for the application.
type Recorder interface {
	// Login flow
	IncLoginEmailSent()
	IncLoginEmailRejected()
	IncLoginSucceeded()
	IncLoginTokenUnknown()
	ObserveMailDuration(duration time.Duration)

	// List activity
	IncListCreated(owned bool)
	IncItemAdded()
	IncItemRejected(reason string) // reason: "empty" or "duplicate"
	IncListShared()
	IncShareRejected()
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}
