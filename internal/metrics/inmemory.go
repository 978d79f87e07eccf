package metrics

import (
	"sync/atomic"
	"time"
)

// Snapshot captures current in-memory counters.
type Snapshot struct {
	LoginEmailsSent     uint64
	LoginEmailsRejected uint64
	LoginsSucceeded     uint64
	LoginTokensUnknown  uint64
	MailDurationCount   uint64
	MailDurationTotalNs int64
	ListsCreatedOwned   uint64
	ListsCreatedAnon    uint64
	ItemsAdded          uint64
	ItemsRejectedEmpty  uint64
	ItemsRejectedDup    uint64
	ListsShared         uint64
	SharesRejected      uint64
}

// InMemoryRecorder stores metrics in memory for tests.
type InMemoryRecorder struct {
	loginEmailsSent     uint64
	loginEmailsRejected uint64
	loginsSucceeded     uint64
	loginTokensUnknown  uint64
	mailDurationCount   uint64
	mailDurationTotalNs int64
	listsCreatedOwned   uint64
	listsCreatedAnon    uint64
	itemsAdded          uint64
	itemsRejectedEmpty  uint64
	itemsRejectedDup    uint64
	listsShared         uint64
	sharesRejected      uint64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	return Snapshot{
		LoginEmailsSent:     atomic.LoadUint64(&m.loginEmailsSent),
		LoginEmailsRejected: atomic.LoadUint64(&m.loginEmailsRejected),
		LoginsSucceeded:     atomic.LoadUint64(&m.loginsSucceeded),
		LoginTokensUnknown:  atomic.LoadUint64(&m.loginTokensUnknown),
		MailDurationCount:   atomic.LoadUint64(&m.mailDurationCount),
		MailDurationTotalNs: atomic.LoadInt64(&m.mailDurationTotalNs),
		ListsCreatedOwned:   atomic.LoadUint64(&m.listsCreatedOwned),
		ListsCreatedAnon:    atomic.LoadUint64(&m.listsCreatedAnon),
		ItemsAdded:          atomic.LoadUint64(&m.itemsAdded),
		ItemsRejectedEmpty:  atomic.LoadUint64(&m.itemsRejectedEmpty),
		ItemsRejectedDup:    atomic.LoadUint64(&m.itemsRejectedDup),
		ListsShared:         atomic.LoadUint64(&m.listsShared),
		SharesRejected:      atomic.LoadUint64(&m.sharesRejected),
	}
}

// IncLoginEmailSent increments the sent login email counter.
func (m *InMemoryRecorder) IncLoginEmailSent() {
	atomic.AddUint64(&m.loginEmailsSent, 1)
}

// IncLoginEmailRejected increments the rejected login email counter.
func (m *InMemoryRecorder) IncLoginEmailRejected() {
	atomic.AddUint64(&m.loginEmailsRejected, 1)
}

// IncLoginSucceeded increments the successful login counter.
func (m *InMemoryRecorder) IncLoginSucceeded() {
	atomic.AddUint64(&m.loginsSucceeded, 1)
}

// IncLoginTokenUnknown increments the unknown token counter.
func (m *InMemoryRecorder) IncLoginTokenUnknown() {
	atomic.AddUint64(&m.loginTokensUnknown, 1)
}

// ObserveMailDuration records a mail delivery duration.
func (m *InMemoryRecorder) ObserveMailDuration(duration time.Duration) {
	atomic.AddUint64(&m.mailDurationCount, 1)
	atomic.AddInt64(&m.mailDurationTotalNs, duration.Nanoseconds())
}

// IncListCreated increments the list creation counter.
func (m *InMemoryRecorder) IncListCreated(owned bool) {
	if owned {
		atomic.AddUint64(&m.listsCreatedOwned, 1)
	} else {
		atomic.AddUint64(&m.listsCreatedAnon, 1)
	}
}

// IncItemAdded increments the item counter.
func (m *InMemoryRecorder) IncItemAdded() {
	atomic.AddUint64(&m.itemsAdded, 1)
}

// IncItemRejected increments an item rejection counter.
func (m *InMemoryRecorder) IncItemRejected(reason string) {
	switch reason {
	case RejectDuplicate:
		atomic.AddUint64(&m.itemsRejectedDup, 1)
	default:
		atomic.AddUint64(&m.itemsRejectedEmpty, 1)
	}
}

// IncListShared increments the share counter.
func (m *InMemoryRecorder) IncListShared() {
	atomic.AddUint64(&m.listsShared, 1)
}

// IncShareRejected increments the rejected share counter.
func (m *InMemoryRecorder) IncShareRejected() {
	atomic.AddUint64(&m.sharesRejected, 1)
}
