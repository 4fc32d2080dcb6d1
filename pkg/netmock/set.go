package netmock

import (
	"sync"

	"github.com/netstub/netstub/pkg/logging"
)

// Set is the ordered collection of mocks a listener owns. Registration
// appends; matching scans in strict insertion order, which ties break
// in favor of the earliest-registered eligible mock.
type Set struct {
	mu      sync.Mutex
	entries []Entry
}

// NewSet creates an empty mock set.
func NewSet() *Set { return &Set{} }

// Register appends e to the set.
func (s *Set) Register(e Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, e)
}

// FindAndMark scans entries in insertion order and, for the first one
// eligible (still pending and satisfying candidate), atomically marks
// it matched and returns it. Returns nil if none are eligible. The
// scan-and-mark happens under s.mu: a simple mutual-exclusion
// discipline is sufficient since matching never blocks.
func (s *Set) FindAndMark(candidate func(Entry) bool) Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.entries {
		if e.Done() {
			continue
		}
		if !candidate(e) {
			continue
		}
		if e.TryMark() {
			return e
		}
	}
	return nil
}

// All returns a snapshot of every registered entry, in insertion order.
func (s *Set) All() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Reset drains the set. If throwOnPending is true and any entry is
// still pending, it returns a *PendingMockError naming each one; the
// set is cleared regardless, so a failing reset is not retryable. If
// throwOnPending is false, pending entries are logged on
// pkg/logging.General and discarded without an error.
func (s *Set) Reset(throwOnPending bool) error {
	s.mu.Lock()
	pending := make([]Entry, 0)
	for _, e := range s.entries {
		if !e.Done() {
			pending = append(pending, e)
		}
	}
	s.entries = nil
	s.mu.Unlock()

	if len(pending) > 0 && throwOnPending {
		return newPendingMockError(pending)
	}
	for _, e := range pending {
		logging.General().Debug("reset discarded pending mock", "mock", e.String())
	}
	return nil
}

// AssertDone reports a *PendingMockError naming e if it is still
// pending, mirroring reset's diagnostic but scoped to a single mock.
func AssertDone(e Entry) error {
	if e.Done() {
		return nil
	}
	return newPendingMockError([]Entry{e})
}
