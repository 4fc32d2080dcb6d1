package netmock

import "sync/atomic"

// Entry is anything that can live in a Set: an HTTP or TCP mock.
// String must return the mock's printable form ("HTTP{<k=v>...}" /
// "TCP{<k=v>...}", callables shown by source name), since
// PendingMockError messages embed it verbatim.
type Entry interface {
	ID() string
	Done() bool
	// TryMark attempts the pending->matched transition, returning true
	// only to the caller that won the race.
	TryMark() bool
	String() string
}

// Flag is the single pending->matched transition every mock carries.
// It is implemented with a CompareAndSwap so the transition happens at
// most once even under concurrent matching attempts, and is observable
// before the response is written, so a concurrent request cannot
// re-match the same mock.
type Flag struct {
	matched atomic.Bool
}

// Done reports whether the mock has already matched.
func (f *Flag) Done() bool { return f.matched.Load() }

// TryMark attempts the pending->matched transition, returning true
// only for the caller that won the race. Across a mock's lifetime the
// number of pending->matched transitions is 0 or 1.
func (f *Flag) TryMark() bool {
	return f.matched.CompareAndSwap(false, true)
}
