package netmock

import "strings"

// PendingMockError is raised by AssertDone or Set.Reset when one or
// more mocks never matched. Its message enumerates each unmatched mock
// using its printable form verbatim.
type PendingMockError struct {
	Pending []Entry
}

func newPendingMockError(pending []Entry) *PendingMockError {
	return &PendingMockError{Pending: pending}
}

func (e *PendingMockError) Error() string {
	forms := make([]string, len(e.Pending))
	for i, entry := range e.Pending {
		forms[i] = entry.String()
	}
	return "pending mock(s) were never matched:\n" + strings.Join(forms, "\n")
}
