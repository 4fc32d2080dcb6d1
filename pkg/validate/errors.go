package validate

import (
	"errors"
	"strings"
)

// Error is the validation error raised synchronously when a caller
// registers a malformed mock, carrying every issue found (validation
// aggregates all issues at once rather than failing on the first).
type Error struct {
	Issues []Issue
}

func (e *Error) Error() string {
	lines := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		lines[i] = issue.String()
	}
	return strings.Join(lines, "\n")
}

// AsValidationError reports whether err is (or wraps) an *Error.
func AsValidationError(err error) (*Error, bool) {
	var ve *Error
	ok := errors.As(err, &ve)
	return ve, ok
}
