package validate

// Conform is the top-level adapter: it applies pred to value and
// either returns the conformed value, or a non-nil *Error carrying
// every issue found, newline-joined by Error.Error().
func Conform(pred Predicate, value any) (any, error) {
	conformed, issues := pred(value, nil)
	if len(issues) > 0 {
		return nil, &Error{Issues: issues}
	}
	return conformed, nil
}

// ConformAt is Conform with an explicit root path segment, used when
// validating a named sub-document (e.g. "options").
func ConformAt(pred Predicate, root string, value any) (any, error) {
	conformed, issues := pred(value, Path{root})
	if len(issues) > 0 {
		return nil, &Error{Issues: issues}
	}
	return conformed, nil
}
