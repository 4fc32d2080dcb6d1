package validate

import (
	"regexp"
	"strconv"

	"golang.org/x/net/http/httpguts"
)

func leaf(typeName string, check func(v any) (any, bool)) Predicate {
	return func(value any, path Path) (any, []Issue) {
		conformed, ok := check(value)
		if !ok {
			return nil, []Issue{{Path: path, Message: "must be " + typeName, Got: value}}
		}
		return conformed, nil
	}
}

// String validates a string leaf.
func String() Predicate {
	return leaf("a string", func(v any) (any, bool) {
		s, ok := v.(string)
		return s, ok
	})
}

// Bytes validates a []byte leaf.
func Bytes() Predicate {
	return leaf("a byte buffer", func(v any) (any, bool) {
		b, ok := v.([]byte)
		return b, ok
	})
}

// Bool validates a bool leaf.
func Bool() Predicate {
	return leaf("a boolean", func(v any) (any, bool) {
		b, ok := v.(bool)
		return b, ok
	})
}

// Integer validates an int leaf.
func Integer() Predicate {
	return leaf("an integer", func(v any) (any, bool) {
		i, ok := v.(int)
		return i, ok
	})
}

// Regexp validates a *regexp.Regexp leaf, accepting either an already
// compiled pattern or a raw string that Regexp compiles on the spot,
// for mock declarations sourced dynamically (e.g. from pkg/yamlmock).
func Regexp() Predicate {
	return func(value any, path Path) (any, []Issue) {
		switch v := value.(type) {
		case *regexp.Regexp:
			return v, nil
		case string:
			re, err := regexp.Compile(v)
			if err != nil {
				return nil, []Issue{{Path: path, Message: "must be a valid regular expression: " + err.Error(), Got: value}}
			}
			return re, nil
		default:
			return nil, []Issue{{Path: path, Message: "must be a regular expression", Got: value}}
		}
	}
}

// Absent validates that a field was omitted (nil).
func Absent() Predicate {
	return func(value any, path Path) (any, []Issue) {
		if value != nil {
			return nil, []Issue{{Path: path, Message: "must be absent", Got: value}}
		}
		return nil, nil
	}
}

// HeaderName validates an HTTP header field name per RFC 7230, using
// golang.org/x/net/http/httpguts instead of a hand-rolled token regex.
func HeaderName() Predicate {
	return func(value any, path Path) (any, []Issue) {
		s, ok := value.(string)
		if !ok || !httpguts.ValidHeaderFieldName(s) {
			return nil, []Issue{{Path: path, Message: "must be a valid header name", Got: value}}
		}
		return s, nil
	}
}

// Object validates value as a map[string]any against schema: every
// field in schema is applied to the corresponding key (missing keys
// are validated as nil, so a field predicate built with Or(Absent(),
// ...) tolerates omission); keys in value not present in schema are
// passed through unchanged into the conformed map.
func Object(schema map[string]Predicate) Predicate {
	return func(value any, path Path) (any, []Issue) {
		if value == nil {
			value = map[string]any{}
		}
		m, ok := value.(map[string]any)
		if !ok {
			return nil, []Issue{{Path: path, Message: "must be an object", Got: value}}
		}

		out := make(map[string]any, len(m))
		for k, v := range m {
			out[k] = v
		}

		var issues []Issue
		for field, pred := range schema {
			raw, present := m[field]
			if !present {
				raw = nil
			}
			conformed, fieldIssues := pred(raw, path.Child(field))
			if len(fieldIssues) > 0 {
				issues = append(issues, fieldIssues...)
				continue
			}
			if present || conformed != nil {
				out[field] = conformed
			}
		}
		if len(issues) > 0 {
			return nil, issues
		}
		return out, nil
	}
}

// Array validates value as a []any, applying elem to every element.
func Array(elem Predicate) Predicate {
	return func(value any, path Path) (any, []Issue) {
		a, ok := value.([]any)
		if !ok {
			return nil, []Issue{{Path: path, Message: "must be an array", Got: value}}
		}
		out := make([]any, len(a))
		var issues []Issue
		for i, v := range a {
			conformed, elemIssues := elem(v, path.Child(strconv.Itoa(i)))
			if len(elemIssues) > 0 {
				issues = append(issues, elemIssues...)
				continue
			}
			out[i] = conformed
		}
		if len(issues) > 0 {
			return nil, issues
		}
		return out, nil
	}
}

// Mapping validates value as a map[string]any, checking every key
// against keyP and every value against valP.
func Mapping(keyP, valP Predicate) Predicate {
	return func(value any, path Path) (any, []Issue) {
		m, ok := value.(map[string]any)
		if !ok {
			return nil, []Issue{{Path: path, Message: "must be a mapping", Got: value}}
		}
		out := make(map[string]any, len(m))
		var issues []Issue
		for k, v := range m {
			if _, keyIssues := keyP(k, path.Child(k)); len(keyIssues) > 0 {
				issues = append(issues, keyIssues...)
				continue
			}
			conformed, valIssues := valP(v, path.Child(k))
			if len(valIssues) > 0 {
				issues = append(issues, valIssues...)
				continue
			}
			out[k] = conformed
		}
		if len(issues) > 0 {
			return nil, issues
		}
		return out, nil
	}
}

// Or accepts the first predicate that conforms value without issues.
// If none do, Or reports the issues of the last alternative (the
// most common case is Or(Absent(), X), where failing X is the
// diagnostically useful branch).
func Or(preds ...Predicate) Predicate {
	return func(value any, path Path) (any, []Issue) {
		var lastIssues []Issue
		for _, pred := range preds {
			conformed, issues := pred(value, path)
			if len(issues) == 0 {
				return conformed, nil
			}
			lastIssues = issues
		}
		return nil, lastIssues
	}
}

// And applies every predicate in sequence, threading the conformed
// value forward, aggregating issues across all of them.
func And(preds ...Predicate) Predicate {
	return func(value any, path Path) (any, []Issue) {
		current := value
		var issues []Issue
		for _, pred := range preds {
			conformed, predIssues := pred(current, path)
			if len(predIssues) > 0 {
				issues = append(issues, predIssues...)
				continue
			}
			current = conformed
		}
		if len(issues) > 0 {
			return nil, issues
		}
		return current, nil
	}
}

// Branch picks the first gate in branchPreds that conforms value
// without issues and applies the refinement at the same index in
// nextPreds. If no gate matches, msg is reported as the failure.
func Branch(branchPreds []Predicate, nextPreds []Predicate, msg string) Predicate {
	return func(value any, path Path) (any, []Issue) {
		for i, gate := range branchPreds {
			if _, issues := gate(value, path); len(issues) == 0 {
				return nextPreds[i](value, path)
			}
		}
		return nil, []Issue{{Path: path, Message: msg, Got: value}}
	}
}

// SchemaProvider is a late-bound value producer: a declaration may
// supply one instead of a literal, and its result is re-validated
// against inner at each call site rather than once at registration
// time. This models dynamically typed declarations; the statically
// typed HTTP/TCP response descriptors
// instead use resolve.Value[T], whose callable field already has a
// compiler-checked return type (see pkg/resolve/doc.go).
type SchemaProvider func() (any, error)

// BranchCallable validates that value is either already shaped like
// inner, or is a SchemaProvider. In the latter case the conformed
// result is a wrapped SchemaProvider that re-validates its own return
// value against inner on every call, reporting a validation error
// whose path ends in "()" to mark the call site unambiguously.
func BranchCallable(inner Predicate) Predicate {
	return func(value any, path Path) (any, []Issue) {
		if provider, ok := value.(SchemaProvider); ok {
			callPath := path.Child("()")
			wrapped := SchemaProvider(func() (any, error) {
				result, err := provider()
				if err != nil {
					return nil, err
				}
				conformed, issues := inner(result, callPath)
				if len(issues) > 0 {
					return nil, &Error{Issues: issues}
				}
				return conformed, nil
			})
			return wrapped, nil
		}
		return inner(value, path)
	}
}

// Exclusive reports an issue if value (a map[string]any) has at least
// one key from both groupA and groupB. Used for the TCP mock invariant
// that exactly one of init or (req, res) may be populated.
func Exclusive(groupA, groupB []string, msg string) Predicate {
	return func(value any, path Path) (any, []Issue) {
		m, ok := value.(map[string]any)
		if !ok {
			return value, nil
		}
		if anyPresent(m, groupA) && anyPresent(m, groupB) {
			return nil, []Issue{{Path: path, Message: msg, Got: value}}
		}
		return value, nil
	}
}

func anyPresent(m map[string]any, keys []string) bool {
	for _, k := range keys {
		if v, ok := m[k]; ok && v != nil {
			return true
		}
	}
	return false
}

// Alias replaces every issue message pred produces with message,
// keeping each issue's path and offending value.
func Alias(pred Predicate, message string) Predicate {
	return func(value any, path Path) (any, []Issue) {
		conformed, issues := pred(value, path)
		if len(issues) == 0 {
			return conformed, nil
		}
		aliased := make([]Issue, len(issues))
		for i, issue := range issues {
			aliased[i] = Issue{Path: issue.Path, Message: message, Got: issue.Got}
		}
		return nil, aliased
	}
}
