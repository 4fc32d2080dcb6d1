package predicate

import (
	"bytes"

	"github.com/netstub/netstub/pkg/logging"
)

// Compare answers: does desired describe actual? It is total (never
// panics out to the caller) and pure (repeated calls with the same
// arguments return the same result).
//
// Rules are applied in the order listed below.
func Compare(desired Value, actual any) bool {
	switch desired.kind {
	case KindAbsent:
		// Rule 1: desired absent matches anything.
		return true

	case KindFunc:
		// Rule 2: a panicking or non-boolean callable is a non-match,
		// never propagated to the caller.
		return callPredicate(desired.fn, actual)

	case KindObject:
		// Rule 3: recurse per key; missing actual keys are absent;
		// extra actual keys are ignored.
		m, ok := actual.(map[string]any)
		if !ok {
			logging.Match().Debug("compare: object predicate against non-map actual", "actual_type", typeName(actual))
			return false
		}
		for k, dv := range desired.obj {
			av, present := m[k]
			if !present {
				av = nil
			}
			if !Compare(dv, av) {
				logging.Match().Debug("compare: object field mismatch", "field", k)
				return false
			}
		}
		return true

	case KindArray:
		// Rule 4: recurse per index; desired may be a prefix of actual;
		// trailing actual elements are ignored.
		a, ok := actual.([]any)
		if !ok {
			logging.Match().Debug("compare: array predicate against non-array actual", "actual_type", typeName(actual))
			return false
		}
		if len(desired.arr) > len(a) {
			return false
		}
		for i, dv := range desired.arr {
			if !Compare(dv, a[i]) {
				logging.Match().Debug("compare: array element mismatch", "index", i)
				return false
			}
		}
		return true

	case KindBytes:
		return compareBytes(desired.bytes, actual)

	case KindString:
		return compareString(desired.str, actual)

	case KindRegexp:
		s, ok := toComparableString(actual)
		if !ok {
			return false
		}
		return desired.re.MatchString(s)

	default:
		return false
	}
}

// callPredicate invokes fn, treating any panic as a non-match (rule 2):
// a user-callable fault is swallowed rather than propagated.
func callPredicate(fn Func, actual any) (matched bool) {
	defer func() {
		if r := recover(); r != nil {
			logging.General().Debug("predicate callable panicked, treated as non-match", "panic", r)
			matched = false
		}
	}()
	if fn == nil {
		return false
	}
	return fn(actual)
}

func compareBytes(desired []byte, actual any) bool {
	switch a := actual.(type) {
	case []byte:
		// Rule 5: both byte buffers, byte-exact equality.
		return bytes.Equal(desired, a)
	case string:
		// Rule 6: bytes vs string, compare via the UTF-8 interpretation.
		return utf8Equal(desired, a)
	default:
		return false
	}
}

func compareString(desired string, actual any) bool {
	switch a := actual.(type) {
	case string:
		// Rule 7: exact, case-sensitive equality.
		return desired == a
	case []byte:
		// Rule 6, mirrored: bytes vs string.
		return utf8Equal(a, desired)
	default:
		return false
	}
}

// toComparableString extracts a string for regex matching (rule 8);
// only strings and byte buffers are comparable, everything else is a
// non-match (rule 9).
func toComparableString(actual any) (string, bool) {
	switch a := actual.(type) {
	case string:
		return a, true
	case []byte:
		return decodeUTF8(a), true
	default:
		return "", false
	}
}

func typeName(v any) string {
	if v == nil {
		return "nil"
	}
	switch v.(type) {
	case string:
		return "string"
	case []byte:
		return "[]byte"
	case []any:
		return "[]any"
	case map[string]any:
		return "map[string]any"
	default:
		return "unknown"
	}
}
