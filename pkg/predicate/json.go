package predicate

import "github.com/ohler55/ojg/oj"

// JSONMatch builds a predicate that structurally matches a parsed JSON
// document against the literal value given. literal is walked into the
// Object/Array/leaf Value tree once, up front; the returned Value is a
// callable that, at match time, parses the actual wire body (bytes or
// string) as JSON with JSONBody and compares the two trees, so callers
// can use JSONMatch directly as a body predicate without parsing it
// themselves.
func JSONMatch(literal any) Value {
	inner := fromJSONLiteral(literal)
	return Callable(func(actual any) bool {
		var parsed any
		switch a := actual.(type) {
		case []byte:
			parsed = JSONBody(a)
		case string:
			parsed = JSONBody([]byte(a))
		default:
			parsed = actual
		}
		return Compare(inner, parsed)
	})
}

func fromJSONLiteral(v any) Value {
	switch t := v.(type) {
	case nil:
		return Absent()
	case map[string]any:
		fields := make(map[string]Value, len(t))
		for k, fv := range t {
			fields[k] = fromJSONLiteral(fv)
		}
		return Object(fields)
	case []any:
		elems := make([]Value, len(t))
		for i, ev := range t {
			elems[i] = fromJSONLiteral(ev)
		}
		return Array(elems...)
	case string:
		return String(t)
	case bool:
		return Callable(func(actual any) bool {
			ab, ok := actual.(bool)
			return ok && ab == t
		})
	default:
		// Numbers: JSON decoders disagree on the concrete Go numeric
		// type (float64, int64, json.Number, ...), so compare via a
		// float64 projection rather than a literal Go equality.
		want, ok := toFloat64(t)
		return Callable(func(actual any) bool {
			got, ok2 := toFloat64(actual)
			return ok && ok2 && got == want
		})
	}
}

func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	default:
		return 0, false
	}
}

// JSONBody parses body as JSON into oj's generic decoding shapes
// (map[string]any/[]any/int64 or float64/string/bool/nil) for use as the
// "actual" side of Compare against a JSONMatch predicate. A parse
// failure yields nil, which only an Absent or Callable predicate can
// match.
func JSONBody(body []byte) any {
	v, err := oj.Parse(body)
	if err != nil {
		return nil
	}
	return v
}
