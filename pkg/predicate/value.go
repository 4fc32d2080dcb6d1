package predicate

import "regexp"

// Kind tags which variant a Value holds.
type Kind int

// Predicate variants: literal string, literal byte buffer, regex,
// callable, absent, or a structured record (object or array of nested
// Values).
const (
	KindAbsent Kind = iota
	KindString
	KindBytes
	KindRegexp
	KindFunc
	KindObject
	KindArray
)

// Func is a callable predicate: given the actual value, report whether
// it matches. A panic inside Func is treated as a non-match by Compare
// and never propagated.
type Func func(actual any) bool

// Value is a predicate leaf or structured node in a tagged union. The
// zero Value is Absent, which matches anything.
type Value struct {
	kind Kind

	str   string
	bytes []byte
	re    *regexp.Regexp
	fn    Func
	obj   map[string]Value
	arr   []Value
}

// Absent returns a predicate that matches any actual value.
func Absent() Value { return Value{kind: KindAbsent} }

// String returns a predicate matching an exact, case-sensitive string.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Bytes returns a predicate matching an exact byte sequence.
func Bytes(b []byte) Value { return Value{kind: KindBytes, bytes: b} }

// Regexp returns a predicate that runs re.MatchString against the
// UTF-8 interpretation of the actual value.
func Regexp(re *regexp.Regexp) Value { return Value{kind: KindRegexp, re: re} }

// Callable returns a predicate that defers to an arbitrary Go function.
func Callable(fn Func) Value { return Value{kind: KindFunc, fn: fn} }

// Object returns a structured predicate: every key present in fields
// must be satisfied by the corresponding key of the actual map (a
// missing actual key is treated as absent); extra actual keys are
// ignored.
func Object(fields map[string]Value) Value { return Value{kind: KindObject, obj: fields} }

// Array returns a structured predicate over a sequence: for every
// index in elems, the actual value at that index must be satisfied;
// elems may be a prefix of the actual sequence.
func Array(elems ...Value) Value { return Value{kind: KindArray, arr: elems} }

// Kind reports the predicate's tag.
func (v Value) Kind() Kind { return v.kind }

// IsAbsent reports whether v is the wildcard predicate.
func (v Value) IsAbsent() bool { return v.kind == KindAbsent }

// Printable returns a representation suitable for a mock's printable
// form: nil for an absent predicate (so callers suppress the field),
// the literal for String/Bytes, the pattern for Regexp, the function
// value for Callable (so the caller can render its source name), and
// the predicate itself for Object/Array.
func (v Value) Printable() any {
	switch v.kind {
	case KindAbsent:
		return nil
	case KindString:
		return v.str
	case KindBytes:
		return v.bytes
	case KindRegexp:
		if v.re == nil {
			return nil
		}
		return v.re.String()
	case KindFunc:
		return v.fn
	case KindObject, KindArray:
		return v
	default:
		return nil
	}
}
