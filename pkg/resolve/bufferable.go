package resolve

// Bufferable is a value that can be coerced to bytes: a string, a byte
// buffer, or (via Value[Bufferable]) a callable returning either. The
// zero Bufferable coerces to an empty byte slice.
type Bufferable struct {
	isBytes bool
	str     string
	bytes   []byte
}

// FromString wraps a string as a Bufferable.
func FromString(s string) Bufferable { return Bufferable{str: s} }

// FromBytes wraps a byte slice as a Bufferable.
func FromBytes(b []byte) Bufferable { return Bufferable{isBytes: true, bytes: b} }

// ToBytes encodes the Bufferable to UTF-8 bytes: bytes pass through,
// strings are UTF-8 encoded.
func (b Bufferable) ToBytes() []byte {
	if b.isBytes {
		return b.bytes
	}
	return []byte(b.str)
}

// ToBytes resolves a response-descriptor body-like field to concrete
// bytes, defaulting to empty on an unset field or a panicking callable.
func ToBytes(v Value[Bufferable], args Args) []byte {
	return Resolve(v, args, Bufferable{}).ToBytes()
}

// ToInt resolves an integer-valued field (delays), defaulting to
// fallback (callers pass 0 for delays).
func ToInt(v Value[int], args Args, fallback int) int {
	return Resolve(v, args, fallback)
}

// ToStatusCode resolves the statusCode field, defaulting to 200.
func ToStatusCode(v Value[int], args Args) int {
	return Resolve(v, args, 200)
}

// ToBool resolves a boolean-valued field (destroySocket), defaulting
// to false.
func ToBool(v Value[bool], args Args) bool {
	return Resolve(v, args, false)
}

// Headers is a response descriptor's header map: each value is a leaf
// or callable Bufferable.
type Headers map[string]Value[Bufferable]

// ToHeaders resolves every entry of h to concrete bytes. A nil map
// resolves to an empty map.
func ToHeaders(h Headers, args Args) map[string][]byte {
	out := make(map[string][]byte, len(h))
	for k, v := range h {
		out[k] = ToBytes(v, args)
	}
	return out
}
