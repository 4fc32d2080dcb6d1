// Package resolve implements the resolver: the pure function that
// turns a polymorphic response descriptor field (a literal, or a
// callable producing a literal) into a concrete value, with safe
// defaults on any user-callable fault.
//
// Go's static typing lets the tagged union collapse into a generic
// Value[T]: the compiler already guarantees a callable field returns a
// T, so the late-binding re-validation a dynamically typed host
// language needs for this is only required for the one thing static
// types can't rule out — a callable that panics instead of returning.
// Resolve recovers from that and returns its fallback argument.
package resolve
