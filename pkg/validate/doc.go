// Package validate implements the validation layer that accepts mock
// declarations and rejects ill-formed ones with path-prefixed
// diagnostics.
//
// Validation is compositional: each Predicate is a pure function
// (value, path) -> (conformed, issues). The combinators in
// combinators.go (Object, Array, Mapping, Or, And, Branch, Exclusive,
// Alias) build larger predicates out of smaller ones, composing
// per-field checks into one aggregated *Error the same way a hand-rolled config
// validator would, but as first-class composable functions rather than
// one large type switch.
package validate
