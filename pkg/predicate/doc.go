// Package predicate implements the comparator: the pure function that
// decides whether a polymorphic predicate (literal string, literal byte
// buffer, regular expression, callable, or structured record of the
// same) is satisfied by an actual value.
//
// Predicates are modeled as a tagged union (Value) rather than as
// interface{} dispatch with reflection, so the hot comparison path does
// no reflection beyond recursing into maps/slices (see Compare).
package predicate
