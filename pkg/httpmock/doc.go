// Package httpmock implements the HTTP matcher and listener: a real
// *http.Server backed by an ordered netmock.Set, matching parsed
// requests against structured or whole-request predicates and
// synthesizing responses through pkg/resolve.
package httpmock
