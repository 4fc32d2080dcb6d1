// Package netmock implements the shared mock lifecycle: registration,
// insertion-order iteration, pending/matched tracking, and reset
// semantics. pkg/httpmock and pkg/tcpmock each define their own
// concrete mock type and satisfy Entry so both listeners share this
// one lifecycle implementation.
package netmock
