// Package tcpmock implements the TCP stream matcher and listener:
// per-connection receive buffers, init (server-speaks-first) mocks,
// and connection pinning, backed by the same ordered netmock.Set
// lifecycle pkg/httpmock uses.
package tcpmock
