// Package yamlmock loads mock declarations from YAML documents, the
// way a config file on disk would describe a fixed set of mocks
// up front rather than registering them through Go calls.
//
// Since YAML can't encode a Go function, every predicate and response
// field is a literal or (for pattern fields) a regular expression
// compiled at load time; there is no equivalent of the Go API's
// callable predicates or response descriptors here. A document is
// decoded into a generic map[string]any/[]any tree and validated with
// pkg/validate before being converted into httpmock.HTTPMockOptions or
// tcpmock.TCPMockOptions.
package yamlmock
