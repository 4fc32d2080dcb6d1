package httpmock

import (
	"io"
	"net/http"
	"strings"
)

// MaxRequestBodySize bounds how much of an incoming request body is
// buffered for matching, capping how far an oversized body can
// destabilize the server.
const MaxRequestBodySize = 10 << 20 // 10MB

// Request is the canonical parsed shape of an incoming request: method
// uppercased, pathname from URL parse, the literal query string
// (including its leading "?", or empty), headers with repeated values
// preserved in order, and the buffered body.
//
// Header names are kept exactly as net/http exposes them, which is a
// known, accepted deviation from preserving literal wire case: net/http's
// parser canonicalizes field names (textproto.CanonicalMIMEHeaderKey)
// before a request ever reaches application code, regardless of how the
// name was spelled on the wire. A client that sends "x-bloop" and one
// that sends "X-BLOOP" are indistinguishable here — both arrive as
// "X-Bloop" — so a predicate keyed by "X-Bloop" matches either wire
// spelling instead of only the one that's byte-for-byte identical.
// Preserving that distinction would mean not using net/http's own
// request parser, which this package is built on deliberately; see
// TestHTTPHeaderNameCaseIsNotPreservedFromWire and SPEC_FULL.md's
// "Known deviations" note for the test that exercises this directly.
type Request struct {
	Method  string
	Pathname string
	Query   string
	Headers map[string][]string
	Body    []byte

	raw *http.Request
}

// Raw returns the underlying *http.Request, for whole-request
// callables that need more than the canonical shape exposes.
func (r *Request) Raw() *http.Request { return r.raw }

// parseRequest buffers the body and builds the canonical Request.
func parseRequest(r *http.Request) (*Request, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, MaxRequestBodySize+1))
	if err != nil {
		return nil, err
	}
	if len(body) > MaxRequestBodySize {
		body = body[:MaxRequestBodySize]
	}

	query := ""
	if r.URL.RawQuery != "" {
		query = "?" + r.URL.RawQuery
	}

	headers := make(map[string][]string, len(r.Header))
	for name, values := range r.Header {
		headers[name] = append([]string(nil), values...)
	}

	return &Request{
		Method:   strings.ToUpper(r.Method),
		Pathname: r.URL.Path,
		Query:    query,
		Headers:  headers,
		Body:     body,
		raw:      r,
	}, nil
}
