package httpmock

import (
	"github.com/google/uuid"

	"github.com/netstub/netstub/pkg/netmock"
	"github.com/netstub/netstub/pkg/validate"
)

// HTTPMockOptions declares one mock registration.
type HTTPMockOptions struct {
	Req RequestPredicate
	Res ResponseDescriptor
}

// acceptAny is a validate.Predicate that conforms any value unchanged;
// used as the value-side of a validate.Mapping check where only the
// keys need validating.
func acceptAny() validate.Predicate {
	return func(value any, path validate.Path) (any, []validate.Issue) {
		return value, nil
	}
}

// validate checks the invariants Go's type system can't: header names
// declared on either the request predicate or the response descriptor
// must be syntactically valid per RFC 7230, even though both sides are
// populated from Go source rather than an untrusted document. Every
// other field's shape is already guaranteed by HTTPMockOptions' struct
// types, so there's nothing else left for a declaration-time validator
// to catch on this path.
func (o HTTPMockOptions) validate() error {
	names := map[string]any{}
	for name := range o.Req.headers {
		names[name] = true
	}
	for name := range o.Res.Headers {
		names[name] = true
	}
	if len(names) == 0 {
		return nil
	}
	_, err := validate.ConformAt(validate.Mapping(validate.HeaderName(), acceptAny()), "headers", names)
	return err
}

// HTTPMock is a registered HTTP mock: a request predicate, a response
// descriptor, and the pending/matched flag netmock.Set scans for.
type HTTPMock struct {
	id string
	netmock.Flag

	req RequestPredicate
	res ResponseDescriptor
}

func newHTTPMock(opts HTTPMockOptions) *HTTPMock {
	return &HTTPMock{
		id:  uuid.NewString(),
		req: opts.Req,
		res: opts.Res,
	}
}

// ID satisfies netmock.Entry.
func (m *HTTPMock) ID() string { return m.id }

// String renders the mock's printable form.
func (m *HTTPMock) String() string {
	fields := []netmock.Field{
		{Name: "method", Value: m.req.method.Printable()},
		{Name: "pathname", Value: m.req.pathname.Printable()},
		{Name: "query", Value: m.req.query.Printable()},
		{Name: "body", Value: m.req.body.Printable()},
	}
	if m.req.hasWhole {
		fields = append(fields, netmock.Field{Name: "req", Value: m.req.whole})
	}
	return netmock.Format("HTTP", fields...)
}

// HTTPMockHandle is returned to callers registering a mock; it wraps
// AssertDone over the underlying entry.
type HTTPMockHandle struct {
	mock *HTTPMock
}

// AssertDone raises netmock.PendingMockError if the mock has not yet
// matched any traffic.
func (h *HTTPMockHandle) AssertDone() error {
	return netmock.AssertDone(h.mock)
}
