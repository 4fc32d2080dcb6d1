package tcpmock

import (
	"github.com/google/uuid"

	"github.com/netstub/netstub/pkg/netmock"
	"github.com/netstub/netstub/pkg/predicate"
	"github.com/netstub/netstub/pkg/resolve"
	"github.com/netstub/netstub/pkg/validate"
)

// TCPMockOptions declares one mock registration. Exactly one of Init
// or Req must be set; Res is only meaningful alongside Req.
type TCPMockOptions struct {
	Init resolve.Value[resolve.Bufferable]
	Req  predicate.Value
	Res  ResponseDescriptor
}

// validate enforces the "exactly one of init or (req, res)" invariant,
// using validate.Exclusive for the mutual-exclusion half of the check
// (the combinator purpose-built for this invariant, per its own doc
// comment) and a direct check for the "neither set" half, which
// Exclusive doesn't cover.
func (o TCPMockOptions) validate() error {
	hasInit := !o.Init.IsZero()
	hasReq := !o.Req.IsAbsent()

	present := map[string]any{}
	if hasInit {
		present["init"] = o.Init
	}
	if hasReq {
		present["req"] = o.Req
	}
	exclusive := validate.Exclusive([]string{"init"}, []string{"req"}, "must not be set together with init")
	if _, issues := exclusive(present, validate.Path{"req"}); len(issues) > 0 {
		return &validate.Error{Issues: issues}
	}

	if !hasInit && !hasReq {
		return &validate.Error{Issues: []validate.Issue{{
			Path:    nil,
			Message: "exactly one of init or req must be set",
			Got:     o,
		}}}
	}
	return nil
}

// TCPMock is a registered TCP mock: either an init (server-speaks-
// first) mock or a req/res mock, optionally pinned to a group.
type TCPMock struct {
	id string
	netmock.Flag

	isInit bool
	isHead bool
	init   resolve.Value[resolve.Bufferable]
	req    predicate.Value
	res    ResponseDescriptor
	group  *pinGroup
}

func newTCPMock(opts TCPMockOptions, group *pinGroup, isHead bool) *TCPMock {
	return &TCPMock{
		id:     uuid.NewString(),
		isInit: !opts.Init.IsZero(),
		isHead: isHead,
		init:   opts.Init,
		req:    opts.Req,
		res:    opts.Res,
		group:  group,
	}
}

// ID satisfies netmock.Entry.
func (m *TCPMock) ID() string { return m.id }

// String renders the mock's printable form.
func (m *TCPMock) String() string {
	fields := []netmock.Field{
		{Name: "init", Value: bufferablePrintable(m.init)},
		{Name: "req", Value: m.req.Printable()},
		{Name: "body", Value: bufferablePrintable(m.res.Body)},
	}
	return netmock.Format("TCP", fields...)
}

func bufferablePrintable(v resolve.Value[resolve.Bufferable]) any {
	if v.IsZero() {
		return nil
	}
	p := v.Printable()
	if b, ok := p.(resolve.Bufferable); ok {
		return b.ToBytes()
	}
	return p
}

// TCPMockHandle is returned to callers registering a mock. It exposes
// AssertDone and, uniquely to TCP, Mock for spawning a pinned child
// that shares this mock's group.
type TCPMockHandle struct {
	listener *TCPListener
	mock     *TCPMock
}

// AssertDone raises netmock.PendingMockError if the mock has not yet
// matched any traffic.
func (h *TCPMockHandle) AssertDone() error {
	return netmock.AssertDone(h.mock)
}

// Mock registers a pinned child sharing this handle's group. Children
// may not be init mocks.
func (h *TCPMockHandle) Mock(opts TCPMockOptions) (*TCPMockHandle, error) {
	if !opts.Init.IsZero() {
		return nil, &validate.Error{Issues: []validate.Issue{{
			Path:    validate.Path{"init"},
			Message: "pinned child mocks may not be init mocks",
			Got:     opts.Init,
		}}}
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}
	child := newTCPMock(opts, h.mock.group, false)
	h.listener.mocks.Register(child)
	return &TCPMockHandle{listener: h.listener, mock: child}, nil
}
