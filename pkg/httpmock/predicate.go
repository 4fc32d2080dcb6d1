package httpmock

import (
	"github.com/netstub/netstub/pkg/logging"
	"github.com/netstub/netstub/pkg/predicate"
)

// RequestPredicate is an HTTP request predicate: either a
// whole-request callable, or a structured record of per-field leaf
// predicates. The zero RequestPredicate matches any request.
type RequestPredicate struct {
	whole    func(*Request) bool
	hasWhole bool

	method   predicate.Value
	pathname predicate.Value
	query    predicate.Value
	headers  map[string]HeaderPredicate
	body     predicate.Value
}

// AnyRequest matches every request.
func AnyRequest() RequestPredicate { return RequestPredicate{} }

// WholeRequest builds a predicate that defers entirely to fn.
func WholeRequest(fn func(*Request) bool) RequestPredicate {
	return RequestPredicate{whole: fn, hasWhole: true}
}

// Fields describes the structured form of a RequestPredicate. Any zero
// predicate.Value (the default) is absent and matches anything.
type Fields struct {
	Method   predicate.Value
	Pathname predicate.Value
	Query    predicate.Value
	Headers  map[string]HeaderPredicate
	Body     predicate.Value
}

// Request builds a structured RequestPredicate from Fields.
func Request(f Fields) RequestPredicate {
	return RequestPredicate{
		method:   f.Method,
		pathname: f.Pathname,
		query:    f.Query,
		headers:  f.Headers,
		body:     f.Body,
	}
}

// HeaderPredicate matches one header name's value(s): either a single
// leaf predicate (the header must occur exactly once and satisfy it;
// an absent leaf matches whether or not the header is present), or a
// sequence of leaf predicates (the header must occur exactly that
// many times, matched element-wise). A repeated-header predicate fails
// if the number of occurrences differs.
type HeaderPredicate struct {
	single predicate.Value
	seq    []predicate.Value
	isSeq  bool
}

// Header builds a single-occurrence header predicate.
func Header(v predicate.Value) HeaderPredicate {
	return HeaderPredicate{single: v}
}

// HeaderSeq builds a repeated-occurrence header predicate requiring
// exactly len(vs) occurrences, matched in order.
func HeaderSeq(vs ...predicate.Value) HeaderPredicate {
	return HeaderPredicate{seq: vs, isSeq: true}
}

// Match reports whether req satisfies p.
func (p RequestPredicate) Match(req *Request) bool {
	if p.hasWhole {
		return callRequestPredicate(p.whole, req)
	}
	if !p.method.IsAbsent() && !predicate.Compare(p.method, req.Method) {
		return false
	}
	if !p.pathname.IsAbsent() && !predicate.Compare(p.pathname, req.Pathname) {
		return false
	}
	if !p.query.IsAbsent() && !predicate.Compare(p.query, req.Query) {
		return false
	}
	if !p.body.IsAbsent() && !predicate.Compare(p.body, req.Body) {
		return false
	}
	for name, hp := range p.headers {
		if !matchHeader(hp, req.Headers[name]) {
			return false
		}
	}
	return true
}

func matchHeader(hp HeaderPredicate, actual []string) bool {
	if hp.isSeq {
		if len(actual) != len(hp.seq) {
			return false
		}
		for i, leaf := range hp.seq {
			if !predicate.Compare(leaf, actual[i]) {
				return false
			}
		}
		return true
	}

	if hp.single.IsAbsent() {
		// Rule 1: absent matches regardless of presence.
		return true
	}
	switch len(actual) {
	case 0:
		return false
	case 1:
		return predicate.Compare(hp.single, actual[0])
	default:
		// A single leaf predicate cannot align element-wise with more
		// than one occurrence; the caller should use HeaderSeq instead.
		return false
	}
}

// callRequestPredicate invokes fn, treating a panic as a non-match,
// the same swallow-on-panic rule applied to the whole-request form.
func callRequestPredicate(fn func(*Request) bool, req *Request) (matched bool) {
	defer func() {
		if r := recover(); r != nil {
			logging.General().Debug("whole-request predicate panicked, treated as non-match", "panic", r)
			matched = false
		}
	}()
	if fn == nil {
		return true
	}
	return fn(req)
}
