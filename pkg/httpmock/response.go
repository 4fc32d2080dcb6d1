package httpmock

import "github.com/netstub/netstub/pkg/resolve"

// ResponseDescriptor is an HTTP mock's response: a record whose fields
// are each a literal-or-callable resolve.Value. The zero
// ResponseDescriptor resolves to status 200, empty body, no custom
// headers.
//
// A dynamically typed API would also let the whole descriptor be one
// top-level callable producing the full record. In this statically
// typed API that collapses into per-field callables: a caller who
// wants the whole response computed together can close over shared
// state in each field's resolve.Callable, which is equivalent and
// idiomatic Go.
type ResponseDescriptor struct {
	Body          resolve.Value[resolve.Bufferable]
	StatusCode    resolve.Value[int]
	Headers       resolve.Headers
	HeaderDelayMS resolve.Value[int]
	BodyDelayMS   resolve.Value[int]
	DestroySocket resolve.Value[bool]
}

// resolved is the concrete form produced by applying resolve.* to a
// ResponseDescriptor against one request.
type resolved struct {
	body          []byte
	statusCode    int
	headers       map[string][]byte
	headerDelayMS int
	bodyDelayMS   int
	destroySocket bool
}

func (d ResponseDescriptor) resolve(args resolve.Args) resolved {
	return resolved{
		body:          resolve.ToBytes(d.Body, args),
		statusCode:    resolve.ToStatusCode(d.StatusCode, args),
		headers:       resolve.ToHeaders(d.Headers, args),
		headerDelayMS: resolve.ToInt(d.HeaderDelayMS, args, 0),
		bodyDelayMS:   resolve.ToInt(d.BodyDelayMS, args, 0),
		destroySocket: resolve.ToBool(d.DestroySocket, args),
	}
}
