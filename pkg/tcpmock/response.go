package tcpmock

import "github.com/netstub/netstub/pkg/resolve"

// ResponseDescriptor is a TCP mock's response: a bufferable body plus
// bodyDelay and destroySocket, each literal or callable. Unlike the
// HTTP descriptor there is no statusCode or headers field; TCP has no
// such concept.
type ResponseDescriptor struct {
	Body          resolve.Value[resolve.Bufferable]
	BodyDelayMS   resolve.Value[int]
	DestroySocket resolve.Value[bool]
}

type resolved struct {
	body          []byte
	bodyDelayMS   int
	destroySocket bool
}

func (d ResponseDescriptor) resolve(args resolve.Args) resolved {
	return resolved{
		body:          resolve.ToBytes(d.Body, args),
		bodyDelayMS:   resolve.ToInt(d.BodyDelayMS, args, 0),
		destroySocket: resolve.ToBool(d.DestroySocket, args),
	}
}
