package yamlmock

import (
	"regexp"

	"github.com/netstub/netstub/pkg/httpmock"
	"github.com/netstub/netstub/pkg/predicate"
	"github.com/netstub/netstub/pkg/resolve"
	"github.com/netstub/netstub/pkg/tcpmock"
)

func stringOrPattern(lit, pat any) predicate.Value {
	if re, ok := pat.(*regexp.Regexp); ok {
		return predicate.Regexp(re)
	}
	if s, ok := lit.(string); ok {
		return predicate.String(s)
	}
	return predicate.Absent()
}

func headersPredicate(literal, patterns any) map[string]httpmock.HeaderPredicate {
	out := map[string]httpmock.HeaderPredicate{}
	if m, ok := literal.(map[string]any); ok {
		for name, v := range m {
			if s, ok := v.(string); ok {
				out[name] = httpmock.Header(predicate.String(s))
			}
		}
	}
	if m, ok := patterns.(map[string]any); ok {
		for name, v := range m {
			if re, ok := v.(*regexp.Regexp); ok {
				out[name] = httpmock.Header(predicate.Regexp(re))
			}
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func bodyPredicate(m map[string]any) predicate.Value {
	if v, ok := m["bodyJSON"]; ok && v != nil {
		return predicate.JSONMatch(v)
	}
	return stringOrPattern(m["body"], m["bodyPattern"])
}

func buildHTTPOptions(m map[string]any) httpmock.HTTPMockOptions {
	fields := httpmock.Fields{
		Method:   stringOrPattern(m["method"], nil),
		Pathname: stringOrPattern(m["pathname"], m["pathnamePattern"]),
		Query:    stringOrPattern(m["query"], nil),
		Headers:  headersPredicate(m["headers"], m["headerPatterns"]),
		Body:     bodyPredicate(m),
	}
	return httpmock.HTTPMockOptions{
		Req: httpmock.Request(fields),
		Res: buildHTTPResponse(asMap(m["response"])),
	}
}

func buildHTTPResponse(m map[string]any) httpmock.ResponseDescriptor {
	d := httpmock.ResponseDescriptor{}
	if s, ok := m["body"].(string); ok {
		d.Body = resolve.Literal(resolve.FromString(s))
	}
	if i, ok := m["statusCode"].(int); ok {
		d.StatusCode = resolve.Literal(i)
	}
	if headers := asMap(m["headers"]); len(headers) > 0 {
		hs := make(resolve.Headers, len(headers))
		for name, v := range headers {
			if s, ok := v.(string); ok {
				hs[name] = resolve.Literal(resolve.FromString(s))
			}
		}
		d.Headers = hs
	}
	if i, ok := m["headerDelayMs"].(int); ok {
		d.HeaderDelayMS = resolve.Literal(i)
	}
	if i, ok := m["bodyDelayMs"].(int); ok {
		d.BodyDelayMS = resolve.Literal(i)
	}
	if b, ok := m["destroySocket"].(bool); ok {
		d.DestroySocket = resolve.Literal(b)
	}
	return d
}

func buildTCPResponse(m map[string]any) tcpmock.ResponseDescriptor {
	d := tcpmock.ResponseDescriptor{}
	if s, ok := m["body"].(string); ok {
		d.Body = resolve.Literal(resolve.FromString(s))
	}
	if i, ok := m["bodyDelayMs"].(int); ok {
		d.BodyDelayMS = resolve.Literal(i)
	}
	if b, ok := m["destroySocket"].(bool); ok {
		d.DestroySocket = resolve.Literal(b)
	}
	return d
}

// buildTCPOptions converts every field present in m, even when both
// init and request/requestPattern are set. A declaration carrying both
// is malformed, not ambiguous, so it's left for TCPMockOptions.validate
// (called from TCPListener.Mock) to reject with a precise error rather
// than silently preferring one field over the other.
func buildTCPOptions(m map[string]any) tcpmock.TCPMockOptions {
	opts := tcpmock.TCPMockOptions{}
	if s, ok := m["init"].(string); ok {
		opts.Init = resolve.Literal(resolve.FromString(s))
	}
	opts.Req = stringOrPattern(m["request"], m["requestPattern"])
	opts.Res = buildTCPResponse(asMap(m["response"]))
	return opts
}

func asMap(v any) map[string]any {
	if m, ok := v.(map[string]any); ok {
		return m
	}
	return map[string]any{}
}

func asSlice(v any) []any {
	if a, ok := v.([]any); ok {
		return a
	}
	return nil
}
