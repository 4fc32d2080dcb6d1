package yamlmock

import "github.com/netstub/netstub/pkg/validate"

func optional(pred validate.Predicate) validate.Predicate {
	return validate.Or(validate.Absent(), pred)
}

func httpResponseSchema() validate.Predicate {
	return validate.Object(map[string]validate.Predicate{
		"statusCode":    optional(validate.Integer()),
		"headers":       optional(validate.Mapping(validate.HeaderName(), validate.String())),
		"body":          optional(validate.String()),
		"headerDelayMs": optional(validate.Integer()),
		"bodyDelayMs":   optional(validate.Integer()),
		"destroySocket": optional(validate.Bool()),
	})
}

func httpMockSchema() validate.Predicate {
	return validate.Object(map[string]validate.Predicate{
		"method":          optional(validate.String()),
		"pathname":        optional(validate.String()),
		"pathnamePattern": optional(validate.Regexp()),
		"query":           optional(validate.String()),
		"headers":         optional(validate.Mapping(validate.HeaderName(), validate.String())),
		"headerPatterns":  optional(validate.Mapping(validate.HeaderName(), validate.Regexp())),
		"body":            optional(validate.String()),
		"bodyPattern":     optional(validate.Regexp()),
		"bodyJSON":        optional(validate.Or(validate.Object(map[string]validate.Predicate{}), validate.Array(anyLeaf()))),
		"response":        optional(httpResponseSchema()),
	})
}

// anyLeaf accepts any already-decoded YAML scalar or structure
// unchanged, used for bodyJSON array elements where the shape is
// whatever the declared JSON document contains.
func anyLeaf() validate.Predicate {
	return func(value any, path validate.Path) (any, []validate.Issue) {
		return value, nil
	}
}

func tcpResponseSchema() validate.Predicate {
	return validate.Object(map[string]validate.Predicate{
		"body":          optional(validate.String()),
		"bodyDelayMs":   optional(validate.Integer()),
		"destroySocket": optional(validate.Bool()),
	})
}

func tcpTailSchema() validate.Predicate {
	return validate.Object(map[string]validate.Predicate{
		"request":        optional(validate.String()),
		"requestPattern": optional(validate.Regexp()),
		"response":       optional(tcpResponseSchema()),
	})
}

func tcpMockSchema() validate.Predicate {
	return validate.Object(map[string]validate.Predicate{
		"init":           optional(validate.String()),
		"request":        optional(validate.String()),
		"requestPattern": optional(validate.Regexp()),
		"response":       optional(tcpResponseSchema()),
		"then":           optional(validate.Array(tcpTailSchema())),
	})
}

func documentSchema() validate.Predicate {
	return validate.Object(map[string]validate.Predicate{
		"http": optional(validate.Array(httpMockSchema())),
		"tcp":  optional(validate.Array(tcpMockSchema())),
	})
}
