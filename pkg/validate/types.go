package validate

import (
	"fmt"
	"strings"
)

// Path is a dot-joined location within a mock declaration, e.g.
// ["options", "res", "statusCode"].
type Path []string

// Child returns a new Path with seg appended.
func (p Path) Child(seg string) Path {
	next := make(Path, len(p), len(p)+1)
	copy(next, p)
	return append(next, seg)
}

// String renders the path as it appears in error messages.
func (p Path) String() string {
	return strings.Join(p, ".")
}

// Issue is a single validation failure, formatted as
// "`<dot-joined-path>` <message> (got <inspected-value>)".
type Issue struct {
	Path    Path
	Message string
	Got     any
}

func (i Issue) String() string {
	return fmt.Sprintf("`%s` %s (got %s)", i.Path.String(), i.Message, inspect(i.Got))
}

func inspect(v any) string {
	if v == nil {
		return "undefined"
	}
	return fmt.Sprintf("%#v", v)
}

// Predicate is a pure validation function: given a value and the path
// it was found at, report the conformed (possibly transformed) value
// and zero or more issues. An empty issue slice means value conforms.
type Predicate func(value any, path Path) (conformed any, issues []Issue)
