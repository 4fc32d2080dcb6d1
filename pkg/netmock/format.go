package netmock

import (
	"fmt"
	"reflect"
	"runtime"
	"strings"
)

// Field is one (name, value) pair of a mock's printable form. A zero
// Value means the field was absent and is suppressed entirely;
// callables render by their source name rather than a pointer value.
type Field struct {
	Name  string
	Value any
}

// Format renders kind ("HTTP" or "TCP") and fields into a mock's
// printable form: `HTTP{<k=v>…}`. This string appears verbatim inside
// PendingMockError messages, so its shape is part of the public
// contract, not just cosmetic.
func Format(kind string, fields ...Field) string {
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		if f.Value == nil {
			continue
		}
		parts = append(parts, f.Name+"="+renderValue(f.Value))
	}
	return kind + "{" + strings.Join(parts, ", ") + "}"
}

func renderValue(v any) string {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Func {
		if name := funcName(v); name != "" {
			return name
		}
		return "[Function]"
	}
	switch t := v.(type) {
	case string:
		return fmt.Sprintf("%q", t)
	case []byte:
		return fmt.Sprintf("%q", string(t))
	default:
		return fmt.Sprintf("%v", t)
	}
}

func funcName(fn any) string {
	ptr := reflect.ValueOf(fn).Pointer()
	rf := runtime.FuncForPC(ptr)
	if rf == nil {
		return ""
	}
	name := rf.Name()
	if idx := strings.LastIndex(name, "."); idx >= 0 {
		name = name[idx+1:]
	}
	return name
}
