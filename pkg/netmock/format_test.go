package netmock

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatRendersStringsQuoted(t *testing.T) {
	out := Format("TCP", Field{Name: "host", Value: "127.0.0.1"})
	assert.Equal(t, `TCP{host="127.0.0.1"}`, out)
}

func TestFormatRendersBytesAsQuotedString(t *testing.T) {
	out := Format("TCP", Field{Name: "data", Value: []byte("ping")})
	assert.Equal(t, `TCP{data="ping"}`, out)
}

func TestFormatRendersOtherKindsWithDefaultVerb(t *testing.T) {
	out := Format("HTTP", Field{Name: "statusCode", Value: 204})
	assert.Equal(t, "HTTP{statusCode=204}", out)
}

func TestFormatJoinsMultipleFieldsWithCommaSpace(t *testing.T) {
	out := Format("HTTP",
		Field{Name: "method", Value: "GET"},
		Field{Name: "pathname", Value: "/widgets"},
	)
	assert.Equal(t, `HTTP{method="GET", pathname="/widgets"}`, out)
}

func TestFormatEmptyFieldsYieldsBareKind(t *testing.T) {
	out := Format("HTTP")
	assert.Equal(t, "HTTP{}", out)
}

func TestFormatCallableShowsSourceNameNotPointer(t *testing.T) {
	out := Format("HTTP", Field{Name: "res", Value: sampleResFn})
	assert.Equal(t, "HTTP{res=sampleResFn}", out)
}

func sampleResFn() {}
