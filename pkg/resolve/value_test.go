package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveLiteral(t *testing.T) {
	v := Literal(200)
	assert.Equal(t, 200, Resolve(v, Args{}, 0))
}

func TestResolveCallable(t *testing.T) {
	v := Callable(func(args Args) int { return len(args.Body) })
	assert.Equal(t, 5, Resolve(v, Args{Body: []byte("hello")}, 0))
}

func TestResolveZeroFallsBackToFallback(t *testing.T) {
	var v Value[int]
	assert.True(t, v.IsZero())
	assert.Equal(t, 42, Resolve(v, Args{}, 42))
}

func TestResolveCallablePanicUsesFallback(t *testing.T) {
	v := Callable(func(args Args) int { panic("boom") })
	assert.Equal(t, 7, Resolve(v, Args{}, 7))
}

func TestToBytesStringEncoding(t *testing.T) {
	v := Literal(FromString("bloop"))
	assert.Equal(t, []byte("bloop"), ToBytes(v, Args{}))
}

func TestToBytesPassthrough(t *testing.T) {
	v := Literal(FromBytes([]byte{0x01, 0x02}))
	assert.Equal(t, []byte{0x01, 0x02}, ToBytes(v, Args{}))
}

func TestToBytesUnsetIsEmpty(t *testing.T) {
	var v Value[Bufferable]
	assert.Equal(t, []byte{}, ToBytes(v, Args{}))
}

func TestToStatusCodeDefaultsTo200(t *testing.T) {
	var v Value[int]
	assert.Equal(t, 200, ToStatusCode(v, Args{}))
}

func TestToStatusCodePanicDefaultsTo200(t *testing.T) {
	v := Callable(func(Args) int { panic("nope") })
	assert.Equal(t, 200, ToStatusCode(v, Args{}))
}

func TestToBoolDefaultsFalse(t *testing.T) {
	var v Value[bool]
	assert.False(t, ToBool(v, Args{}))
}

func TestToHeadersResolvesEachEntry(t *testing.T) {
	h := Headers{
		"X-Static":  Literal(FromString("a")),
		"X-Dynamic": Callable(func(args Args) Bufferable { return FromString("dyn") }),
	}
	resolved := ToHeaders(h, Args{})
	assert.Equal(t, []byte("a"), resolved["X-Static"])
	assert.Equal(t, []byte("dyn"), resolved["X-Dynamic"])
}

func TestToHeadersNilIsEmptyMap(t *testing.T) {
	resolved := ToHeaders(nil, Args{})
	assert.NotNil(t, resolved)
	assert.Empty(t, resolved)
}
