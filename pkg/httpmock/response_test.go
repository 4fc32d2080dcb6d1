package httpmock

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/netstub/netstub/pkg/resolve"
)

func TestResponseDescriptorZeroValueDefaults(t *testing.T) {
	var d ResponseDescriptor
	res := d.resolve(resolve.Args{})
	assert.Equal(t, 200, res.statusCode)
	assert.Empty(t, res.body)
	assert.Empty(t, res.headers)
	assert.Zero(t, res.headerDelayMS)
	assert.Zero(t, res.bodyDelayMS)
	assert.False(t, res.destroySocket)
}

func TestResponseDescriptorResolvesLiterals(t *testing.T) {
	d := ResponseDescriptor{
		Body:          resolve.Literal(resolve.FromString("hi")),
		StatusCode:    resolve.Literal(201),
		Headers:       resolve.Headers{"X-Custom": resolve.Literal(resolve.FromString("v"))},
		HeaderDelayMS: resolve.Literal(5),
		BodyDelayMS:   resolve.Literal(10),
		DestroySocket: resolve.Literal(true),
	}
	res := d.resolve(resolve.Args{})
	assert.Equal(t, []byte("hi"), res.body)
	assert.Equal(t, 201, res.statusCode)
	assert.Equal(t, []byte("v"), res.headers["X-Custom"])
	assert.Equal(t, 5, res.headerDelayMS)
	assert.Equal(t, 10, res.bodyDelayMS)
	assert.True(t, res.destroySocket)
}

func TestResponseDescriptorFieldCallablesReceiveArgs(t *testing.T) {
	d := ResponseDescriptor{
		Body: resolve.Callable(func(a resolve.Args) resolve.Bufferable {
			return resolve.FromBytes(a.Body)
		}),
	}
	res := d.resolve(resolve.Args{Body: []byte("echoed")})
	assert.Equal(t, []byte("echoed"), res.body)
}
