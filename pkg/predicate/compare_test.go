package predicate

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompareAbsentMatchesAnything(t *testing.T) {
	assert.True(t, Compare(Absent(), "anything"))
	assert.True(t, Compare(Absent(), nil))
	assert.True(t, Compare(Absent(), map[string]any{"a": 1}))
}

func TestCompareCallableSwallowsPanic(t *testing.T) {
	boom := Callable(func(actual any) bool { panic("boom") })
	assert.False(t, Compare(boom, "x"), "a panicking predicate must be treated as a non-match")
}

func TestCompareObjectRecursesAndIgnoresExtraKeys(t *testing.T) {
	desired := Object(map[string]Value{
		"method": String("POST"),
	})
	actual := map[string]any{"method": "POST", "extra": "ignored"}
	assert.True(t, Compare(desired, actual))
}

func TestCompareObjectMissingActualKeyIsAbsent(t *testing.T) {
	desired := Object(map[string]Value{
		"x": Absent(),
	})
	assert.True(t, Compare(desired, map[string]any{}))
}

func TestCompareArrayPrefix(t *testing.T) {
	desired := Array(String("a"), String("b"))
	assert.True(t, Compare(desired, []any{"a", "b", "c"}))
	assert.False(t, Compare(desired, []any{"a"}))
}

func TestCompareBytesExact(t *testing.T) {
	assert.True(t, Compare(Bytes([]byte("abcd")), []byte("abcd")))
	assert.False(t, Compare(Bytes([]byte("abcd")), []byte("abce")))
}

func TestCompareBytesVsStringUTF8(t *testing.T) {
	assert.True(t, Compare(Bytes([]byte("bloop")), "bloop"))
	assert.True(t, Compare(String("bloop"), []byte("bloop")))
}

func TestCompareStringExactCaseSensitive(t *testing.T) {
	assert.True(t, Compare(String("POST"), "POST"))
	assert.False(t, Compare(String("POST"), "post"))
}

func TestCompareRegexp(t *testing.T) {
	re := regexp.MustCompile(`^/users/\d+$`)
	assert.True(t, Compare(Regexp(re), "/users/42"))
	assert.False(t, Compare(Regexp(re), "/users/x"))
	assert.True(t, Compare(Regexp(re), []byte("/users/42")))
}

func TestCompareOtherwiseFalse(t *testing.T) {
	assert.False(t, Compare(String("x"), 42))
	assert.False(t, Compare(Object(map[string]Value{"a": Absent()}), "not a map"))
}

func TestCompareIdempotent(t *testing.T) {
	desired := Object(map[string]Value{"a": String("1")})
	actual := map[string]any{"a": "1"}
	first := Compare(desired, actual)
	second := Compare(desired, actual)
	require.Equal(t, first, second)
	assert.True(t, first)
}

func TestJSONMatch(t *testing.T) {
	pred := JSONMatch(map[string]any{"a": 1, "b": []any{"c", 2, map[string]any{}}})

	ok := JSONBody([]byte(`{"a":1,"b":["c",2,{}]}`))
	assert.True(t, Compare(pred, ok))

	bad := JSONBody([]byte(`{"a":1,"b":["c",3,{}]}`))
	assert.False(t, Compare(pred, bad))
}
