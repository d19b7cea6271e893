package foundation

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOption_SomeAndNone(t *testing.T) {
	some := Some("/browse/src/main.py")
	require.True(t, some.IsSome())
	require.False(t, some.IsNone())
	require.Equal(t, "/browse/src/main.py", some.Unwrap())

	none := None[string]()
	require.True(t, none.IsNone())
	require.False(t, none.IsSome())
	require.Equal(t, "fallback", none.UnwrapOr("fallback"))
}

func TestOption_UnwrapNonePanics(t *testing.T) {
	none := None[int]()
	require.Panics(t, func() { none.Unwrap() })
}

func TestOption_Match(t *testing.T) {
	var got string
	Some("x").Match(func(v string) { got = v }, func() { got = "none" })
	require.Equal(t, "x", got)

	None[string]().Match(func(v string) { got = v }, func() { got = "none" })
	require.Equal(t, "none", got)
}
