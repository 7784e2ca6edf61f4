package funclib

import (
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultHasOperators(t *testing.T) {
	r := Default()
	for _, name := range []string{"add", "sub", "concat", "reMatch", "getValue", "pathSystem", "count"} {
		require.True(t, r.IsFunctionName(name), name)
	}
	require.False(t, r.IsFunctionName("Person"))
	require.False(t, r.IsFunctionName("x"))
}

func TestRegister(t *testing.T) {
	r := New("f")
	require.True(t, r.IsFunctionName("f"))
	require.False(t, r.IsFunctionName("g"))

	r.Register("g", "h", "g")
	require.True(t, r.IsFunctionName("g"))
	require.Equal(t, 3, r.Len())
	require.Equal(t, []string{"f", "g", "h"}, r.Names())
}

func TestBuiltinsUnique(t *testing.T) {
	r := Default()
	require.Equal(t, len(builtins), r.Len())
	require.True(t, slices.IsSortedFunc(r.Names(), strings.Compare))
}

func TestUnion(t *testing.T) {
	lib := Union(New("a"), nil, Func(func(name string) bool { return strings.HasPrefix(name, "sub_") }))
	require.True(t, lib.IsFunctionName("a"))
	require.True(t, lib.IsFunctionName("sub_query"))
	require.False(t, lib.IsFunctionName("b"))
}
