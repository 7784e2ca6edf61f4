package symtab

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/greqlkit/greql/ast"
)

func TestLookupShadowing(t *testing.T) {
	tab := New()
	tab.BlockBegin()
	tab.Insert("x", 1)
	tab.BlockBegin()
	tab.Insert("x", 2)

	n, ok := tab.Lookup("x")
	require.True(t, ok)
	require.Equal(t, ast.NodeID(2), n)

	tab.BlockEnd()
	n, ok = tab.Lookup("x")
	require.True(t, ok)
	require.Equal(t, ast.NodeID(1), n)

	_, ok = tab.Lookup("y")
	require.False(t, ok)
}

func TestLenientIgnoresRedeclaration(t *testing.T) {
	tab := New()
	tab.BlockBegin()
	tab.Insert("x", 1)
	tab.Insert("x", 7)

	n, _ := tab.Lookup("x")
	require.Equal(t, ast.NodeID(1), n)
}

func TestUnwind(t *testing.T) {
	tab := New()
	tab.BlockBegin()
	tab.Insert("x", 1)
	depth := tab.Depth()
	tab.BlockBegin()
	tab.Insert("y", 2)
	tab.BlockBegin()

	tab.Unwind(depth)
	require.Equal(t, depth, tab.Depth())
	_, ok := tab.Lookup("y")
	require.False(t, ok)
	_, ok = tab.Lookup("x")
	require.True(t, ok)
}

func TestStrictDuplicate(t *testing.T) {
	tab := NewStrict()
	tab.BlockBegin()
	require.NoError(t, tab.Insert("x", 1))

	err := tab.Insert("x", 2)
	var dup *DuplicateError
	require.True(t, errors.As(err, &dup))
	require.Equal(t, "x", dup.Name)
	require.Equal(t, ast.NodeID(1), dup.Previous)

	// Shadowing in a nested block is not a duplicate.
	tab.BlockBegin()
	require.NoError(t, tab.Insert("x", 3))
	n, _ := tab.Lookup("x")
	require.Equal(t, ast.NodeID(3), n)
}

func TestBlockEndUnderflowPanics(t *testing.T) {
	require.Panics(t, func() { NewStrict().BlockEnd() })
}
