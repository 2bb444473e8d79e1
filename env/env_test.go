package env

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/SPSarkar88/NovaLang-sub001/object"
)

func TestDeclareAndGet(t *testing.T) {
	f := NewGlobal()
	require.NoError(t, f.Declare("x", object.Number(1), false))
	v, ok := f.Get("x")
	require.True(t, ok)
	require.Equal(t, object.Number(1), v)
}

func TestRedeclarationInSameFrameErrors(t *testing.T) {
	f := NewGlobal()
	require.NoError(t, f.Declare("x", object.Number(1), false))
	require.Error(t, f.Declare("x", object.Number(2), false))
}

func TestChildFrameShadowsParent(t *testing.T) {
	parent := NewGlobal()
	require.NoError(t, parent.Declare("x", object.Number(1), false))
	child := parent.NewChild()
	require.NoError(t, child.Declare("x", object.Number(2), false))

	v, _ := child.Get("x")
	require.Equal(t, object.Number(2), v)
	v, _ = parent.Get("x")
	require.Equal(t, object.Number(1), v)
}

func TestAssignWalksUpToDeclaringFrame(t *testing.T) {
	parent := NewGlobal()
	require.NoError(t, parent.Declare("x", object.Number(1), false))
	child := parent.NewChild()

	require.NoError(t, child.Assign("x", object.Number(9)))
	v, _ := parent.Get("x")
	require.Equal(t, object.Number(9), v)
}

func TestAssignToConstantErrors(t *testing.T) {
	f := NewGlobal()
	require.NoError(t, f.Declare("x", object.Number(1), true))
	require.Error(t, f.Assign("x", object.Number(2)))
}

func TestAssignToUndeclaredErrors(t *testing.T) {
	f := NewGlobal()
	require.Error(t, f.Assign("missing", object.Number(1)))
}

func TestNamesCollectsAncestorChain(t *testing.T) {
	parent := NewGlobal()
	require.NoError(t, parent.Declare("a", object.Number(1), false))
	child := parent.NewChild()
	require.NoError(t, child.Declare("b", object.Number(2), false))

	names := child.Names()
	require.Contains(t, names, "a")
	require.Contains(t, names, "b")
}
