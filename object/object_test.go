package object

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNumberDisplaySpecialValues(t *testing.T) {
	require.Equal(t, "NaN", Number(ToNumber(Undefined{})).Display())
	require.Equal(t, "3.5", Number(3.5).Display())
}

func TestTruthiness(t *testing.T) {
	require.False(t, Number(0).Truthy())
	require.True(t, Number(1).Truthy())
	require.False(t, String("").Truthy())
	require.True(t, String("x").Truthy())
	require.False(t, Null{}.Truthy())
	require.False(t, Undefined{}.Truthy())
	require.True(t, NewArray(nil).Truthy())
	require.True(t, NewObject().Truthy())
}

func TestArrayConcatStringVsDisplay(t *testing.T) {
	empty := NewArray(nil)
	require.Equal(t, "", empty.ConcatString())
	require.Equal(t, "[]", empty.Display())

	pair := NewArray([]Value{Number(1), Number(2)})
	require.Equal(t, "1,2", pair.ConcatString())
	require.Equal(t, "[1, 2]", pair.Display())
}

func TestObjectConcatStringIsFixedTag(t *testing.T) {
	obj := NewObject()
	obj.Set("a", Number(1))
	require.Equal(t, "[object Object]", obj.ConcatString())
	require.Equal(t, "{a: 1}", obj.Display())
}

func TestArrayGetSetGrowsWithUndefinedHoles(t *testing.T) {
	arr := NewArray([]Value{Number(1)})
	arr.Set(3, Number(9))
	require.Len(t, arr.Elements, 4)
	require.Equal(t, Undefined{}, arr.Get(1))
	require.Equal(t, Undefined{}, arr.Get(2))
	require.Equal(t, Number(9), arr.Get(3))
}

func TestObjectInsertionOrder(t *testing.T) {
	obj := NewObject()
	obj.Set("b", Number(2))
	obj.Set("a", Number(1))
	obj.Set("b", Number(20))
	require.Equal(t, []string{"b", "a"}, obj.Keys())
	v, ok := obj.Get("b")
	require.True(t, ok)
	require.Equal(t, Number(20), v)
}

func TestToJSON(t *testing.T) {
	arr := NewArray([]Value{Number(1), String("x"), Boolean(true), Null{}})
	obj := NewObject()
	obj.Set("items", arr)

	got := ToJSON(obj)
	m, ok := got.(map[string]any)
	require.True(t, ok)
	items, ok := m["items"].([]any)
	require.True(t, ok)
	require.Equal(t, []any{float64(1), "x", true, nil}, items)
}
